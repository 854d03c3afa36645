package main

import "errors"

var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrOccupied    = errors.New("position already occupied")
)

// Board is an immutable occupancy snapshot: one position-key set per
// player. Place returns a new Board and never touches the receiver, so
// snapshots can be shared freely between the session, the AI search and
// the API layer.
type Board struct {
	width    int
	height   int
	occupied [2]map[int]struct{}
}

func NewBoard(width, height int) Board {
	b := Board{width: width, height: height}
	b.occupied[0] = make(map[int]struct{})
	b.occupied[1] = make(map[int]struct{})
	return b
}

func (b Board) Width() int {
	return b.width
}

func (b Board) Height() int {
	return b.height
}

func (b Board) InBounds(m Move) bool {
	return m.IsValid(b.width, b.height)
}

func (b Board) IsOccupied(m Move) bool {
	key := m.Key(b.width)
	_, p0 := b.occupied[0][key]
	_, p1 := b.occupied[1][key]
	return p0 || p1
}

func (b Board) IsOccupiedBy(m Move, player int) bool {
	_, ok := b.occupied[player][m.Key(b.width)]
	return ok
}

// At reports the owner of a cell, if any.
func (b Board) At(m Move) (int, bool) {
	if b.IsOccupiedBy(m, 0) {
		return 0, true
	}
	if b.IsOccupiedBy(m, 1) {
		return 1, true
	}
	return 0, false
}

// AvailableMoves enumerates unclaimed cells in row-major order. The
// order is part of the contract: tie-breaks and fallback move selection
// depend on it being stable.
func (b Board) AvailableMoves() []Move {
	moves := make([]Move, 0, b.width*b.height-b.CountOccupied(0)-b.CountOccupied(1))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			m := Move{X: x, Y: y}
			if !b.IsOccupied(m) {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

func (b Board) CountOccupied(player int) int {
	return len(b.occupied[player])
}

func (b Board) CountEmpty() int {
	return b.width*b.height - len(b.occupied[0]) - len(b.occupied[1])
}

func (b Board) IsFull() bool {
	return b.CountEmpty() == 0
}

// OccupancyFraction is the share of cells claimed by either player.
func (b Board) OccupancyFraction() float64 {
	total := b.width * b.height
	if total == 0 {
		return 1.0
	}
	return float64(len(b.occupied[0])+len(b.occupied[1])) / float64(total)
}

func (b Board) Clone() Board {
	clone := Board{width: b.width, height: b.height}
	for player := 0; player < 2; player++ {
		clone.occupied[player] = make(map[int]struct{}, len(b.occupied[player]))
		for key := range b.occupied[player] {
			clone.occupied[player][key] = struct{}{}
		}
	}
	return clone
}

// Place claims a cell for a player and returns the resulting snapshot.
// A repeat claim is rejected even when the acting player already owns
// the cell. Scoring and turn advancement are the session's business,
// not the board's.
func (b Board) Place(player int, m Move) (Board, error) {
	if !b.InBounds(m) {
		return b, ErrOutOfBounds
	}
	if b.IsOccupied(m) {
		return b, ErrOccupied
	}
	next := b.Clone()
	next.occupied[player][m.Key(b.width)] = struct{}{}
	return next, nil
}
