package main

import (
	"errors"
	"testing"
)

func TestPlaceReturnsNewBoardAndKeepsOriginal(t *testing.T) {
	board := NewBoard(5, 5)
	next, err := board.Place(0, Move{X: 2, Y: 3})
	if err != nil {
		t.Fatalf("expected placement to succeed, got %v", err)
	}
	if !next.IsOccupiedBy(Move{X: 2, Y: 3}, 0) {
		t.Fatalf("expected new board to hold the placed cell")
	}
	if board.IsOccupied(Move{X: 2, Y: 3}) {
		t.Fatalf("expected original board to stay empty")
	}
}

func TestPlaceOutOfBounds(t *testing.T) {
	board := NewBoard(5, 5)
	cases := []Move{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 5, Y: 0}, {X: 0, Y: 5}}
	for _, move := range cases {
		next, err := board.Place(0, move)
		if !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("expected ErrOutOfBounds for %+v, got %v", move, err)
		}
		if next.CountEmpty() != board.CountEmpty() {
			t.Fatalf("expected returned board unchanged for %+v", move)
		}
	}
}

func TestPlaceOccupiedRejectedForBothPlayers(t *testing.T) {
	board := NewBoard(5, 5)
	board, err := board.Place(0, Move{X: 1, Y: 1})
	if err != nil {
		t.Fatalf("setup placement failed: %v", err)
	}
	if _, err := board.Place(1, Move{X: 1, Y: 1}); !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied for opponent, got %v", err)
	}
	// A repeat claim by the owner is rejected too, never a silent no-op.
	if _, err := board.Place(0, Move{X: 1, Y: 1}); !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied for owner, got %v", err)
	}
}

func TestOccupancySetsStayDisjointAndInBounds(t *testing.T) {
	board := NewBoard(5, 5)
	moves := []struct {
		player int
		move   Move
	}{
		{0, Move{X: 0, Y: 0}},
		{1, Move{X: 4, Y: 4}},
		{0, Move{X: 1, Y: 0}},
		{1, Move{X: 4, Y: 3}},
	}
	for _, step := range moves {
		next, err := board.Place(step.player, step.move)
		if err != nil {
			t.Fatalf("placement %+v failed: %v", step, err)
		}
		board = next
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			move := Move{X: x, Y: y}
			if board.IsOccupiedBy(move, 0) && board.IsOccupiedBy(move, 1) {
				t.Fatalf("cell %+v claimed by both players", move)
			}
		}
	}
	if board.CountOccupied(0) != 2 || board.CountOccupied(1) != 2 {
		t.Fatalf("expected 2 cells per player, got %d and %d", board.CountOccupied(0), board.CountOccupied(1))
	}
}

func TestAvailableMovesRowMajorAndIdempotent(t *testing.T) {
	board := NewBoard(3, 2)
	board, _ = board.Place(0, Move{X: 1, Y: 0})
	first := board.AvailableMoves()
	second := board.AvailableMoves()
	expected := []Move{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}
	if len(first) != len(expected) {
		t.Fatalf("expected %d available cells, got %d", len(expected), len(first))
	}
	for i := range expected {
		if !first[i].Equals(expected[i]) {
			t.Fatalf("expected cell %d to be %+v, got %+v", i, expected[i], first[i])
		}
		if !first[i].Equals(second[i]) {
			t.Fatalf("expected repeated enumeration to be identical at %d", i)
		}
	}
}

func TestOneByOneBoardEndsImmediately(t *testing.T) {
	board := NewBoard(1, 1)
	if board.IsFull() {
		t.Fatalf("empty 1x1 board should not be full")
	}
	board, err := board.Place(0, Move{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("placement failed: %v", err)
	}
	if !board.IsFull() {
		t.Fatalf("expected 1x1 board to be full after one move")
	}
	for _, mechanism := range []ScoringMechanism{ScoringMultiplication, ScoringConnection, ScoringExtension} {
		if score := ScoreBoardFor(board, 0, mechanism); score != 1 {
			t.Fatalf("expected single cell to score 1 under %s, got %d", mechanism, score)
		}
	}
}

func TestMoveKeyRoundTrip(t *testing.T) {
	width := 7
	for y := 0; y < 9; y++ {
		for x := 0; x < width; x++ {
			move := Move{X: x, Y: y}
			if got := moveFromKey(move.Key(width), width); !got.Equals(move) {
				t.Fatalf("key round trip failed for %+v: got %+v", move, got)
			}
		}
	}
}
