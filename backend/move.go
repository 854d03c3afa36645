package main

type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (m Move) IsValid(width, height int) bool {
	return m.X >= 0 && m.Y >= 0 && m.X < width && m.Y < height
}

func (m Move) Equals(other Move) bool {
	return m.X == other.X && m.Y == other.Y
}

// Key encodes the position as a row-major composite key. moveFromKey is
// its inverse for the same board width.
func (m Move) Key(width int) int {
	return m.Y*width + m.X
}

func moveFromKey(key, width int) Move {
	return Move{X: key % width, Y: key / width}
}

// orthogonalNeighbors lists the four von Neumann neighbors in fixed
// N, S, W, E order. Callers filter by bounds. Connectivity and scoring
// use this relation exclusively.
func (m Move) orthogonalNeighbors() [4]Move {
	return [4]Move{
		{X: m.X, Y: m.Y - 1},
		{X: m.X, Y: m.Y + 1},
		{X: m.X - 1, Y: m.Y},
		{X: m.X + 1, Y: m.Y},
	}
}

// surroundingNeighbors lists all eight neighbors including diagonals.
// Only the territorial opening heuristic looks at diagonals.
func (m Move) surroundingNeighbors() [8]Move {
	return [8]Move{
		{X: m.X - 1, Y: m.Y - 1},
		{X: m.X, Y: m.Y - 1},
		{X: m.X + 1, Y: m.Y - 1},
		{X: m.X - 1, Y: m.Y},
		{X: m.X + 1, Y: m.Y},
		{X: m.X - 1, Y: m.Y + 1},
		{X: m.X, Y: m.Y + 1},
		{X: m.X + 1, Y: m.Y + 1},
	}
}
