package main

// Component is a maximal 4-connected group of one player's cells,
// listed in discovery order.
type Component struct {
	cells []Move
}

func (c Component) Size() int {
	return len(c.cells)
}

func (c Component) Cells() []Move {
	return append([]Move(nil), c.cells...)
}

// internalEdges counts the distinct unordered adjacent pairs inside the
// component. Looking only south and east counts each edge exactly once.
func (c Component) internalEdges(width int) int {
	keys := make(map[int]struct{}, len(c.cells))
	for _, cell := range c.cells {
		keys[cell.Key(width)] = struct{}{}
	}
	edges := 0
	for _, cell := range c.cells {
		east := Move{X: cell.X + 1, Y: cell.Y}
		if east.X < width {
			if _, ok := keys[east.Key(width)]; ok {
				edges++
			}
		}
		south := Move{X: cell.X, Y: cell.Y + 1}
		if _, ok := keys[south.Key(width)]; ok {
			edges++
		}
	}
	return edges
}

// connectedComponents discovers a player's components with an iterative
// depth-first flood fill. Seeds are visited in row-major order and
// neighbors pushed in the fixed N, S, W, E order, so the returned slice
// and each component's cell order are deterministic. Always recomputed
// from the board; nothing here is cached.
func connectedComponents(board Board, player int) []Component {
	width := board.Width()
	visited := make(map[int]struct{}, board.CountOccupied(player))
	components := []Component{}
	for y := 0; y < board.Height(); y++ {
		for x := 0; x < width; x++ {
			seed := Move{X: x, Y: y}
			if !board.IsOccupiedBy(seed, player) {
				continue
			}
			if _, seen := visited[seed.Key(width)]; seen {
				continue
			}
			component := Component{}
			stack := []Move{seed}
			visited[seed.Key(width)] = struct{}{}
			for len(stack) > 0 {
				cell := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				component.cells = append(component.cells, cell)
				for _, neighbor := range cell.orthogonalNeighbors() {
					if !board.InBounds(neighbor) {
						continue
					}
					if !board.IsOccupiedBy(neighbor, player) {
						continue
					}
					if _, seen := visited[neighbor.Key(width)]; seen {
						continue
					}
					visited[neighbor.Key(width)] = struct{}{}
					stack = append(stack, neighbor)
				}
			}
			components = append(components, component)
		}
	}
	return components
}
