package main

import "fmt"

type ScoringMechanism int

const (
	ScoringMultiplication ScoringMechanism = iota
	ScoringConnection
	ScoringExtension
)

func (s ScoringMechanism) String() string {
	switch s {
	case ScoringConnection:
		return "connection"
	case ScoringExtension:
		return "extension"
	default:
		return "multiplication"
	}
}

func scoringMechanismFromString(value string) (ScoringMechanism, error) {
	switch value {
	case "multiplication":
		return ScoringMultiplication, nil
	case "connection":
		return ScoringConnection, nil
	case "extension":
		return ScoringExtension, nil
	}
	return ScoringMultiplication, fmt.Errorf("unknown scoring mechanism %q", value)
}

// ScoreBoardFor converts one player's components into a score under the
// given mechanism. Pure function of the board; both scores are always
// recomputed from scratch after a move, never adjusted incrementally.
func ScoreBoardFor(board Board, player int, mechanism ScoringMechanism) int {
	components := connectedComponents(board, player)
	if len(components) == 0 {
		return 0
	}
	switch mechanism {
	case ScoringConnection, ScoringExtension:
		// Connection and extension are the same rule: the weight of a
		// component is its distinct internal edge count, a singleton
		// weighing 1. Historically the two diverged on whether adjacent
		// pairs were halved; the edge-counted convention is used for
		// both everywhere.
		return scoreByInternalEdges(board, components)
	default:
		return scoreBySize(components)
	}
}

func scoreBySize(components []Component) int {
	product := 1
	for _, component := range components {
		product *= component.Size()
	}
	return product
}

func scoreByInternalEdges(board Board, components []Component) int {
	product := 1
	for _, component := range components {
		weight := component.internalEdges(board.Width())
		if weight < 1 {
			weight = 1
		}
		product *= weight
	}
	return product
}

// totalInternalEdges sums edge counts over all of a player's
// components; the connection-mechanism evaluation heuristic uses the
// differential between players.
func totalInternalEdges(board Board, player int) int {
	total := 0
	for _, component := range connectedComponents(board, player) {
		total += component.internalEdges(board.Width())
	}
	return total
}
