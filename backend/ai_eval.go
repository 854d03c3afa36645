package main

// evaluatePosition scores a board from the AI's fixed perspective. The
// base term is the raw score differential under the active mechanism;
// a mechanism-specific positional adjustment is layered on top, and the
// whole value is scaled up near the end of the game so that the score
// differential dominates positional noise.
func evaluatePosition(board Board, aiPlayer int, mechanism ScoringMechanism, progressFraction float64, config Config) float64 {
	weights := config.Heuristics
	opponent := otherPlayer(aiPlayer)
	value := float64(ScoreBoardFor(board, aiPlayer, mechanism) - ScoreBoardFor(board, opponent, mechanism))

	switch mechanism {
	case ScoringMultiplication:
		own := connectedComponents(board, aiPlayer)
		if len(own) > 0 {
			total := 0
			for _, component := range own {
				total += component.Size()
			}
			value += weights.MultAvgOwnSize * float64(total) / float64(len(own))
		}
		largest := 0
		for _, component := range connectedComponents(board, opponent) {
			if component.Size() > largest {
				largest = component.Size()
			}
		}
		value -= weights.MultLargestOpponent * float64(largest)
	case ScoringConnection, ScoringExtension:
		ownEdges := totalInternalEdges(board, aiPlayer)
		opponentEdges := totalInternalEdges(board, opponent)
		value += weights.EdgeDifferential * float64(ownEdges-opponentEdges)
		if mechanism == ScoringExtension {
			value += weights.ExpansionWeight * expansionPotential(board, aiPlayer, weights)
		}
	}

	if progressFraction > config.EndgameScaleStart {
		value *= 1 + (progressFraction-config.EndgameScaleStart)*config.EndgameScaleFactor
	}
	return value
}

// expansionPotential rewards board control under extension scoring:
// free cells touching own territory are growth, free cells touching the
// opponent are contested.
func expansionPotential(board Board, aiPlayer int, weights HeuristicConfig) float64 {
	opponent := otherPlayer(aiPlayer)
	potential := 0.0
	for _, cell := range board.AvailableMoves() {
		ownAdjacent := 0
		opponentAdjacent := 0
		for _, neighbor := range cell.orthogonalNeighbors() {
			if !board.InBounds(neighbor) {
				continue
			}
			if board.IsOccupiedBy(neighbor, aiPlayer) {
				ownAdjacent++
			} else if board.IsOccupiedBy(neighbor, opponent) {
				opponentAdjacent++
			}
		}
		potential += weights.ExpansionOwn*float64(ownAdjacent) - weights.ExpansionOpponent*float64(opponentAdjacent)
	}
	return potential
}
