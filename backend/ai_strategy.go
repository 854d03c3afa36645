package main

import (
	"log"
	"math"
	"math/rand"
)

// GetAIMove selects a move for the side to move. It never fails and
// never panics outward: a misbehaving strategy is downgraded to a
// uniform random legal cell, then to the first available cell in
// enumeration order. The only false return is a full board.
func GetAIMove(state GameState, settings GameSettings) (Move, bool) {
	return getAIMoveWithConfig(state, settings, GetConfig())
}

func getAIMoveWithConfig(state GameState, settings GameSettings, config Config) (Move, bool) {
	available := state.Board.AvailableMoves()
	if len(available) == 0 {
		return Move{}, false
	}
	move, ok := strategyMove(state, settings, config, available)
	if ok && state.Board.InBounds(move) && !state.Board.IsOccupied(move) {
		return move, true
	}
	if move, ok := randomAvailableMove(state.Board, available); ok {
		return move, true
	}
	return available[0], true
}

func strategyMove(state GameState, settings GameSettings, config Config, available []Move) (move Move, ok bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("[ai] strategy panic recovered, using fallback: %v", recovered)
			move = Move{}
			ok = false
		}
	}()
	if settings.AiDifficulty == DifficultyHard {
		return minimaxMove(state, settings, config, available)
	}
	if state.Board.OccupancyFraction() < config.TerritorialThreshold {
		return territorialMove(state, config, available)
	}
	return greedyMove(state, settings, available)
}

// territorialMove spreads influence in the opening: empty neighbors are
// good, clustering next to own cells is discouraged and opponent
// contact slightly penalized. The 8-neighborhood is deliberate; this is
// the only consumer of diagonal adjacency.
func territorialMove(state GameState, config Config, available []Move) (Move, bool) {
	weights := config.Heuristics
	player := state.ToMove
	bestValue := math.Inf(-1)
	bestMove := Move{}
	found := false
	for _, candidate := range available {
		value := 0.0
		for _, neighbor := range candidate.surroundingNeighbors() {
			if !state.Board.InBounds(neighbor) {
				continue
			}
			owner, occupied := state.Board.At(neighbor)
			switch {
			case !occupied:
				value += weights.TerritoryEmpty
			case owner == player:
				value += weights.TerritoryOwn
			default:
				value += weights.TerritoryOpponent
			}
		}
		value += rand.Float64() * config.AiJitter
		if value > bestValue {
			bestValue = value
			bestMove = candidate
			found = true
		}
	}
	return bestMove, found
}

// greedyMove maximizes the immediate score delta for the side to move,
// one simulated placement per available cell, no lookahead. Ties are
// broken uniformly at random.
func greedyMove(state GameState, settings GameSettings, available []Move) (Move, bool) {
	player := state.ToMove
	current := ScoreBoardFor(state.Board, player, settings.Scoring)
	bestDelta := math.Inf(-1)
	ties := []Move{}
	for _, candidate := range available {
		next, err := state.Board.Place(player, candidate)
		if err != nil {
			continue
		}
		delta := float64(ScoreBoardFor(next, player, settings.Scoring) - current)
		if delta > bestDelta {
			bestDelta = delta
			ties = ties[:0]
			ties = append(ties, candidate)
		} else if delta == bestDelta {
			ties = append(ties, candidate)
		}
	}
	if len(ties) == 0 {
		return Move{}, false
	}
	return ties[rand.Intn(len(ties))], true
}

// minimaxMove runs a fixed-depth adversarial search with alpha-beta
// pruning. The root player is the maximizing side throughout; leaves
// are scored from that fixed perspective regardless of whose turn the
// depth limit interrupts.
func minimaxMove(state GameState, settings GameSettings, config Config, available []Move) (Move, bool) {
	aiPlayer := state.ToMove
	depth := config.AiDepth
	if depth < 1 {
		depth = 1
	}
	alpha := math.Inf(-1)
	beta := math.Inf(1)
	bestScore := math.Inf(-1)
	bestMove := Move{}
	found := false
	for _, candidate := range available {
		next, err := state.Board.Place(aiPlayer, candidate)
		if err != nil {
			continue
		}
		score := minimax(next, settings, config, aiPlayer, otherPlayer(aiPlayer), depth-1, alpha, beta)
		if !found || score > bestScore {
			bestScore = score
			bestMove = candidate
			found = true
		}
		if score > alpha {
			alpha = score
		}
	}
	return bestMove, found
}

func minimax(board Board, settings GameSettings, config Config, aiPlayer, currentPlayer, depth int, alpha, beta float64) float64 {
	if depth <= 0 || board.IsFull() {
		return evaluatePosition(board, aiPlayer, settings.Scoring, board.OccupancyFraction(), config)
	}
	maximizing := currentPlayer == aiPlayer
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, candidate := range board.AvailableMoves() {
		next, err := board.Place(currentPlayer, candidate)
		if err != nil {
			continue
		}
		value := minimax(next, settings, config, aiPlayer, otherPlayer(currentPlayer), depth-1, alpha, beta)
		if maximizing {
			if value > best {
				best = value
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
			}
			if best < beta {
				beta = best
			}
		}
		if beta <= alpha {
			break
		}
	}
	return best
}

func randomAvailableMove(board Board, available []Move) (Move, bool) {
	legal := make([]Move, 0, len(available))
	for _, candidate := range available {
		if board.InBounds(candidate) && !board.IsOccupied(candidate) {
			legal = append(legal, candidate)
		}
	}
	if len(legal) == 0 {
		return Move{}, false
	}
	return legal[rand.Intn(len(legal))], true
}
