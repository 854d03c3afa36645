package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type PlayerMode int

const (
	// ModeVsAI pits the human against the engine; ModeTwoPlayer is two
	// humans sharing the board.
	ModeVsAI PlayerMode = iota
	ModeTwoPlayer
)

type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyHard
)

// allowedBoardSizes is the fixed set of square board dimensions the
// settings layer may pick from.
var allowedBoardSizes = []int{5, 7, 9}

type GameSettings struct {
	BoardSize    int              `json:"board_size"`
	FirstPlayer  PlayerType       `json:"-"`
	Scoring      ScoringMechanism `json:"-"`
	AiDifficulty Difficulty       `json:"-"`
	PlayerMode   PlayerMode       `json:"-"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		BoardSize:    7,
		FirstPlayer:  PlayerHuman,
		Scoring:      ScoringMultiplication,
		AiDifficulty: DifficultyEasy,
		PlayerMode:   ModeVsAI,
	}
}

func clampBoardSize(size int) int {
	for _, allowed := range allowedBoardSizes {
		if size == allowed {
			return size
		}
	}
	return DefaultGameSettings().BoardSize
}

// playerTypeFor maps a player index to human or AI under the settings.
// Index 0 always moves first.
func (s GameSettings) playerTypeFor(player int) PlayerType {
	if s.PlayerMode == ModeTwoPlayer {
		return PlayerHuman
	}
	aiIndex := 1
	if s.FirstPlayer == PlayerAI {
		aiIndex = 0
	}
	if player == aiIndex {
		return PlayerAI
	}
	return PlayerHuman
}
