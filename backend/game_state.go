package main

type Progress int

const (
	// ProgressWaiting means the engine has handed the turn to the AI
	// and a think is in flight; the UI disables input meanwhile.
	ProgressPlaying Progress = iota
	ProgressWaiting
	ProgressOver
)

func (p Progress) String() string {
	switch p {
	case ProgressWaiting:
		return "waiting"
	case ProgressOver:
		return "over"
	default:
		return "playing"
	}
}

type GameState struct {
	Board       Board
	Scores      [2]int
	ToMove      int
	Progress    Progress
	HasLastMove bool
	LastMove    Move
	LastMessage string
}

func DefaultGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	size := clampBoardSize(settings.BoardSize)
	s.Board = NewBoard(size, size)
	s.Scores = [2]int{}
	s.ToMove = 0
	s.Progress = ProgressPlaying
	s.HasLastMove = false
	s.LastMove = Move{X: -1, Y: -1}
	s.LastMessage = ""
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	return clone
}

func otherPlayer(player int) int {
	return 1 - player
}
