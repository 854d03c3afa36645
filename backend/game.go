package main

import "time"

// Game is the session state machine: turn order, progress, score
// history and the undo stack. Board mutation and scoring stay behind
// Board.Place and ScoreBoardFor; the session only orchestrates them.
type Game struct {
	settings     GameSettings
	state        GameState
	snapshots    []GameState
	scoreHistory [][2]int
	moveLog      MoveHistory
	players      [2]IPlayer
	turnStart    time.Time
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

// Reset replaces the whole session with a fresh one sized and seeded
// per the settings. The snapshot stack always keeps the initial
// snapshot at the bottom; undo can never go past it.
func (g *Game) Reset(settings GameSettings) {
	g.stopAIPlayers()
	settings.BoardSize = clampBoardSize(settings.BoardSize)
	g.settings = settings
	g.state.Reset(settings)
	g.snapshots = []GameState{g.state.Clone()}
	g.scoreHistory = [][2]int{g.state.Scores}
	g.moveLog.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) History() MoveHistory {
	return g.moveLog
}

func (g *Game) ScoreHistory() [][2]int {
	out := make([][2]int, len(g.scoreHistory))
	copy(out, g.scoreHistory)
	return out
}

// UndoDepth reports how many moves can be rolled back; the UI uses it
// to enable or disable its undo control.
func (g *Game) UndoDepth() int {
	return len(g.snapshots) - 1
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// TryApplyMove validates and applies a move for the player to move.
// Moves are accepted while playing and while waiting, because the move
// being applied may be the AI's own asynchronous result. On rejection
// the session is unchanged except that waiting reverts to playing, so a
// rejected AI move becomes "my turn again" instead of a stuck session.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	if g.state.Progress == ProgressOver {
		return false, "game is over"
	}
	newBoard, err := g.state.Board.Place(g.state.ToMove, move)
	if err != nil {
		if g.state.Progress == ProgressWaiting {
			g.state.Progress = ProgressPlaying
		}
		g.state.LastMessage = "Illegal move: " + err.Error()
		return false, g.state.LastMessage
	}
	player := g.currentPlayer()
	isAiMove := player != nil && !player.IsHuman()
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())

	g.snapshots = append(g.snapshots, g.state.Clone())
	g.state.Board = newBoard
	g.state.Scores[0] = ScoreBoardFor(newBoard, 0, g.settings.Scoring)
	g.state.Scores[1] = ScoreBoardFor(newBoard, 1, g.settings.Scoring)
	g.scoreHistory = append(g.scoreHistory, g.state.Scores)
	g.state.LastMove = move
	g.state.HasLastMove = true
	g.state.LastMessage = ""
	g.moveLog.Push(HistoryEntry{
		Move:      move,
		Player:    g.state.ToMove,
		ElapsedMs: elapsedMs,
		IsAi:      isAiMove,
		Scores:    g.state.Scores,
	})
	g.state.ToMove = otherPlayer(g.state.ToMove)
	if newBoard.IsFull() {
		g.state.Progress = ProgressOver
	} else {
		g.state.Progress = ProgressPlaying
	}
	g.turnStart = time.Now()
	return true, ""
}

// UndoMove restores the most recent snapshot verbatim: board, scores,
// player to move and progress. A session holding only its initial
// snapshot is left untouched.
func (g *Game) UndoMove() bool {
	if len(g.snapshots) <= 1 {
		return false
	}
	g.stopAIPlayers()
	top := len(g.snapshots) - 1
	g.state = g.snapshots[top].Clone()
	g.snapshots = g.snapshots[:top]
	if len(g.scoreHistory) > 1 {
		g.scoreHistory = g.scoreHistory[:len(g.scoreHistory)-1]
	}
	g.moveLog.Pop()
	g.turnStart = time.Now()
	return true
}

// SetProgress overrides the coarse session state. The terminal state is
// sticky: over cannot be overwritten.
func (g *Game) SetProgress(progress Progress) {
	if g.state.Progress == ProgressOver && progress != ProgressOver {
		return
	}
	g.state.Progress = progress
}

// Tick advances the session one step: apply a pending human move, or
// hand the turn to the AI and apply its result once ready. Returns true
// when a move was applied.
func (g *Game) Tick() bool {
	if g.state.Progress == ProgressOver {
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}
	if player.IsHuman() {
		human, ok := player.(*HumanPlayer)
		if ok && human.HasPendingMove() {
			applied, _ := g.TryApplyMove(human.TakePendingMove())
			return applied
		}
		return false
	}
	ai, ok := player.(*AIPlayer)
	if !ok {
		move, found := player.ChooseMove(g.state.Clone(), g.settings)
		if !found {
			return false
		}
		applied, _ := g.TryApplyMove(move)
		return applied
	}
	if ai.HasMoveReady() {
		move, found := ai.TakeMove()
		if !found {
			// Board full while we were thinking; nothing to play.
			g.SetProgress(ProgressPlaying)
			return false
		}
		applied, _ := g.TryApplyMove(move)
		return applied
	}
	if !ai.IsThinking() {
		g.SetProgress(ProgressWaiting)
		ai.StartThinking(g.state.Clone(), g.settings)
	}
	return false
}

func (g *Game) SubmitHumanMove(move Move) bool {
	player := g.currentPlayer()
	if player == nil || !player.IsHuman() {
		return false
	}
	human, ok := player.(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	ai, ok := g.currentPlayer().(*AIPlayer)
	return ok && ai.IsThinking()
}

func (g *Game) currentPlayer() IPlayer {
	return g.players[g.state.ToMove]
}

func (g *Game) createPlayers() {
	for index := 0; index < 2; index++ {
		if g.settings.playerTypeFor(index) == PlayerAI {
			g.players[index] = NewAIPlayer()
		} else {
			g.players[index] = NewHumanPlayer()
		}
	}
}

// rescore recomputes both scores from the current board. Scores are a
// pure function of board and mechanism, so switching the mechanism
// mid-game has to refresh them.
func (g *Game) rescore() {
	g.state.Scores[0] = ScoreBoardFor(g.state.Board, 0, g.settings.Scoring)
	g.state.Scores[1] = ScoreBoardFor(g.state.Board, 1, g.settings.Scoring)
	if len(g.scoreHistory) > 0 {
		g.scoreHistory[len(g.scoreHistory)-1] = g.state.Scores
	}
}

func (g *Game) stopAIPlayers() {
	for _, player := range g.players {
		if ai, ok := player.(*AIPlayer); ok {
			ai.StopThinking()
		}
	}
}
