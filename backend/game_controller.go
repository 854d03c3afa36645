package main

import "sync"

// GameController serializes access to a single Game. The engine itself
// carries no locks; every caller in the HTTP layer goes through here.
type GameController struct {
	mu   sync.Mutex
	game Game
}

func NewGameController(settings GameSettings) *GameController {
	return &GameController{game: NewGame(settings)}
}

func (gc *GameController) OnCellClicked(x, y int) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	_ = gc.game.SubmitHumanMove(Move{X: x, Y: y})
}

func (gc *GameController) ApplyHumanMove(move Move) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	return gc.game.TryApplyMove(move)
}

func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Tick()
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) ScoreHistory() [][2]int {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.ScoreHistory()
}

func (gc *GameController) UndoDepth() int {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.UndoDepth()
}

func (gc *GameController) Undo() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.UndoMove()
}

func (gc *GameController) CurrentTurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TurnStartedAtMs()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	history := gc.game.History()
	if history.Size() == 0 {
		return HistoryEntry{}, false
	}
	entries := history.All()
	return entries[len(entries)-1], true
}

func (gc *GameController) AiThinking() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.AiThinking()
}

func (gc *GameController) Reset(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
}

func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
}

func (gc *GameController) UpdateSettings(update GameSettings, reset bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if reset {
		gc.game.Reset(update)
		return
	}
	// Board-shape changes force a reset; player and scoring changes
	// apply to the running game.
	if update.BoardSize != gc.game.settings.BoardSize {
		gc.game.Reset(update)
		return
	}
	needsRescore := update.Scoring != gc.game.settings.Scoring
	gc.game.settings = update
	gc.game.createPlayers()
	if needsRescore {
		gc.game.rescore()
	}
}

// SuggestMove runs the engine synchronously for the current position,
// whoever's turn it is.
func (gc *GameController) SuggestMove() (Move, bool) {
	gc.mu.Lock()
	state := gc.game.State()
	settings := gc.game.Settings()
	gc.mu.Unlock()
	if state.Progress == ProgressOver {
		return Move{}, false
	}
	return GetAIMove(state, settings)
}
