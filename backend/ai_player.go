package main

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// AIPlayer wraps the strategy dispatch in an asynchronous worker so the
// session can sit in the waiting state while a think is in flight. The
// search itself is pure and synchronous; only the handoff is guarded.
type AIPlayer struct {
	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	stopSignal atomic.Bool
	readyMove  Move
	readyOk    bool
}

func NewAIPlayer() *AIPlayer {
	return &AIPlayer{}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

// ChooseMove is the synchronous path, used by tests and the suggestion
// endpoint.
func (a *AIPlayer) ChooseMove(state GameState, settings GameSettings) (Move, bool) {
	return GetAIMove(state, settings)
}

func (a *AIPlayer) StartThinking(state GameState, settings GameSettings) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)
	a.stopSignal.Store(false)

	done := make(chan struct{})
	a.workerDone = done
	config := GetConfig()
	go func() {
		defer close(done)
		start := time.Now()
		move, ok := getAIMoveWithConfig(state, settings, config)
		if config.LogAiMoves {
			log.Printf("[ai] difficulty=%d scoring=%s move=(%d,%d) ok=%v t=%dms",
				settings.AiDifficulty, settings.Scoring, move.X, move.Y, ok,
				time.Since(start).Milliseconds())
		}
		// The stop check and the publish share the mutex with
		// StopThinking, so a stop can never lose to an in-flight
		// result.
		a.moveMutex.Lock()
		if !a.stopSignal.Load() {
			a.readyMove = move
			a.readyOk = ok
			a.moveReady.Store(true)
		}
		a.moveMutex.Unlock()
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() (Move, bool) {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyMove, a.readyOk
}

// StopThinking discards any in-flight or ready result. Called on undo
// and reset so a stale move never lands on a rewound board.
func (a *AIPlayer) StopThinking() {
	a.stopSignal.Store(true)
	a.moveMutex.Lock()
	a.moveReady.Store(false)
	a.moveMutex.Unlock()
}
