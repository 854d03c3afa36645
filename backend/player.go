package main

type IPlayer interface {
	IsHuman() bool
	ChooseMove(state GameState, settings GameSettings) (Move, bool)
}
