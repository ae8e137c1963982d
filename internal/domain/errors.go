package domain

import "errors"

var (
	ErrInvalidArgs     = errors.New("invalid arguments")
	ErrNotFound        = errors.New("not found")
	ErrSelfInvite      = errors.New("cannot invite yourself")
	ErrNoPendingInvite = errors.New("no pending invite")
	ErrPlayerBusy      = errors.New("player already in a live game")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrGameFinished    = errors.New("game already finished")
)
