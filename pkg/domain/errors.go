package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSlideNotFound is returned when the current slide ID is not in the deck.
// Deck validation makes this unreachable in practice; if it surfaces anyway
// the session is halted with a terminal message.
var ErrSlideNotFound = errors.New("slide not found")

// ErrUnknownOption is returned when an input value matches no option on the
// current slide.
var ErrUnknownOption = errors.New("unknown option")

// ErrWrongPhase is returned when an operation is invalid for the session's
// current phase, e.g. submitting a service name with no prompt open.
var ErrWrongPhase = errors.New("operation not valid in current phase")
