package agent

import (
	"os"
	"os/signal"
	"syscall"
)

// SignalController turns SIGINT/SIGTERM into a pollable flag so the step
// loop stops at a step boundary instead of mid-action.
type SignalController struct {
	ch chan os.Signal
}

func NewSignalController() *SignalController {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return &SignalController{ch: ch}
}

// Interrupted reports whether a stop signal has arrived.
func (s *SignalController) Interrupted() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}

func (s *SignalController) Close() {
	signal.Stop(s.ch)
	close(s.ch)
}
