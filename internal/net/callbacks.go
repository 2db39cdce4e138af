package net

import "fmt"

// Callback observes training progress. Implementations receive per-epoch
// counters purely for display; they have no effect on the computation.
type Callback interface {
	OnTrainBegin(n *Network)
	OnEpochEnd(epoch int, loss, accuracy float64)
	OnTrainEnd(n *Network)
}

// BaseCallback provides empty implementations for Callback.
type BaseCallback struct{}

func (BaseCallback) OnTrainBegin(n *Network)                      {}
func (BaseCallback) OnEpochEnd(epoch int, loss, accuracy float64) {}
func (BaseCallback) OnTrainEnd(n *Network)                        {}

// Logger prints epoch progress to the console every Interval epochs.
type Logger struct {
	BaseCallback
	Interval int
}

func (c Logger) OnEpochEnd(epoch int, loss, accuracy float64) {
	if c.Interval > 0 && epoch%c.Interval == 0 {
		fmt.Printf("Epoch %d: loss = %.6f, accuracy = %.4f\n", epoch, loss, accuracy)
	}
}
