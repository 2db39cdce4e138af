package net

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/AndresCdo/neuralgo/internal/linalg"
)

// StopReason reports why a bounded training loop ended.
type StopReason int

const (
	// MaxEpochsReached means the epoch budget ran out first.
	MaxEpochsReached StopReason = iota
	// Converged means the epoch-to-epoch loss improvement dropped below the
	// tolerance.
	Converged
	// EarlyStopped means the validation loss failed to improve for patience
	// consecutive epochs.
	EarlyStopped
)

func (r StopReason) String() string {
	switch r {
	case MaxEpochsReached:
		return "max epochs reached"
	case Converged:
		return "converged"
	case EarlyStopped:
		return "early stopped"
	}
	return fmt.Sprintf("StopReason(%d)", int(r))
}

// trainExample runs one backward+update step for a single example.
func (n *Network) trainExample(input, target linalg.Vector, learningRate float64) error {
	grads, err := n.Backward(input, target)
	if err != nil {
		return err
	}
	return n.Update(grads, learningRate)
}

// TrainEpoch runs one backward+update step per example, in dataset order.
func (n *Network) TrainEpoch(inputs, targets []linalg.Vector, learningRate float64) error {
	if len(inputs) != len(targets) {
		return fmt.Errorf("%w: %d inputs vs %d targets",
			linalg.ErrShapeMismatch, len(inputs), len(targets))
	}
	for i := range inputs {
		if err := n.trainExample(inputs[i], targets[i], learningRate); err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
	}
	return nil
}

// TrainEpochs runs TrainEpoch the given number of times.
func (n *Network) TrainEpochs(inputs, targets []linalg.Vector, learningRate float64, epochs int) error {
	for e := 0; e < epochs; e++ {
		if err := n.TrainEpoch(inputs, targets, learningRate); err != nil {
			return fmt.Errorf("epoch %d: %w", e, err)
		}
	}
	return nil
}

// Train runs the given number of epochs over the dataset, reporting mean
// loss and accuracy to the callbacks after every epoch.
func (n *Network) Train(inputs, targets []linalg.Vector, learningRate float64, epochs int, callbacks ...Callback) error {
	for _, cb := range callbacks {
		cb.OnTrainBegin(n)
	}
	for e := 0; e < epochs; e++ {
		if err := n.TrainEpoch(inputs, targets, learningRate); err != nil {
			return fmt.Errorf("epoch %d: %w", e, err)
		}
		if len(callbacks) > 0 {
			loss, acc, err := n.Evaluate(inputs, targets)
			if err != nil {
				return fmt.Errorf("epoch %d: %w", e, err)
			}
			for _, cb := range callbacks {
				cb.OnEpochEnd(e, loss, acc)
			}
		}
	}
	for _, cb := range callbacks {
		cb.OnTrainEnd(n)
	}
	return nil
}

// TrainMinibatch shuffles the example indices into random mini-batches of
// batchSize and runs one backward+update step per example. A trailing
// partial batch is trained like any other.
func (n *Network) TrainMinibatch(inputs, targets []linalg.Vector, learningRate float64, batchSize int) error {
	if len(inputs) != len(targets) {
		return fmt.Errorf("%w: %d inputs vs %d targets",
			linalg.ErrShapeMismatch, len(inputs), len(targets))
	}
	if batchSize < 1 {
		return fmt.Errorf("%w: batch size %d", linalg.ErrShapeMismatch, batchSize)
	}
	indices := make([]int, len(inputs))
	for i := range indices {
		indices[i] = i
	}
	rand.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	for start := 0; start < len(indices); start += batchSize {
		end := start + batchSize
		if end > len(indices) {
			end = len(indices)
		}
		for _, idx := range indices[start:end] {
			if err := n.trainExample(inputs[idx], targets[idx], learningRate); err != nil {
				return fmt.Errorf("example %d: %w", idx, err)
			}
		}
	}
	return nil
}

// TrainMinibatches runs TrainMinibatch the given number of epochs.
func (n *Network) TrainMinibatches(inputs, targets []linalg.Vector, learningRate float64, batchSize, epochs int) error {
	for e := 0; e < epochs; e++ {
		if err := n.TrainMinibatch(inputs, targets, learningRate, batchSize); err != nil {
			return fmt.Errorf("epoch %d: %w", e, err)
		}
	}
	return nil
}

// TrainUntilConvergence trains full epochs until the absolute loss
// improvement between epochs falls below tolerance or maxEpochs have run.
// It starts from prevLoss = +Inf, so at least one epoch always executes and
// a tolerance of zero exhausts the budget. Returns the number of epochs run
// and the stop reason.
func (n *Network) TrainUntilConvergence(inputs, targets []linalg.Vector, learningRate float64, maxEpochs int, tolerance float64, callbacks ...Callback) (int, StopReason, error) {
	step := func() error { return n.TrainEpoch(inputs, targets, learningRate) }
	return n.runConvergenceLoop(step, inputs, targets, maxEpochs, tolerance, callbacks)
}

// TrainMinibatchesUntilConvergence is TrainUntilConvergence over shuffled
// mini-batches.
func (n *Network) TrainMinibatchesUntilConvergence(inputs, targets []linalg.Vector, learningRate float64, batchSize, maxEpochs int, tolerance float64, callbacks ...Callback) (int, StopReason, error) {
	step := func() error { return n.TrainMinibatch(inputs, targets, learningRate, batchSize) }
	return n.runConvergenceLoop(step, inputs, targets, maxEpochs, tolerance, callbacks)
}

// runConvergenceLoop drives one epoch step function until convergence or the
// epoch budget. Convergence is |prevLoss - loss| < tolerance, checked on the
// training loss after each epoch.
func (n *Network) runConvergenceLoop(step func() error, inputs, targets []linalg.Vector, maxEpochs int, tolerance float64, callbacks []Callback) (int, StopReason, error) {
	for _, cb := range callbacks {
		cb.OnTrainBegin(n)
	}
	prevLoss := math.Inf(1)
	reason := MaxEpochsReached
	epoch := 0
	for ; epoch < maxEpochs; epoch++ {
		if err := step(); err != nil {
			return epoch, reason, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		loss, acc, err := n.Evaluate(inputs, targets)
		if err != nil {
			return epoch, reason, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		for _, cb := range callbacks {
			cb.OnEpochEnd(epoch, loss, acc)
		}
		if math.Abs(prevLoss-loss) < tolerance {
			epoch++
			reason = Converged
			break
		}
		prevLoss = loss
	}
	for _, cb := range callbacks {
		cb.OnTrainEnd(n)
	}
	return epoch, reason, nil
}

// TrainWithEarlyStopping trains shuffled mini-batches until one of three
// bounds triggers: training-loss convergence below tolerance, a validation
// loss that has not improved for patience consecutive epochs, or maxEpochs.
func (n *Network) TrainWithEarlyStopping(inputs, targets, valInputs, valTargets []linalg.Vector, learningRate float64, batchSize, maxEpochs int, tolerance float64, patience int, callbacks ...Callback) (int, StopReason, error) {
	for _, cb := range callbacks {
		cb.OnTrainBegin(n)
	}
	prevLoss := math.Inf(1)
	bestValLoss := math.Inf(1)
	badEpochs := 0
	reason := MaxEpochsReached
	epoch := 0
	for ; epoch < maxEpochs; epoch++ {
		if err := n.TrainMinibatch(inputs, targets, learningRate, batchSize); err != nil {
			return epoch, reason, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		loss, acc, err := n.Evaluate(inputs, targets)
		if err != nil {
			return epoch, reason, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		valLoss, _, err := n.Evaluate(valInputs, valTargets)
		if err != nil {
			return epoch, reason, fmt.Errorf("epoch %d: validation: %w", epoch, err)
		}
		for _, cb := range callbacks {
			cb.OnEpochEnd(epoch, loss, acc)
		}
		if math.Abs(prevLoss-loss) < tolerance {
			epoch++
			reason = Converged
			break
		}
		prevLoss = loss
		if valLoss < bestValLoss {
			bestValLoss = valLoss
			badEpochs = 0
		} else {
			badEpochs++
			if badEpochs >= patience {
				epoch++
				reason = EarlyStopped
				break
			}
		}
	}
	for _, cb := range callbacks {
		cb.OnTrainEnd(n)
	}
	return epoch, reason, nil
}
