// Package opt provides the gradient-descent parameter update.
package opt

// Optimizer updates flattened parameters from flattened gradients.
type Optimizer interface {
	// Step returns updated parameters in a new slice.
	Step(params, gradients []float64) []float64

	// StepInPlace updates params in place, avoiding the allocation.
	StepInPlace(params, gradients []float64)
}

// SGD is plain gradient descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// Parameters always move against the gradient to reduce loss.
type SGD struct {
	LearningRate float64
}

// Step computes params - lr * gradients into a new slice.
func (s SGD) Step(params, gradients []float64) []float64 {
	result := make([]float64, len(params))
	for i := range params {
		result[i] = params[i] - s.LearningRate*gradients[i]
	}
	return result
}

// StepInPlace applies params -= lr * gradients.
func (s SGD) StepInPlace(params, gradients []float64) {
	for i := range params {
		params[i] -= s.LearningRate * gradients[i]
	}
}
