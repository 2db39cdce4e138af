package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/AndresCdo/neuralgo/internal/activations"
	"github.com/AndresCdo/neuralgo/internal/layer"
	"github.com/AndresCdo/neuralgo/internal/linalg"
	"github.com/AndresCdo/neuralgo/internal/net"
)

func main() {
	fmt.Println("=== XOR Training Example ===")

	// XOR needs a hidden layer; a single dense layer cannot separate it.
	in, hidden, out := 2, 3, 1
	fmt.Printf("Network architecture: %d-%d-%d, sigmoid throughout\n", in, hidden, out)

	network, err := net.New(
		layer.NewDense(in, hidden, activations.Sigmoid{}),
		layer.NewDense(hidden, out, activations.Sigmoid{}),
	)
	if err != nil {
		log.Fatal(err)
	}

	trainX := []linalg.Vector{
		linalg.NewVector([]float64{0, 0}),
		linalg.NewVector([]float64{0, 1}),
		linalg.NewVector([]float64{1, 0}),
		linalg.NewVector([]float64{1, 1}),
	}
	trainY := []linalg.Vector{
		linalg.NewVector([]float64{0}),
		linalg.NewVector([]float64{1}),
		linalg.NewVector([]float64{1}),
		linalg.NewVector([]float64{0}),
	}

	epochs, reason, err := network.TrainUntilConvergence(
		trainX, trainY, 0.5, 20000, 1e-7, net.Logger{Interval: 2000})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Training stopped after %d epochs: %s\n", epochs, reason)

	fmt.Println("\nTesting trained network:")
	for i := range trainX {
		pred, err := network.Predict(trainX[i])
		if err != nil {
			log.Fatal(err)
		}
		p, _ := pred.At(0)
		want, _ := trainY[i].At(0)
		fmt.Printf("Input: %v, Predicted: %.4f, Target: %v\n", trainX[i].RawData(), p, want)
	}

	// Round-trip through the textual format.
	path := filepath.Join(os.TempDir(), "xor-network.txt")
	if err := network.Save(path); err != nil {
		log.Fatal(err)
	}
	restored, err := net.Load(path)
	if err != nil {
		log.Fatal(err)
	}
	loss, acc, err := restored.Evaluate(trainX, trainY)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nReloaded from %s: loss = %.6f, accuracy = %.4f\n", path, loss, acc)
}
