package net

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AndresCdo/neuralgo/internal/activations"
	"github.com/AndresCdo/neuralgo/internal/layer"
	"github.com/AndresCdo/neuralgo/internal/linalg"
)

// ErrBadFormat indicates that persisted network text failed validation.
var ErrBadFormat = errors.New("net: malformed network file")

// formatMagic and formatVersion head every persisted network.
const (
	formatMagic   = "neuralgo"
	formatVersion = 1
)

// The format is line oriented and self describing:
//
//	neuralgo 1
//	layers <n>
//	layer <in> <out> <activation>
//	weights <out*in space-separated floats, row-major>
//	biases <out floats>
//	... repeated per layer ...
//
// Floats are printed with 17 significant digits, so a round trip reproduces
// every float64 bit for bit.

// Save serializes the network to a text file at path.
func (n *Network) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save network: %w", err)
	}
	defer file.Close()

	if err := n.Encode(file); err != nil {
		return fmt.Errorf("save network: %w", err)
	}
	return nil
}

// Load reads a network from the text file at path.
func Load(path string) (*Network, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	defer file.Close()

	n, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("load network %s: %w", path, err)
	}
	return n, nil
}

// Encode writes the network's textual form to w.
func (n *Network) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %d\n", formatMagic, formatVersion)
	fmt.Fprintf(bw, "layers %d\n", len(n.layers))
	for _, l := range n.layers {
		fmt.Fprintf(bw, "layer %d %d %s\n", l.InSize(), l.OutSize(), l.Activation().Name())
		writeFloatLine(bw, "weights", l.Weights().RawData())
		writeFloatLine(bw, "biases", l.Biases().RawData())
	}
	return bw.Flush()
}

func writeFloatLine(bw *bufio.Writer, key string, vals []float64) {
	bw.WriteString(key)
	for _, v := range vals {
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(v, 'g', 17, 64))
	}
	bw.WriteByte('\n')
}

// Decode parses a network from its textual form, validating the header,
// layer count, shapes, and float syntax. Any deviation fails with a wrapped
// ErrBadFormat instead of producing garbage layers.
func Decode(r io.Reader) (*Network, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	fields, err := scanLine(sc)
	if err != nil {
		return nil, err
	}
	if len(fields) != 2 || fields[0] != formatMagic {
		return nil, fmt.Errorf("%w: missing %q header", ErrBadFormat, formatMagic)
	}
	version, err := strconv.Atoi(fields[1])
	if err != nil || version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrBadFormat, fields[1])
	}

	fields, err = scanLine(sc)
	if err != nil {
		return nil, err
	}
	if len(fields) != 2 || fields[0] != "layers" {
		return nil, fmt.Errorf("%w: expected layer count line", ErrBadFormat)
	}
	count, err := strconv.Atoi(fields[1])
	if err != nil || count < 1 {
		return nil, fmt.Errorf("%w: bad layer count %q", ErrBadFormat, fields[1])
	}

	layers := make([]*layer.Dense, 0, count)
	for i := 0; i < count; i++ {
		l, err := decodeLayer(sc)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		layers = append(layers, l)
	}
	if sc.Scan() && strings.TrimSpace(sc.Text()) != "" {
		return nil, fmt.Errorf("%w: trailing content after last layer", ErrBadFormat)
	}

	n, err := New(layers...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	return n, nil
}

func decodeLayer(sc *bufio.Scanner) (*layer.Dense, error) {
	fields, err := scanLine(sc)
	if err != nil {
		return nil, err
	}
	if len(fields) != 4 || fields[0] != "layer" {
		return nil, fmt.Errorf("%w: expected layer header line", ErrBadFormat)
	}
	in, err := strconv.Atoi(fields[1])
	if err != nil || in < 1 {
		return nil, fmt.Errorf("%w: bad input width %q", ErrBadFormat, fields[1])
	}
	out, err := strconv.Atoi(fields[2])
	if err != nil || out < 1 {
		return nil, fmt.Errorf("%w: bad output width %q", ErrBadFormat, fields[2])
	}
	act, err := activations.ByName(fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	wdata, err := readFloatLine(sc, "weights", out*in)
	if err != nil {
		return nil, err
	}
	weights, err := linalg.NewMatrixFrom(out, in, wdata)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	bdata, err := readFloatLine(sc, "biases", out)
	if err != nil {
		return nil, err
	}

	l, err := layer.NewDenseFrom(weights, linalg.NewVector(bdata), act)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	return l, nil
}

func readFloatLine(sc *bufio.Scanner, key string, want int) ([]float64, error) {
	fields, err := scanLine(sc)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 || fields[0] != key {
		return nil, fmt.Errorf("%w: expected %q line", ErrBadFormat, key)
	}
	if len(fields)-1 != want {
		return nil, fmt.Errorf("%w: %q line holds %d values, want %d",
			ErrBadFormat, key, len(fields)-1, want)
	}
	vals := make([]float64, want)
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad float %q in %q line", ErrBadFormat, f, key)
		}
		vals[i] = v
	}
	return vals, nil
}

func scanLine(sc *bufio.Scanner) ([]string, error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		return strings.Fields(line), nil
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read network: %w", err)
	}
	return nil, fmt.Errorf("%w: unexpected end of input", ErrBadFormat)
}
