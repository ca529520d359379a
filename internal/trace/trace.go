// Package trace persists full-trace runs as JSON of the form
// {"virus": [day][row][col], "antibody": [day][row][col]}.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"pca-sim/internal/epidemic"
)

// Encode writes t as indented JSON.
func Encode(w io.Writer, t *epidemic.Trace) error {
	if err := Check(t); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("trace: encode: %w", err)
	}
	return nil
}

// Decode reads and shape-checks a trace.
func Decode(r io.Reader) (*epidemic.Trace, error) {
	var t epidemic.Trace
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("trace: decode: %w", err)
	}
	if err := Check(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Save writes t to path.
func Save(path string, t *epidemic.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	if err := Encode(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a trace from path.
func Load(path string) (*epidemic.Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Check verifies that both layers have the same number of days and that every
// frame is a square grid of the same size with values in [0,1].
func Check(t *epidemic.Trace) error {
	if t == nil {
		return fmt.Errorf("trace: nil trace")
	}
	if len(t.Virus) != len(t.Antibody) {
		return fmt.Errorf("trace: %d virus frames but %d antibody frames", len(t.Virus), len(t.Antibody))
	}
	if len(t.Virus) == 0 {
		return nil
	}
	n := len(t.Virus[0])
	for name, layer := range map[string][][][]float64{"virus": t.Virus, "antibody": t.Antibody} {
		for d, frame := range layer {
			if len(frame) != n {
				return fmt.Errorf("trace: %s day %d has %d rows, want %d", name, d, len(frame), n)
			}
			for r, row := range frame {
				if len(row) != n {
					return fmt.Errorf("trace: %s day %d row %d has %d columns, want %d", name, d, r, len(row), n)
				}
				for c, v := range row {
					if !(v >= 0 && v <= 1) {
						return fmt.Errorf("trace: %s day %d cell (%d,%d) = %v outside [0,1]", name, d, r, c, v)
					}
				}
			}
		}
	}
	return nil
}
