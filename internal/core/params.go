package core

import (
	"fmt"
	"io"
	"strings"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
	// ParamTypeString denotes enum-like or free-form parameters.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single configured value of a simulation.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the configuration a simulation was built with.
// Configuration is fixed for the lifetime of a run, so snapshots are read-only.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key across all groups.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// WriteTo prints the snapshot as an indented key=value listing.
func (s ParameterSnapshot) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, g := range s.Groups {
		fmt.Fprintf(&b, "%s\n", g.Name)
		for _, p := range g.Params {
			fmt.Fprintf(&b, "  %-24s %s = %s\n", p.Label, p.Key, p.Value)
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// ParameterSnapshotProvider is implemented by sims that can describe their
// configuration.
type ParameterSnapshotProvider interface {
	Parameters() ParameterSnapshot
}
