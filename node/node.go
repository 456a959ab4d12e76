// Package node defines the structured-node handle that descriptors load
// from and save to, plus a few concrete backends.
//
// A node is a tree of named scalar values and named child nodes. Descriptors
// only need to read a scalar (falling back to a default) and to write one;
// the tree format itself belongs to the backend.
package node

import (
	"math"
	"strconv"
	"strings"
)

// Reader gives read access to a node.
type Reader interface {
	// Value returns the scalar stored under name.
	Value(name string) (string, bool)
	// Child returns the child node stored under name.
	Child(name string) (Reader, bool)
}

// Writer gives write access to a node.
type Writer interface {
	// SetValue stores a scalar under name, replacing any previous value.
	SetValue(name, value string)
	// AddChild returns the child node stored under name, creating it if
	// needed.
	AddChild(name string) Writer
}

// Node is a readable and writable node.
type Node interface {
	Reader
	Writer
}

// Float returns the float stored under name, or def when it is missing or
// malformed. NaN counts as malformed. The second result reports whether the
// stored value was used.
func Float(r Reader, name string, def float64) (float64, bool) {
	s, ok := r.Value(name)
	if !ok {
		return def, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return def, false
	}
	return v, true
}

// Int returns the integer stored under name, or def when it is missing or
// malformed.
func Int(r Reader, name string, def int) (int, bool) {
	s, ok := r.Value(name)
	if !ok {
		return def, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def, false
	}
	return v, true
}

// Bool returns the flag stored under name, or def when it is missing or
// malformed.
func Bool(r Reader, name string, def bool) (bool, bool) {
	s, ok := r.Value(name)
	if !ok {
		return def, false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def, false
	}
	return v, true
}

// SetFloat stores v under name using the shortest exact representation.
func SetFloat(w Writer, name string, v float64) {
	w.SetValue(name, strconv.FormatFloat(v, 'g', -1, 64))
}

// SetInt stores v under name.
func SetInt(w Writer, name string, v int) {
	w.SetValue(name, strconv.Itoa(v))
}

// SetBool stores v under name.
func SetBool(w Writer, name string, v bool) {
	w.SetValue(name, strconv.FormatBool(v))
}
