package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// NewFunc returns a new globally unique identifier as string. Override in
// tests for determinism.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new identifier produced by NewFunc.
func New() string { return NewFunc() }

// Sequence returns a deterministic generator producing prefix-1, prefix-2, ...
func Sequence(prefix string) func() string {
	var counter atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, counter.Add(1))
	}
}
