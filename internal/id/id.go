package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator returns a fresh identifier on each call.
type Generator func() string

// NewUUID returns a random (v4) UUID string.
func NewUUID() string {
	return uuid.NewString()
}

// Sequence returns a deterministic generator producing "prefix-0001",
// "prefix-0002", and so on. It is not safe for concurrent use.
func Sequence(prefix string) Generator {
	n := 0
	return func() string {
		n++
		return FormatSeq(prefix, n)
	}
}

// FormatSeq returns an ID like "exp-0007".
func FormatSeq(prefix string, seq int) string {
	return fmt.Sprintf("%s-%04d", prefix, seq)
}

// Short returns the display form of an ID: its first 8 characters.
func Short(s string) string {
	const n = 8
	if len(s) <= n {
		return s
	}
	return s[:n]
}
