package service

import (
	"crypto/subtle"
	"slices"
)

// PatternComparator decides whether a submitted pattern matches the stored one.
type PatternComparator interface {
	Match(stored, submitted []int) bool
}

// FaceComparator decides whether a submitted image matches the stored
// reference.  A similarity or embedding-distance implementation can be
// plugged in here without touching the account or HTTP layers.
type FaceComparator interface {
	Match(stored, submitted []byte) bool
}

// ExactPattern requires element-wise equality, so order and length matter.
type ExactPattern struct{}

func (ExactPattern) Match(stored, submitted []int) bool { return slices.Equal(stored, submitted) }

// ExactFace requires byte-for-byte equality of the decoded images.
type ExactFace struct{}

func (ExactFace) Match(stored, submitted []byte) bool {
	return len(stored) == len(submitted) && subtle.ConstantTimeCompare(stored, submitted) == 1
}
