// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// number of supported states
const states = 12

// lzmaState describes the history of the last symbols. The values 0..6 are
// reached after literals, 7..11 after matches, repetitions and short
// repetitions.
type lzmaState uint32

// updateLiteral updates the state for a literal.
func (s *lzmaState) updateLiteral() {
	switch {
	case *s < 4:
		*s = 0
	case *s < 10:
		*s -= 3
	default:
		*s -= 6
	}
}

// updateMatch updates the state for a match.
func (s *lzmaState) updateMatch() {
	if *s < 7 {
		*s = 7
	} else {
		*s = 10
	}
}

// updateRep updates the state for a repetition.
func (s *lzmaState) updateRep() {
	if *s < 7 {
		*s = 8
	} else {
		*s = 11
	}
}

// updateShortRep updates the state for a short repetition.
func (s *lzmaState) updateShortRep() {
	if *s < 7 {
		*s = 9
	} else {
		*s = 11
	}
}

// isLiteral reports whether the last symbol has been a literal.
func (s lzmaState) isLiteral() bool {
	return s < 7
}
