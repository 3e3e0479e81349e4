// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package eventloop

import "unicode/utf8"

// Key is the logical key produced by a keystroke, following the W3C
// UI Events key values: printable keys carry their text ("a", "B", "/"),
// named keys carry their name ("Tab", "Enter").
//
// Translation from platform scancodes happens at the OS boundary, before
// an event enters the loop. corgo never substitutes a placeholder key.
type Key string

// Named keys used by the window task itself. Other named keys pass
// through untouched.
const (
	KeyTab       Key = "Tab"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
	KeySpace     Key = " "
	KeyBackspace Key = "Backspace"
	KeyDelete    Key = "Delete"
	KeyArrowUp   Key = "ArrowUp"
	KeyArrowDown Key = "ArrowDown"
)

// IsPrintable reports whether the key produces text, i.e. whether a
// keypress event should fire for it.
func (k Key) IsPrintable() bool {
	if k == KeySpace {
		return true
	}
	return utf8.RuneCountInString(string(k)) == 1
}

// Code is the physical key position, following the W3C UI Events code
// values ("KeyA", "Digit1", "Tab").
type Code string

// Modifiers is the set of modifier keys held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModMeta
)

// Has reports whether every modifier in m is held.
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}
