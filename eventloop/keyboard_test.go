// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package eventloop

import "testing"

func TestKeyIsPrintable(t *testing.T) {
	cases := []struct {
		key  Key
		want bool
	}{
		{"a", true},
		{"Z", true},
		{"/", true},
		{"ß", true},
		{KeySpace, true},
		{KeyTab, false},
		{KeyEnter, false},
		{KeyBackspace, false},
		{"ArrowLeft", false},
		{"", false},
	}
	for _, c := range cases {
		if got := c.key.IsPrintable(); got != c.want {
			t.Errorf("IsPrintable(%q) = %v, want %v", c.key, got, c.want)
		}
	}
}

func TestModifiersHas(t *testing.T) {
	mods := ModShift | ModControl
	if !mods.Has(ModShift) || !mods.Has(ModControl) {
		t.Error("held modifiers not reported")
	}
	if mods.Has(ModAlt) {
		t.Error("unheld modifier reported")
	}
	if !mods.Has(ModShift | ModControl) {
		t.Error("combined query failed")
	}
	if mods.Has(ModShift | ModAlt) {
		t.Error("partially held combination reported as held")
	}
}
