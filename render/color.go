// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

var namedColors = map[string]gg.RGBA{
	"black":   gg.RGB(0, 0, 0),
	"white":   gg.RGB(1, 1, 1),
	"red":     gg.RGB(1, 0, 0),
	"green":   gg.RGB(0, 0.5, 0),
	"blue":    gg.RGB(0, 0, 1),
	"yellow":  gg.RGB(1, 1, 0),
	"cyan":    gg.RGB(0, 1, 1),
	"magenta": gg.RGB(1, 0, 1),
	"gray":    gg.RGB(0.5, 0.5, 0.5),
	"orange":  gg.RGB(1, 0.65, 0),
}

// ParseColor resolves a background attribute value: a named color or a
// #rgb / #rrggbb hex triplet. Unrecognized values report false and the
// node paints nothing.
func ParseColor(v string) (gg.RGBA, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if c, ok := namedColors[v]; ok {
		return c, true
	}
	if !strings.HasPrefix(v, "#") {
		return gg.RGBA{}, false
	}
	hex := v[1:]
	switch len(hex) {
	case 3:
		var p [3]float64
		for i := 0; i < 3; i++ {
			d, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return gg.RGBA{}, false
			}
			p[i] = float64(d*17) / 255
		}
		return gg.RGB(p[0], p[1], p[2]), true
	case 6:
		var p [3]float64
		for i := 0; i < 3; i++ {
			d, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
			if err != nil {
				return gg.RGBA{}, false
			}
			p[i] = float64(d) / 255
		}
		return gg.RGB(p[0], p[1], p[2]), true
	}
	return gg.RGBA{}, false
}
