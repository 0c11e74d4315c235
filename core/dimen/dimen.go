// Package dimen parses font sizes given in CSS units.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Dimen is a length in 1/65536 pixel. Rasters are rendered at 72 dpi, so
// a pixel is a big point.
type Dimen int32

// Units
const (
	PX Dimen = 65536   // raster pixel
	BP Dimen = 65536   // big point (PDF) = 1/72 inch
	PT Dimen = 65291   // printers point 1/72.27 inch
	MM Dimen = 185771  // millimeters
	CM Dimen = 1857710 // centimeters
	IN Dimen = 4718592 // inch
)

var units = map[string]Dimen{
	"":   PX,
	"px": PX,
	"bp": BP,
	"pt": PT,
	"mm": MM,
	"cm": CM,
	"in": IN,
}

func (d Dimen) String() string {
	return strconv.FormatFloat(d.Pixels(), 'f', -1, 64) + "px"
}

// Pixels returns a dimension in raster pixels.
func (d Dimen) Pixels() float64 {
	return float64(d) / float64(PX)
}

var sizePattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?|\.[0-9]+)([a-zA-Z]{2})?$`)

// ParseSize parses a font size like `12.5pt`. A bare number is a size in
// pixels. Sizes are never negative.
func ParseSize(s string) (Dimen, error) {
	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("format error parsing size %q", s)
	}
	scale, ok := units[strings.ToLower(m[2])]
	if !ok {
		return 0, fmt.Errorf("unknown unit in size %q", s)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("format error parsing size %q", s)
	}
	v := math.Round(n * float64(scale))
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("size %q out of range", s)
	}
	return Dimen(v), nil
}
