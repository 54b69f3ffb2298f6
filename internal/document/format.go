/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package document

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an 8-bit non-premultiplied RGBA colour. Alpha 0 means "no colour";
// a zero Background therefore renders nothing.
type Color struct {
	R, G, B, A uint8
}

var (
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// IsSet reports whether the colour is visible at all.
func (c Color) IsSet() bool { return c.A != 0 }

// Hex renders #rrggbb, or #rrggbbaa when the colour is not opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHex accepts #rgb, #rrggbb and #rrggbbaa (the leading # is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(h) == 6 {
		return Color{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
	}
	return Color{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// FromColor converts any color.Color.
func FromColor(c color.Color) Color {
	if c == nil {
		return Color{}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B, n.A}
}

// Font names a family and a point size.
type Font struct {
	Family string
	Size   float64
}

func (f Font) String() string {
	return fmt.Sprintf("%s %gpt", f.Family, f.Size)
}

// CharFormat is the formatting carried by every character.
type CharFormat struct {
	Font       Font
	Bold       bool
	Italic     bool
	Underline  bool
	Strike     bool
	Foreground Color
	Background Color
}

// Patch describes a partial format change; nil fields are left alone.
type Patch struct {
	Font       *Font
	Bold       *bool
	Italic     *bool
	Underline  *bool
	Strike     *bool
	Foreground *Color
	Background *Color
}

func SetBold(v bool) Patch        { return Patch{Bold: &v} }
func SetItalic(v bool) Patch      { return Patch{Italic: &v} }
func SetUnderline(v bool) Patch   { return Patch{Underline: &v} }
func SetStrike(v bool) Patch      { return Patch{Strike: &v} }
func SetFont(f Font) Patch        { return Patch{Font: &f} }
func SetForeground(c Color) Patch { return Patch{Foreground: &c} }
func SetBackground(c Color) Patch { return Patch{Background: &c} }

// Apply returns f with the patch merged in.
func (p Patch) Apply(f CharFormat) CharFormat {
	if p.Font != nil {
		f.Font = *p.Font
	}
	if p.Bold != nil {
		f.Bold = *p.Bold
	}
	if p.Italic != nil {
		f.Italic = *p.Italic
	}
	if p.Underline != nil {
		f.Underline = *p.Underline
	}
	if p.Strike != nil {
		f.Strike = *p.Strike
	}
	if p.Foreground != nil {
		f.Foreground = *p.Foreground
	}
	if p.Background != nil {
		f.Background = *p.Background
	}
	return f
}

// Alignment is a paragraph's horizontal alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// Run is a maximal span of equally formatted text inside a paragraph.
type Run struct {
	Text   string
	Format CharFormat
}

// Paragraph is one line of the document as separated by '\n'.
type Paragraph struct {
	Runs  []Run
	Align Alignment
	// EndFormat sizes an empty paragraph and the caret at its end.
	EndFormat CharFormat
}

// Text concatenates the runs.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
