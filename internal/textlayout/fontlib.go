/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"notepadino/internal/document"
)

// DefaultFamily is used when a requested family is unknown.
const DefaultFamily = "Go"

// FontSpec describes a requested font.
type FontSpec struct {
	Family string
	SizePt float64
	Bold   bool
	Italic bool
}

// SpecFor turns a character format into a FontSpec.
func SpecFor(f document.CharFormat) FontSpec {
	return FontSpec{Family: f.Font.Family, SizePt: f.Font.Size, Bold: f.Bold, Italic: f.Italic}
}

// Metrics are vertical font metrics in points.
type Metrics struct {
	Ascent, Descent, LineGap float64
}

// Height is the distance between two baselines.
func (m Metrics) Height() float64 { return m.Ascent + m.Descent + m.LineGap }

// Resolved is the concrete font a FontSpec maps to.
type Resolved struct {
	Family string
	Bold   bool
	Italic bool
	TTF    []byte
	Font   *opentype.Font
}

// Style returns the gofpdf style string: "", "B", "I" or "BI".
func (r Resolved) Style() string {
	s := ""
	if r.Bold {
		s += "B"
	}
	if r.Italic {
		s += "I"
	}
	return s
}

// FontLibrary stores loaded OpenType fonts mapped by family/bold/italic and
// caches faces per size. It is safe for concurrent use.
type FontLibrary struct {
	mu    sync.Mutex
	fonts map[fontKey]*entry
	order []string
	faces map[faceKey]font.Face
}

type fontKey struct {
	family string
	bold   bool
	italic bool
}

type faceKey struct {
	fontKey
	size, dpi float64
}

type entry struct {
	ttf  []byte
	font *opentype.Font
}

func NewFontLibrary() *FontLibrary {
	return &FontLibrary{fonts: make(map[fontKey]*entry), faces: make(map[faceKey]font.Face)}
}

// DefaultFontLibrary holds the Go font families.
func DefaultFontLibrary() (*FontLibrary, error) {
	fl := NewFontLibrary()
	builtin := []struct {
		family       string
		bold, italic bool
		ttf          []byte
	}{
		{"Go", false, false, goregular.TTF},
		{"Go", true, false, gobold.TTF},
		{"Go", false, true, goitalic.TTF},
		{"Go", true, true, gobolditalic.TTF},
		{"Go Medium", false, false, gomedium.TTF},
		{"Go Medium", false, true, gomediumitalic.TTF},
		{"Go Mono", false, false, gomono.TTF},
		{"Go Mono", true, false, gomonobold.TTF},
		{"Go Mono", false, true, gomonoitalic.TTF},
		{"Go Mono", true, true, gomonobolditalic.TTF},
		{"Go Smallcaps", false, false, gosmallcaps.TTF},
		{"Go Smallcaps", false, true, gosmallcapsitalic.TTF},
	}
	for _, b := range builtin {
		if err := fl.Register(b.family, b.bold, b.italic, b.ttf); err != nil {
			return nil, err
		}
	}
	return fl, nil
}

// Register adds a TrueType/OpenType font under family and style.
func (fl *FontLibrary) Register(family string, bold, italic bool, ttf []byte) error {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	k := fontKey{family: family, bold: bold, italic: italic}
	if !fl.hasFamilyLocked(family) {
		fl.order = append(fl.order, family)
	}
	fl.fonts[k] = &entry{ttf: ttf, font: f}
	for fk := range fl.faces {
		if fk.fontKey == k {
			delete(fl.faces, fk)
		}
	}
	return nil
}

// LoadTTF loads a font file into the library under the given family/style.
func (fl *FontLibrary) LoadTTF(family string, bold, italic bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return fl.Register(family, bold, italic, data)
}

// Families lists registered families in alphabetical order.
func (fl *FontLibrary) Families() []string {
	fl.mu.Lock()
	out := append([]string(nil), fl.order...)
	fl.mu.Unlock()
	sort.Strings(out)
	return out
}

// Has reports whether family is registered in any style.
func (fl *FontLibrary) Has(family string) bool {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.hasFamilyLocked(family)
}

func (fl *FontLibrary) hasFamilyLocked(family string) bool {
	for _, f := range fl.order {
		if f == family {
			return true
		}
	}
	return false
}

// Resolve picks the closest registered font: exact style, then the same
// family keeping italic, then the family's regular face, then DefaultFamily.
func (fl *FontLibrary) Resolve(spec FontSpec) (Resolved, bool) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	k, e := fl.findLocked(spec)
	if e == nil {
		return Resolved{}, false
	}
	return Resolved{Family: k.family, Bold: k.bold, Italic: k.italic, TTF: e.ttf, Font: e.font}, true
}

func (fl *FontLibrary) findLocked(spec FontSpec) (fontKey, *entry) {
	families := []string{spec.Family}
	if spec.Family != DefaultFamily {
		families = append(families, DefaultFamily)
	}
	if len(fl.order) > 0 {
		families = append(families, fl.order[0])
	}
	for _, fam := range families {
		for _, k := range []fontKey{
			{fam, spec.Bold, spec.Italic},
			{fam, false, spec.Italic},
			{fam, spec.Bold, false},
			{fam, false, false},
		} {
			if e, ok := fl.fonts[k]; ok {
				return k, e
			}
		}
	}
	return fontKey{}, nil
}

// Face returns a cached face for spec at dpi (72 when dpi <= 0).
func (fl *FontLibrary) Face(spec FontSpec, dpi float64) (font.Face, error) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.faceLocked(spec, dpi)
}

func (fl *FontLibrary) faceLocked(spec FontSpec, dpi float64) (font.Face, error) {
	if spec.SizePt <= 0 {
		spec.SizePt = 12
	}
	if dpi <= 0 {
		dpi = 72
	}
	k, e := fl.findLocked(spec)
	if e == nil {
		return nil, fmt.Errorf("no font for %q", spec.Family)
	}
	fk := faceKey{fontKey: k, size: spec.SizePt, dpi: dpi}
	if f, ok := fl.faces[fk]; ok {
		return f, nil
	}
	face, err := opentype.NewFace(e.font, &opentype.FaceOptions{Size: spec.SizePt, DPI: dpi, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("face %s %gpt: %w", k.family, spec.SizePt, err)
	}
	fl.faces[fk] = face
	return face, nil
}

// Metrics returns vertical metrics of spec in points.
func (fl *FontLibrary) Metrics(spec FontSpec) Metrics {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	face, err := fl.faceLocked(spec, 72)
	if err != nil {
		size := spec.SizePt
		if size <= 0 {
			size = 12
		}
		return Metrics{Ascent: size * 0.8, Descent: size * 0.2, LineGap: size * 0.15}
	}
	m := face.Metrics()
	asc, desc := toPt(m.Ascent), toPt(m.Descent)
	gap := toPt(m.Height) - asc - desc
	if gap < 0 {
		gap = 0
	}
	return Metrics{Ascent: asc, Descent: desc, LineGap: gap}
}

// Advance measures s in points, including kerning.
func (fl *FontLibrary) Advance(spec FontSpec, s string) float64 {
	if s == "" {
		return 0
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	face, err := fl.faceLocked(spec, 72)
	if err != nil {
		size := spec.SizePt
		if size <= 0 {
			size = 12
		}
		return float64(len([]rune(s))) * size * 0.5
	}
	return toPt(font.MeasureString(face, s))
}

func toPt(v fixed.Int26_6) float64 { return float64(v) / 64 }
