/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Pagination of rich paragraphs onto fixed-size pages. All coordinates are
// points measured from the top-left corner of the page.

import (
	"strings"

	"notepadino/internal/document"
)

// PageSetup is the paper size and a uniform margin, in points.
type PageSetup struct {
	Width, Height float64
	Margin        float64
}

var pageSizes = map[string][2]float64{
	"A4":     {595.28, 841.89},
	"A5":     {419.53, 595.28},
	"LETTER": {612, 792},
	"LEGAL":  {612, 1008},
}

// PageSizeNames lists the supported paper names for pickers.
var PageSizeNames = []string{"A4", "A5", "Letter", "Legal"}

// NewPageSetup resolves a paper name (A4, A5, Letter, Legal); unknown names fall back to A4.
func NewPageSetup(name string, margin float64) PageSetup {
	sz, ok := pageSizes[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		sz = pageSizes["A4"]
	}
	if margin < 0 {
		margin = 0
	}
	return PageSetup{Width: sz[0], Height: sz[1], Margin: margin}
}

// KnownPageSize reports whether name is a supported paper size.
func KnownPageSize(name string) bool {
	_, ok := pageSizes[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}

func (s PageSetup) ContentWidth() float64  { return s.Width - 2*s.Margin }
func (s PageSetup) ContentHeight() float64 { return s.Height - 2*s.Margin }

// Fragment is a piece of equally formatted text placed on a line.
type Fragment struct {
	X, Width float64
	Text     string
	Format   document.CharFormat
}

// Line is one laid-out line.
type Line struct {
	Top, Baseline, Height float64
	Ascent, Descent       float64
	Width                 float64
	Fragments             []Fragment
}

// Page is a laid-out page; Number starts at 1.
type Page struct {
	Number int
	Lines  []Line
}

// Paginator word-wraps paragraphs to the page content width and splits the
// result into pages.
type Paginator struct {
	Fonts *FontLibrary
	Setup PageSetup
	// LineSpacing scales line height; 0 means 1.
	LineSpacing float64
}

type piece struct {
	text string
	f    document.CharFormat
	w    float64
}

// item is either a single space or a word; a word may span several runs.
type item struct {
	pieces []piece
	space  bool
	w      float64
}

// Paginate lays out paras. The result always has at least one page.
func (p Paginator) Paginate(paras []document.Paragraph) []Page {
	lines := make([]Line, 0, len(paras))
	for _, para := range paras {
		lines = append(lines, p.layoutParagraph(para)...)
	}
	return p.paginate(lines)
}

func (p Paginator) paginate(lines []Line) []Page {
	top := p.Setup.Margin
	bottom := p.Setup.Height - p.Setup.Margin
	pages := []Page{{Number: 1}}
	y := top
	for _, ln := range lines {
		cur := &pages[len(pages)-1]
		if y+ln.Height > bottom && len(cur.Lines) > 0 {
			pages = append(pages, Page{Number: len(pages) + 1})
			cur = &pages[len(pages)-1]
			y = top
		}
		ln.Top = y
		ln.Baseline = y + ln.Ascent
		cur.Lines = append(cur.Lines, ln)
		y += ln.Height
	}
	return pages
}

func (p Paginator) layoutParagraph(para document.Paragraph) []Line {
	cw := p.Setup.ContentWidth()
	items := p.items(para)

	var rows [][]item
	var cur []item
	w := 0.0
	hasWord := func() bool {
		for _, it := range cur {
			if !it.space {
				return true
			}
		}
		return false
	}
	flush := func() {
		rows = append(rows, cur)
		cur, w = nil, 0
	}
	for _, it := range items {
		if it.space {
			// wrapped lines do not start with a space
			if len(cur) == 0 && len(rows) > 0 {
				continue
			}
			cur = append(cur, it)
			w += it.w
			continue
		}
		if w+it.w > cw && hasWord() {
			flush()
		}
		if it.w > cw && cw > 0 {
			chunks := p.splitWord(it, cw-w)
			for _, c := range chunks[:len(chunks)-1] {
				cur = append(cur, c)
				flush()
			}
			it = chunks[len(chunks)-1]
		}
		cur = append(cur, it)
		w += it.w
	}
	rows = append(rows, cur)

	out := make([]Line, 0, len(rows))
	for i, row := range rows {
		out = append(out, p.buildLine(row, para, i == len(rows)-1))
	}
	return out
}

// items splits runs into words and single spaces. Tabs become four spaces.
func (p Paginator) items(para document.Paragraph) []item {
	var items []item
	for _, r := range para.Runs {
		text := strings.ReplaceAll(r.Text, "\t", "    ")
		spec := SpecFor(r.Format)
		for len(text) > 0 {
			if text[0] == ' ' {
				sw := p.Fonts.Advance(spec, " ")
				items = append(items, item{pieces: []piece{{" ", r.Format, sw}}, space: true, w: sw})
				text = text[1:]
				continue
			}
			word := text
			if i := strings.IndexByte(text, ' '); i > 0 {
				word = text[:i]
			}
			text = text[len(word):]
			pc := piece{word, r.Format, p.Fonts.Advance(spec, word)}
			if n := len(items); n > 0 && !items[n-1].space {
				items[n-1].pieces = append(items[n-1].pieces, pc)
				items[n-1].w += pc.w
				continue
			}
			items = append(items, item{pieces: []piece{pc}, w: pc.w})
		}
	}
	return items
}

// splitWord breaks a word that is wider than the line by rune. The first
// chunk fits into first points when possible, the rest into width.
func (p Paginator) splitWord(it item, first float64) []item {
	width := p.Setup.ContentWidth()
	limit := first
	if limit <= 0 {
		limit = width
	}
	var chunks []item
	var cur item
	for _, pc := range it.pieces {
		spec := SpecFor(pc.f)
		var b strings.Builder
		bw := 0.0
		emit := func() {
			if b.Len() > 0 {
				cur.pieces = append(cur.pieces, piece{b.String(), pc.f, bw})
				cur.w += bw
				b.Reset()
				bw = 0
			}
		}
		for _, r := range pc.text {
			rw := p.Fonts.Advance(spec, string(r))
			if cur.w+bw+rw > limit && (cur.w+bw > 0 || limit < width) {
				emit()
				chunks = append(chunks, cur)
				cur = item{}
				limit = width
			}
			b.WriteRune(r)
			bw += rw
		}
		emit()
	}
	return append(chunks, cur)
}

func (p Paginator) buildLine(row []item, para document.Paragraph, last bool) Line {
	for len(row) > 0 && row[len(row)-1].space {
		row = row[:len(row)-1]
	}
	ln := Line{}
	set := false
	for _, it := range row {
		for _, pc := range it.pieces {
			m := p.Fonts.Metrics(SpecFor(pc.f))
			if !set || m.Ascent > ln.Ascent {
				ln.Ascent = m.Ascent
			}
			if !set || m.Descent > ln.Descent {
				ln.Descent = m.Descent
			}
			if h := m.Height(); !set || h > ln.Height {
				ln.Height = h
			}
			set = true
			ln.Width += pc.w
		}
	}
	if !set {
		m := p.Fonts.Metrics(SpecFor(para.EndFormat))
		ln.Ascent, ln.Descent, ln.Height = m.Ascent, m.Descent, m.Height()
	}
	if p.LineSpacing > 0 {
		ln.Height *= p.LineSpacing
	}

	slack := p.Setup.ContentWidth() - ln.Width
	if slack < 0 {
		slack = 0
	}
	x := p.Setup.Margin
	extra := 0.0
	switch para.Align {
	case document.AlignCenter:
		x += slack / 2
	case document.AlignRight:
		x += slack
	case document.AlignJustify:
		if !last {
			if n := interiorSpaces(row); n > 0 {
				extra = slack / float64(n)
			}
		}
	}
	seenWord := false
	for _, it := range row {
		for _, pc := range it.pieces {
			fw := pc.w
			if it.space && seenWord {
				fw += extra
			}
			if n := len(ln.Fragments); n > 0 && extra == 0 && ln.Fragments[n-1].Format == pc.f {
				ln.Fragments[n-1].Text += pc.text
				ln.Fragments[n-1].Width += fw
			} else {
				ln.Fragments = append(ln.Fragments, Fragment{X: x, Width: fw, Text: pc.text, Format: pc.f})
			}
			x += fw
		}
		if !it.space {
			seenWord = true
		}
	}
	if extra > 0 {
		ln.Width += extra * float64(interiorSpaces(row))
	}
	return ln
}

// interiorSpaces counts spaces after the first word of a trimmed row.
func interiorSpaces(row []item) int {
	n := 0
	seenWord := false
	for _, it := range row {
		if !it.space {
			seenWord = true
			continue
		}
		if seenWord {
			n++
		}
	}
	return n
}
