/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package document

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"notepadino/internal/undo"
)

// Change tells listeners what part of the document moved.
type Change struct {
	Content   bool
	Selection bool
	Modified  bool
}

// Document is a rich-text buffer: plain runes, one CharFormat per rune and
// one Alignment per paragraph. Positions are rune offsets.
// It is not safe for concurrent use; the UI goroutine owns it.
type Document struct {
	text    []rune
	formats []CharFormat
	aligns  []Alignment

	anchor, cursor int
	typing         CharFormat
	def            CharFormat

	// rev identifies the current content; the document is modified when it
	// differs from cleanRev. Undo restores the rev stored in the snapshot.
	rev, nextRev, cleanRev int

	history *undo.Manager
	now     func() time.Time
	dmp     *diffmatchpatch.DiffMatchPatch

	onChange           []func(Change)
	onUndo, onRedo     []func(bool)
	lastUndo, lastRedo bool
}

// New returns an empty, unmodified document whose text uses def.
func New(def CharFormat) *Document {
	d := &Document{
		aligns: []Alignment{AlignLeft},
		typing: def,
		def:    def,
		now:    time.Now,
		dmp:    diffmatchpatch.New(),
		history: undo.NewManager(undo.Config{
			MaxBytes:    64 * 1024 * 1024,
			MaxDepth:    1000,
			MinInterval: 2 * time.Second,
		}),
	}
	d.history.OnChange(d.availabilityChanged)
	return d
}

// SetClock replaces the time source used to coalesce typing.
func (d *Document) SetClock(now func() time.Time) {
	if now != nil {
		d.now = now
	}
}

// DefaultFormat is the format new plain text gets.
func (d *Document) DefaultFormat() CharFormat { return d.def }

// SetDefaultFormat changes the format used by SetPlainText and Clear.
func (d *Document) SetDefaultFormat(f CharFormat) { d.def = f }

func (d *Document) OnChange(fn func(Change))      { d.onChange = append(d.onChange, fn) }
func (d *Document) OnUndoAvailable(fn func(bool)) { d.onUndo = append(d.onUndo, fn) }
func (d *Document) OnRedoAvailable(fn func(bool)) { d.onRedo = append(d.onRedo, fn) }

// SetPlainText replaces everything with s in the default format. History is
// dropped and the result is unmodified.
func (d *Document) SetPlainText(s string) {
	wasModified := d.IsModified()
	d.text = []rune(s)
	d.formats = make([]CharFormat, len(d.text))
	for i := range d.formats {
		d.formats[i] = d.def
	}
	d.aligns = make([]Alignment, strings.Count(s, "\n")+1)
	d.anchor, d.cursor = 0, 0
	d.typing = d.def
	d.bumpRev()
	d.cleanRev = d.rev
	d.history.Clear()
	d.emit(Change{Content: true, Selection: true, Modified: wasModified})
}

// Clear empties the document.
func (d *Document) Clear() { d.SetPlainText("") }

func (d *Document) PlainText() string { return string(d.text) }
func (d *Document) Len() int          { return len(d.text) }

func (d *Document) IsModified() bool { return d.rev != d.cleanRev }

// SetModified marks the current content clean (false) or dirty (true).
func (d *Document) SetModified(m bool) {
	if m == d.IsModified() {
		return
	}
	if m {
		d.cleanRev = -1
	} else {
		d.cleanRev = d.rev
		// the clean state must stay reachable by undo
		d.history.Seal()
	}
	d.emit(Change{Modified: true})
}

func (d *Document) Cursor() int { return d.cursor }

// Anchor is the fixed end of the selection.
func (d *Document) Anchor() int { return d.anchor }

// Selection returns the ordered selection bounds.
func (d *Document) Selection() (start, end int) {
	if d.anchor < d.cursor {
		return d.anchor, d.cursor
	}
	return d.cursor, d.anchor
}

func (d *Document) HasSelection() bool { return d.anchor != d.cursor }

func (d *Document) SelectedText() string {
	s, e := d.Selection()
	return string(d.text[s:e])
}

// SetCursor collapses the selection at pos.
func (d *Document) SetCursor(pos int) { d.Select(pos, pos) }

// Select places the anchor and the cursor; both are clamped to the text.
func (d *Document) Select(anchor, cursor int) {
	anchor, cursor = d.clamp(anchor), d.clamp(cursor)
	if anchor == d.anchor && cursor == d.cursor {
		return
	}
	d.anchor, d.cursor = anchor, cursor
	d.typing = d.formatAtCursor()
	d.history.Seal()
	d.emit(Change{Selection: true})
}

func (d *Document) SelectAll()   { d.Select(0, len(d.text)) }
func (d *Document) MoveToStart() { d.SetCursor(0) }

// LineColumn converts a position into zero-based line and column.
func (d *Document) LineColumn(pos int) (line, col int) {
	pos = d.clamp(pos)
	for i := 0; i < pos; i++ {
		if d.text[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

// CurrentFormat is the format that typing at the cursor would produce: the
// pending typing format without a selection, else the format before the cursor.
func (d *Document) CurrentFormat() CharFormat {
	if d.HasSelection() {
		return d.formatAtCursor()
	}
	return d.typing
}

// InsertText replaces the selection (if any) with s in the current format.
func (d *Document) InsertText(s string) {
	if s == "" && !d.HasSelection() {
		return
	}
	f := d.CurrentFormat()
	d.mutate("insert", false, func() {
		start, end := d.Selection()
		rs := []rune(s)
		d.replace(start, end, rs, repeatFormat(f, len(rs)))
		d.anchor, d.cursor = start+len(rs), start+len(rs)
		d.typing = f
	})
}

// DeleteSelection removes the selected text.
func (d *Document) DeleteSelection() {
	if !d.HasSelection() {
		return
	}
	d.InsertText("")
}

// ApplyEdit maps a full-text change made by an editing widget onto the
// document. The change is taken as one replaced range that ends at cursor in
// newText when the texts allow it, so typing next to an equal character
// inserts where the user typed. Untouched text keeps its formats; inserted
// text takes the current format. Consecutive edits coalesce into one undo step.
func (d *Document) ApplyEdit(newText string, cursor int) {
	old := string(d.text)
	if newText == old {
		d.SetCursor(cursor)
		return
	}
	oldLen, newLen := len(d.text), utf8.RuneCountInString(newText)
	cursor = min(max(cursor, 0), newLen)
	short := min(oldLen, newLen)
	suffix := min(d.dmp.DiffCommonSuffix(old, newText), newLen-cursor, short)
	prefix := min(d.dmp.DiffCommonPrefix(old, newText), short-suffix)
	ins := []rune(newText)[prefix : newLen-suffix]
	d.replaceRange(prefix, oldLen-suffix, ins, cursor, "typing", true)
}

// ReplaceRange replaces text[start:end] with s in the current format and
// leaves the cursor after it. Consecutive calls coalesce like typing.
func (d *Document) ReplaceRange(start, end int, s string) {
	start, end = d.clamp(start), d.clamp(end)
	if start > end {
		start, end = end, start
	}
	rs := []rune(s)
	if start == end && len(rs) == 0 {
		return
	}
	d.replaceRange(start, end, rs, start+len(rs), "typing", true)
}

func (d *Document) replaceRange(start, end int, rs []rune, cursor int, label string, coalesce bool) {
	f := d.CurrentFormat()
	d.mutate(label, coalesce, func() {
		d.replace(start, end, rs, repeatFormat(f, len(rs)))
		c := d.clamp(cursor)
		d.anchor, d.cursor = c, c
		d.typing = f
	})
}

// Find returns the position of the first literal, case-sensitive occurrence
// of term at or after from.
func (d *Document) Find(term string, from int) (int, bool) {
	if term == "" {
		return 0, false
	}
	t := []rune(term)
	for i := d.clamp(from); i+len(t) <= len(d.text); i++ {
		if d.text[i] == t[0] && slices.Equal(d.text[i:i+len(t)], t) {
			return i, true
		}
	}
	return 0, false
}

// ReplaceAll replaces every non-overlapping occurrence of term in one undo
// step and returns the count. Each replacement takes the format of the first
// character it replaces; everything else keeps its format.
func (d *Document) ReplaceAll(term, repl string) int {
	if term == "" {
		return 0
	}
	hits := d.findAll(term)
	if len(hits) == 0 {
		return 0
	}
	n := utf8.RuneCountInString(term)
	rs := []rune(repl)
	k := strings.Count(repl, "\n")
	d.mutate("replace all", false, func() {
		grow := len(hits) * (len(rs) - n)
		text := make([]rune, 0, len(d.text)+max(grow, 0))
		formats := make([]CharFormat, 0, cap(text))
		aligns := make([]Alignment, 0, len(d.aligns))
		para, last := 0, 0
		// copyUpTo keeps text[last:upto] and the alignments of the paragraphs it starts.
		copyUpTo := func(upto int) {
			for _, r := range d.text[last:upto] {
				if r == '\n' {
					para++
					aligns = append(aligns, d.aligns[para])
				}
			}
			text = append(text, d.text[last:upto]...)
			formats = append(formats, d.formats[last:upto]...)
		}
		aligns = append(aligns, d.aligns[0])
		// the cursor keeps its place in untouched text and moves past a
		// replacement it pointed into
		cursor, shift := -1, 0
		for _, p := range hits {
			if cursor < 0 && p+n > d.cursor {
				if p < d.cursor {
					cursor = p + shift + len(rs)
				} else {
					cursor = d.cursor + shift
				}
			}
			copyUpTo(p)
			first := aligns[len(aligns)-1]
			for _, r := range d.text[p : p+n] {
				if r == '\n' {
					para++
				}
			}
			for i := 0; i < k; i++ {
				aligns = append(aligns, first)
			}
			text = append(text, rs...)
			formats = append(formats, repeatFormat(d.formats[p], len(rs))...)
			last = p + n
			shift += len(rs) - n
		}
		if cursor < 0 {
			cursor = d.cursor + shift
		}
		copyUpTo(len(d.text))
		d.text, d.formats, d.aligns = text, formats, aligns
		c := d.clamp(cursor)
		d.anchor, d.cursor = c, c
		d.typing = d.formatAtCursor()
	})
	return len(hits)
}

// findAll returns the rune offsets of every non-overlapping match in one
// pass over the text.
func (d *Document) findAll(term string) []int {
	s := string(d.text)
	var hits []int
	pos, byteOff := 0, 0
	for {
		i := strings.Index(s[byteOff:], term)
		if i < 0 {
			return hits
		}
		pos += utf8.RuneCountInString(s[byteOff : byteOff+i])
		hits = append(hits, pos)
		byteOff += i + len(term)
		pos += utf8.RuneCountInString(term)
	}
}

// MergeFormat applies p to the selection as one undo step, or to the typing
// format when nothing is selected.
func (d *Document) MergeFormat(p Patch) {
	if !d.HasSelection() {
		d.typing = p.Apply(d.typing)
		return
	}
	start, end := d.Selection()
	changed := false
	for i := start; i < end; i++ {
		if p.Apply(d.formats[i]) != d.formats[i] {
			changed = true
			break
		}
	}
	if !changed {
		return
	}
	d.mutate("format", false, func() {
		for i := start; i < end; i++ {
			d.formats[i] = p.Apply(d.formats[i])
		}
	})
}

// SetAlignment aligns every paragraph touched by the selection.
func (d *Document) SetAlignment(a Alignment) {
	start, end := d.Selection()
	p0, p1 := d.paragraphAt(start), d.paragraphAt(end)
	changed := false
	for i := p0; i <= p1; i++ {
		if d.aligns[i] != a {
			changed = true
		}
	}
	if !changed {
		return
	}
	d.mutate("alignment", false, func() {
		for i := p0; i <= p1; i++ {
			d.aligns[i] = a
		}
	})
}

// Alignment of the paragraph holding the cursor.
func (d *Document) Alignment() Alignment {
	return d.aligns[d.paragraphAt(d.cursor)]
}

// Paragraphs splits the document into runs of equal format per line.
func (d *Document) Paragraphs() []Paragraph {
	out := make([]Paragraph, 0, len(d.aligns))
	cur := Paragraph{Align: d.aligns[0], EndFormat: d.def}
	var b strings.Builder
	runStart := -1
	flush := func() {
		if runStart >= 0 {
			cur.Runs = append(cur.Runs, Run{Text: b.String(), Format: d.formats[runStart]})
			b.Reset()
			runStart = -1
		}
	}
	for i, r := range d.text {
		if r == '\n' {
			flush()
			cur.EndFormat = d.formats[i]
			out = append(out, cur)
			cur = Paragraph{Align: d.aligns[len(out)], EndFormat: d.formats[i]}
			continue
		}
		if runStart >= 0 && d.formats[runStart] != d.formats[i] {
			flush()
		}
		if runStart < 0 {
			runStart = i
		}
		b.WriteRune(r)
	}
	flush()
	if n := len(cur.Runs); n > 0 {
		cur.EndFormat = cur.Runs[n-1].Format
	} else if len(d.text) == 0 {
		cur.EndFormat = d.typing
	}
	return append(out, cur)
}

// FormatAt returns the format of the character at pos.
func (d *Document) FormatAt(pos int) CharFormat {
	if pos < 0 || pos >= len(d.formats) {
		return d.def
	}
	return d.formats[pos]
}

func (d *Document) CanUndo() bool { return d.history.CanUndo() }
func (d *Document) CanRedo() bool { return d.history.CanRedo() }

// Undo restores the state before the latest change.
func (d *Document) Undo() bool {
	s, ok := d.history.Undo(d.snapshot("", false))
	if !ok {
		return false
	}
	d.restore(s)
	return true
}

// Redo re-applies the latest undone change.
func (d *Document) Redo() bool {
	s, ok := d.history.Redo(d.snapshot("", false))
	if !ok {
		return false
	}
	d.restore(s)
	return true
}

// mutate records the state before fn as an undo step, runs fn and notifies.
func (d *Document) mutate(label string, coalesce bool, fn func()) {
	wasModified := d.IsModified()
	before := d.snapshot(label, coalesce)
	fn()
	d.bumpRev()
	d.history.Push(before)
	d.emit(Change{Content: true, Selection: true, Modified: wasModified != d.IsModified()})
}

// replace swaps text[start:end] for rs. A joined paragraph keeps the
// alignment of its first line; new paragraphs inherit it.
func (d *Document) replace(start, end int, rs []rune, fs []CharFormat) {
	p0, p1 := d.paragraphAt(start), d.paragraphAt(end)
	k := 0
	for _, r := range rs {
		if r == '\n' {
			k++
		}
	}
	aligns := make([]Alignment, 0, len(d.aligns)-(p1-p0)+k)
	aligns = append(aligns, d.aligns[:p0+1]...)
	for i := 0; i < k; i++ {
		aligns = append(aligns, d.aligns[p0])
	}
	aligns = append(aligns, d.aligns[p1+1:]...)
	d.aligns = aligns

	text := make([]rune, 0, len(d.text)-(end-start)+len(rs))
	text = append(append(append(text, d.text[:start]...), rs...), d.text[end:]...)
	formats := make([]CharFormat, 0, len(text))
	formats = append(append(append(formats, d.formats[:start]...), fs...), d.formats[end:]...)
	d.text, d.formats = text, formats
}

func (d *Document) paragraphAt(pos int) int {
	n := 0
	for _, r := range d.text[:d.clamp(pos)] {
		if r == '\n' {
			n++
		}
	}
	return n
}

func (d *Document) formatAtCursor() CharFormat {
	c := d.cursor
	switch {
	case c > 0 && d.text[c-1] != '\n':
		return d.formats[c-1]
	case c < len(d.text) && d.text[c] != '\n':
		return d.formats[c]
	case c > 0:
		return d.formats[c-1]
	default:
		return d.typing
	}
}

func (d *Document) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(d.text) {
		return len(d.text)
	}
	return pos
}

func (d *Document) bumpRev() {
	d.nextRev++
	d.rev = d.nextRev
}

func (d *Document) emit(c Change) {
	for _, fn := range d.onChange {
		fn(c)
	}
}

func (d *Document) availabilityChanged(canUndo, canRedo bool) {
	if canUndo != d.lastUndo {
		d.lastUndo = canUndo
		for _, fn := range d.onUndo {
			fn(canUndo)
		}
	}
	if canRedo != d.lastRedo {
		d.lastRedo = canRedo
		for _, fn := range d.onRedo {
			fn(canRedo)
		}
	}
}

type formatRun struct {
	N int        `json:"n"`
	F CharFormat `json:"f"`
}

type state struct {
	Text   string      `json:"text"`
	Runs   []formatRun `json:"runs"`
	Aligns []Alignment `json:"aligns"`
	Anchor int         `json:"anchor"`
	Cursor int         `json:"cursor"`
	Rev    int         `json:"rev"`
}

func (d *Document) snapshot(label string, coalesce bool) undo.Snapshot {
	st := state{
		Text:   string(d.text),
		Aligns: append([]Alignment(nil), d.aligns...),
		Anchor: d.anchor,
		Cursor: d.cursor,
		Rev:    d.rev,
	}
	for _, f := range d.formats {
		if n := len(st.Runs); n > 0 && st.Runs[n-1].F == f {
			st.Runs[n-1].N++
			continue
		}
		st.Runs = append(st.Runs, formatRun{N: 1, F: f})
	}
	blob, _ := json.Marshal(st)
	return undo.Snapshot{Label: label, Blob: blob, TS: d.now(), Coalesce: coalesce}
}

func (d *Document) restore(s undo.Snapshot) {
	var st state
	if err := json.Unmarshal(s.Blob, &st); err != nil {
		return
	}
	wasModified := d.IsModified()
	d.text = []rune(st.Text)
	d.formats = make([]CharFormat, 0, len(d.text))
	for _, r := range st.Runs {
		d.formats = append(d.formats, repeatFormat(r.F, r.N)...)
	}
	d.aligns = st.Aligns
	d.anchor, d.cursor = d.clamp(st.Anchor), d.clamp(st.Cursor)
	d.rev = st.Rev
	d.typing = d.formatAtCursor()
	d.emit(Change{Content: true, Selection: true, Modified: wasModified != d.IsModified()})
}

func repeatFormat(f CharFormat, n int) []CharFormat {
	out := make([]CharFormat, n)
	for i := range out {
		out[i] = f
	}
	return out
}
