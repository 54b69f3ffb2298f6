/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"notepadino/internal/clipboard"
	"notepadino/internal/config"
	"notepadino/internal/document"
	"notepadino/internal/printing"
	"notepadino/internal/shell"
	"notepadino/internal/textlayout"
)

type nopSpooler struct{}

func (nopSpooler) Spool(context.Context, string, printing.Settings) error { return nil }

func newTestModel(t *testing.T, file string) *model {
	t.Helper()
	fonts, err := textlayout.DefaultFontLibrary()
	if err != nil {
		t.Fatalf("fonts: %v", err)
	}
	p := printing.NewPipeline(fonts, nopSpooler{})
	p.TempDir = t.TempDir()
	app := &shell.App{
		Config:    config.Defaults(),
		Fonts:     fonts,
		Printer:   p,
		Clipboard: &clipboard.Memory{},
		Now:       func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.Local) },
	}
	m, err := newModel(Options{App: app, File: file})
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(t *testing.T, m *model, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestTypingAndDeleting(t *testing.T) {
	m := newTestModel(t, "")
	send(t, m, runes("helo"), tea.KeyMsg{Type: tea.KeyLeft}, runes("l"))
	if got := m.doc().PlainText(); got != "hello" {
		t.Fatalf("text=%q", got)
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyEnd}, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.doc().PlainText(); got != "hell" {
		t.Fatalf("after backspace %q", got)
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyHome}, tea.KeyMsg{Type: tea.KeyDelete})
	if got := m.doc().PlainText(); got != "ell" {
		t.Fatalf("after delete %q", got)
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeySpace}, runes("x"))
	if got := m.doc().PlainText(); got != "\n xell" {
		t.Fatalf("text=%q", got)
	}
	if !m.doc().IsModified() || !strings.HasSuffix(m.title, "*") {
		t.Fatalf("title %q should mark the document modified", m.title)
	}
}

func TestShiftArrowsSelect(t *testing.T) {
	m := newTestModel(t, "")
	send(t, m, runes("abcd"), tea.KeyMsg{Type: tea.KeyShiftLeft}, tea.KeyMsg{Type: tea.KeyShiftLeft})
	if got := m.doc().SelectedText(); got != "cd" {
		t.Fatalf("selected %q", got)
	}
	send(t, m, runes("X"))
	if got := m.doc().PlainText(); got != "abX" {
		t.Fatalf("text=%q", got)
	}
}

func TestVerticalMovementKeepsColumn(t *testing.T) {
	m := newTestModel(t, "")
	m.doc().SetPlainText("abcdef\nxy\nlonger line")
	m.doc().SetCursor(4)
	send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := m.doc().Cursor(); got != 9 {
		t.Fatalf("down clamps to short line end: %d", got)
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if line, col := m.doc().LineColumn(m.doc().Cursor()); line != 2 || col != 2 {
		t.Fatalf("line=%d col=%d", line, col)
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := m.doc().Cursor(); got != m.doc().Len() {
		t.Fatalf("down past the end goes to the end: %d", got)
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.doc().Cursor(); got != 0 {
		t.Fatalf("up past the start goes to 0: %d", got)
	}
}

func TestLineBounds(t *testing.T) {
	text := []rune("ab\n\ncd")
	cases := []struct{ line, start, end int }{{0, 0, 2}, {1, 3, 3}, {2, 4, 6}}
	for _, c := range cases {
		if got := lineStart(text, c.line); got != c.start {
			t.Fatalf("lineStart(%d)=%d want %d", c.line, got, c.start)
		}
		if got := lineEnd(text, c.line); got != c.end {
			t.Fatalf("lineEnd(%d)=%d want %d", c.line, got, c.end)
		}
	}
	if got := lineStart(text, 3); got != -1 {
		t.Fatalf("past last line: %d", got)
	}
}

func TestSaveAsPrompt(t *testing.T) {
	m := newTestModel(t, "")
	path := filepath.Join(t.TempDir(), "note.txt")
	send(t, m, runes("hi"), tea.KeyMsg{Type: tea.KeyCtrlS})
	p := m.activePrompt()
	if p == nil || p.kind != promptText || p.title != "Save As" {
		t.Fatalf("expected a Save As prompt, got %+v", p)
	}
	send(t, m, runes(path), tea.KeyMsg{Type: tea.KeyEnter})
	if m.activePrompt() != nil {
		t.Fatalf("prompt should close")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hi" {
		t.Fatalf("saved %q", data)
	}
	if m.win.Path() != path || m.doc().IsModified() {
		t.Fatalf("path=%q modified=%v", m.win.Path(), m.doc().IsModified())
	}
	if m.title != "Notepadino - note.txt" {
		t.Fatalf("title=%q", m.title)
	}
}

func TestEscCancelsSaveAs(t *testing.T) {
	m := newTestModel(t, "")
	send(t, m, runes("hi"), tea.KeyMsg{Type: tea.KeyCtrlS}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.activePrompt() != nil || m.win.Path() != "" || !m.doc().IsModified() {
		t.Fatalf("cancel should leave the document untouched")
	}
}

func TestOpenFileOnStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("one\ntwo"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, path)
	if got := m.doc().PlainText(); got != "one\ntwo" {
		t.Fatalf("text=%q", got)
	}
	if m.title != "Notepadino - a.txt" {
		t.Fatalf("title=%q", m.title)
	}
}

func TestQuitUnmodified(t *testing.T) {
	m := newTestModel(t, "")
	cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	if cmd == nil {
		t.Fatalf("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Fatalf("view should be empty after quitting")
	}
}

func TestQuitAsksToSave(t *testing.T) {
	m := newTestModel(t, "")
	send(t, m, runes("x"), tea.KeyMsg{Type: tea.KeyCtrlQ})
	p := m.activePrompt()
	if p == nil || p.kind != promptSaveChanges {
		t.Fatalf("expected a save-changes prompt")
	}
	if cmd := send(t, m, runes("c")); cmd != nil || m.quitting {
		t.Fatalf("cancel must veto the exit")
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	if p := m.activePrompt(); p == nil || p.kind != promptSaveChanges {
		t.Fatalf("prompt again")
	}
	// unrelated keys are ignored while the prompt waits
	send(t, m, runes("z"))
	if m.activePrompt() == nil {
		t.Fatalf("prompt should still be open")
	}
	if cmd := send(t, m, runes("n")); cmd == nil || !m.quitting {
		t.Fatalf("discard should quit")
	}
}

func TestFindPrompt(t *testing.T) {
	m := newTestModel(t, "")
	m.doc().SetPlainText("one two one")
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	p := m.activePrompt()
	if p == nil || p.kind != promptFind {
		t.Fatalf("expected the find prompt")
	}
	send(t, m, runes("one"), tea.KeyMsg{Type: tea.KeyEnter})
	if s, e := m.doc().Selection(); s != 0 || e != 3 {
		t.Fatalf("first match %d..%d", s, e)
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("1"), tea.KeyMsg{Type: tea.KeyCtrlR})
	if got := m.doc().PlainText(); got != "1 two one" {
		t.Fatalf("after replace %q", got)
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	if got := m.doc().PlainText(); got != "1 two 1" {
		t.Fatalf("after replace all %q", got)
	}
	if p.message != "Replaced 1 occurrence(s)" {
		t.Fatalf("message=%q", p.message)
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.activePrompt().kind != promptMessage || m.activePrompt().title != "Not Found" {
		t.Fatalf("expected the not-found message")
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.activePrompt() != nil {
		t.Fatalf("all prompts should be closed")
	}
}

func TestPaletteRunsActions(t *testing.T) {
	m := newTestModel(t, "")
	m.doc().SetPlainText("abc")
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	p := m.activePrompt()
	if p == nil || p.kind != promptPalette || len(p.matches) != len(m.layout.Actions) {
		t.Fatalf("palette should list every action")
	}
	send(t, m, runes("select all"))
	if len(p.matches) == 0 || p.matches[0] != "Select_All" {
		t.Fatalf("matches=%v", p.matches)
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.activePrompt() != nil || m.doc().SelectedText() != "abc" {
		t.Fatalf("select all should have run")
	}
	// Ctrl+Shift+E has no terminal key; the palette reaches it
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK}, runes("align center"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.doc().Alignment() != document.AlignCenter {
		t.Fatalf("alignment=%v", m.doc().Alignment())
	}
}

func TestFontPromptParses(t *testing.T) {
	cur := document.Font{Family: "Sans", Size: 12}
	cases := map[string]document.Font{
		"Serif 14":      {Family: "Serif", Size: 14},
		"18":            {Family: "Sans", Size: 18},
		"Mono":          {Family: "Mono", Size: 12},
		"Noto Sans 9.5": {Family: "Noto Sans", Size: 9.5},
		"Serif -3":      {Family: "Serif -3", Size: 12},
	}
	for in, want := range cases {
		if got := parseFont(in, cur); got != want {
			t.Fatalf("parseFont(%q) = %+v, want %+v", in, got, want)
		}
	}
}

func TestWarnBeforeInvalidColor(t *testing.T) {
	m := newTestModel(t, "")
	picked := false
	m.ChooseColor("Text Color", document.Black, func(document.Color, bool) { picked = true })
	p := m.activePrompt()
	for n, i := len(p.inputs[0].Value()), 0; i < n; i++ {
		send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	send(t, m, runes("nope"), tea.KeyMsg{Type: tea.KeyEnter})
	if !picked {
		t.Fatalf("continuation should run")
	}
	if w := m.activePrompt(); w == nil || w.title != "! Text Color" {
		t.Fatalf("expected a warning prompt")
	}
}

func TestViewShowsTitleStatusAndPrompt(t *testing.T) {
	m := newTestModel(t, "")
	send(t, m, tea.WindowSizeMsg{Width: 60, Height: 12}, runes("hello"))
	v := m.View()
	for _, want := range []string{"Notepadino - Untitled*", "Ln 1, Col 6", "ello"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q:\n%s", want, v)
		}
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if v := m.View(); !strings.Contains(v, "Find and Replace") {
		t.Fatalf("view missing the find prompt:\n%s", v)
	}
}

func TestViewScrollsToCursor(t *testing.T) {
	m := newTestModel(t, "")
	var b strings.Builder
	for i := 0; i < 50; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("line")
	}
	m.doc().SetPlainText(b.String())
	m.doc().SetCursor(m.doc().Len())
	send(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	m.View()
	if m.top == 0 {
		t.Fatalf("body should scroll to the last line")
	}
	m.doc().SetCursor(0)
	m.View()
	if m.top != 0 {
		t.Fatalf("top=%d after moving to the start", m.top)
	}
}
