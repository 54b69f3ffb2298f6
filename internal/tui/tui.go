/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tui is a terminal front-end for the Shell Window built on
// bubbletea. It implements the window's Dialogs and Surface ports with
// inline prompts, and edits the document model directly.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"notepadino/internal/crash"
	"notepadino/internal/document"
	"notepadino/internal/layout"
	applog "notepadino/internal/log"
	"notepadino/internal/shell"
)

// Options configures Run.
type Options struct {
	App    *shell.App
	Layout *layout.Layout
	File   string
}

// Run opens the editor in the terminal and blocks until it exits.
func Run(opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tui: standard input and output must be a terminal")
	}
	m, err := newModel(opts)
	if err != nil {
		return err
	}
	defer crash.Recover(m.win)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

type model struct {
	win    *shell.Window
	layout *layout.Layout
	log    *slog.Logger
	keys   keyMap

	width, height int
	// top is the first paragraph shown.
	top int

	title      string
	status     string
	enabled    map[string]bool
	checked    map[string]bool
	wrap       bool
	zoom       float64
	background document.Color
	statusBar  bool
	toolbar    bool
	quitting   bool

	prompts []*prompt
}

func newModel(opts Options) (*model, error) {
	if opts.App == nil {
		return nil, fmt.Errorf("tui: no application context")
	}
	lay := opts.Layout
	if lay == nil {
		var err error
		if lay, err = layout.Load(opts.App.Config.Editor.LayoutFile); err != nil {
			return nil, err
		}
	}
	m := &model{
		layout:  lay,
		log:     applog.WithComponent("tui"),
		keys:    newKeyMap(lay),
		width:   80,
		height:  24,
		enabled: map[string]bool{},
		checked: map[string]bool{},
		zoom:    1,
	}
	win, err := shell.NewWindow(opts.App, lay, m, m)
	if err != nil {
		return nil, err
	}
	m.win = win
	if opts.File != "" {
		if err := win.Load(opts.File); err != nil {
			m.log.Error("auto-open file failed", slog.String("path", opts.File), slog.Any("err", err))
		}
	}
	return m, nil
}

func (m *model) doc() *document.Document { return m.win.Document() }

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if p := m.activePrompt(); p != nil {
			cmd = m.updatePrompt(p, msg)
		} else {
			m.handleKey(msg)
		}
	}
	if m.quitting {
		return m, tea.Quit
	}
	return m, cmd
}

func (m *model) trigger(id string) {
	if err := m.win.Trigger(id); err != nil {
		m.log.Warn("action failed", slog.String("id", id), slog.Any("err", err))
	}
}

// handleKey runs bound actions and otherwise edits the document.
func (m *model) handleKey(msg tea.KeyMsg) {
	if m.keys.palette(msg) {
		m.openPalette()
		return
	}
	if id, ok := m.keys.action(msg); ok {
		m.trigger(id)
		return
	}
	d := m.doc()
	switch msg.Type {
	case tea.KeyRunes:
		m.typeText(string(msg.Runes))
	case tea.KeySpace:
		m.typeText(" ")
	case tea.KeyEnter:
		m.typeText("\n")
	case tea.KeyTab:
		m.typeText("\t")
	case tea.KeyBackspace:
		if d.HasSelection() {
			m.typeText("")
		} else if c := d.Cursor(); c > 0 {
			d.ReplaceRange(c-1, c, "")
		}
	case tea.KeyDelete:
		if d.HasSelection() {
			m.typeText("")
		} else if c := d.Cursor(); c < d.Len() {
			d.ReplaceRange(c, c+1, "")
		}
	case tea.KeyLeft, tea.KeyShiftLeft:
		m.move(msg.Type == tea.KeyShiftLeft, d.Cursor()-1)
	case tea.KeyRight, tea.KeyShiftRight:
		m.move(msg.Type == tea.KeyShiftRight, d.Cursor()+1)
	case tea.KeyUp, tea.KeyShiftUp:
		m.move(msg.Type == tea.KeyShiftUp, m.verticalTarget(-1))
	case tea.KeyDown, tea.KeyShiftDown:
		m.move(msg.Type == tea.KeyShiftDown, m.verticalTarget(1))
	case tea.KeyHome, tea.KeyShiftHome:
		line, _ := d.LineColumn(d.Cursor())
		m.move(msg.Type == tea.KeyShiftHome, lineStart([]rune(d.PlainText()), line))
	case tea.KeyEnd, tea.KeyShiftEnd:
		text := []rune(d.PlainText())
		line, _ := d.LineColumn(d.Cursor())
		m.move(msg.Type == tea.KeyShiftEnd, lineEnd(text, line))
	}
}

// typeText replaces the selection with s as a coalescing typing edit.
func (m *model) typeText(s string) {
	start, end := m.doc().Selection()
	m.doc().ReplaceRange(start, end, s)
}

func (m *model) move(extend bool, pos int) {
	d := m.doc()
	if extend {
		d.Select(d.Anchor(), pos)
		return
	}
	d.SetCursor(pos)
}

// verticalTarget is the offset one line up (dir < 0) or down, keeping the column.
func (m *model) verticalTarget(dir int) int {
	d := m.doc()
	text := []rune(d.PlainText())
	line, col := d.LineColumn(d.Cursor())
	target := line + dir
	if target < 0 {
		return 0
	}
	start := lineStart(text, target)
	if start < 0 {
		return len(text)
	}
	return min(start+col, lineEnd(text, target))
}

// lineStart is the offset of line, or -1 past the last line.
func lineStart(text []rune, line int) int {
	if line == 0 {
		return 0
	}
	n := 0
	for i, r := range text {
		if r == '\n' {
			n++
			if n == line {
				return i + 1
			}
		}
	}
	return -1
}

func lineEnd(text []rune, line int) int {
	start := lineStart(text, line)
	if start < 0 {
		return len(text)
	}
	for i := start; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	return len(text)
}
