//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	flayout "fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"notepadino/internal/document"
	"notepadino/internal/layout"
	"notepadino/internal/shell"
)

// editorEntry is the editing widget. Shortcuts bound to actions are handled
// here because a focused entry swallows them before the canvas sees them.
type editorEntry struct {
	widget.Entry
	shortcuts map[string]func()
}

func newEditorEntry() *editorEntry {
	e := &editorEntry{shortcuts: map[string]func(){}}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	return e
}

func (e *editorEntry) TypedShortcut(s fyne.Shortcut) {
	if fn, ok := e.shortcuts[s.ShortcutName()]; ok {
		fn()
		return
	}
	e.Entry.TypedShortcut(s)
}

// standardShortcuts routes the toolkit's own clipboard and history
// shortcuts to the document model.
var standardShortcuts = map[string]string{
	"Copy":      shell.ActionCopy,
	"Cut":       shell.ActionCut,
	"Paste":     shell.ActionPaste,
	"SelectAll": shell.ActionSelectAll,
	"Undo":      shell.ActionUndo,
	"Redo":      shell.ActionRedo,
}

func toFyneShortcut(s layout.Shortcut) *desktop.CustomShortcut {
	var m fyne.KeyModifier
	if s.Ctrl {
		m |= fyne.KeyModifierControl
	}
	if s.Shift {
		m |= fyne.KeyModifierShift
	}
	if s.Alt {
		m |= fyne.KeyModifierAlt
	}
	return &desktop.CustomShortcut{KeyName: fyne.KeyName(s.Key), Modifier: m}
}

// fyneSurface implements shell.Surface on top of a Fyne window.
type fyneSurface struct {
	app       fyne.App
	win       fyne.Window
	editor    *editorEntry
	formatted *widget.RichText
	body      fyne.CanvasObject
	content   *fyne.Container
	toolbar   fyne.CanvasObject
	statusBar *fyne.Container
	status    *widget.Label
	pos       *widget.Label
	menu      *fyne.MainMenu
	items     map[string]*fyne.MenuItem
	theme     *editorTheme

	doc     *document.Document
	syncing bool
	// pushed is the cursor offset last written into the editor.
	pushed int
	onQuit func()
}

func newFyneSurface(a fyne.App, w fyne.Window, t *editorTheme) *fyneSurface {
	s := &fyneSurface{
		app:    a,
		win:    w,
		editor: newEditorEntry(),
		status: widget.NewLabel("Ready"),
		pos:    widget.NewLabel(positionText(0, 0)),
		items:  map[string]*fyne.MenuItem{},
		theme:  t,
	}
	s.formatted = widget.NewRichText()
	s.formatted.Wrapping = fyne.TextWrapWord
	split := container.NewVSplit(s.editor, container.NewVScroll(s.formatted))
	split.Offset = 0.6
	s.body = split
	s.statusBar = container.NewHBox(s.status, flayout.NewSpacer(), s.pos)
	s.editor.OnChanged = s.editorChanged
	s.editor.OnCursorChanged = s.syncSelection
	return s
}

func (s *fyneSurface) editorChanged(text string) {
	if s.syncing || s.doc == nil {
		return
	}
	rs := []rune(text)
	s.doc.ApplyEdit(text, cursorOffset(rs, s.editor.CursorRow, s.editor.CursorColumn))
}

// syncSelection copies the editor's cursor and selection into the document
// unless the user has not moved since the document last placed them.
func (s *fyneSurface) syncSelection() {
	if s.syncing || s.doc == nil {
		return
	}
	text := []rune(s.editor.Text)
	if len(text) != s.doc.Len() {
		return
	}
	cur := cursorOffset(text, s.editor.CursorRow, s.editor.CursorColumn)
	sel := s.editor.SelectedText()
	if sel == "" && cur == s.pushed {
		s.updatePosition()
		return
	}
	anchor, c := selectionAround(text, cur, sel)
	s.pushed = c
	s.doc.Select(anchor, c)
	s.updatePosition()
}

func (s *fyneSurface) updatePosition() {
	if s.doc == nil {
		return
	}
	line, col := s.doc.LineColumn(s.doc.Cursor())
	s.pos.SetText(positionText(line, col))
}

func (s *fyneSurface) SetTitle(title string)     { s.win.SetTitle(title) }
func (s *fyneSurface) ShowStatus(message string) { s.status.SetText(message) }

func (s *fyneSurface) SetActionEnabled(id string, enabled bool) {
	if mi, ok := s.items[id]; ok {
		mi.Disabled = !enabled
		s.refreshMenu()
	}
}

func (s *fyneSurface) SetActionChecked(id string, checked bool) {
	if mi, ok := s.items[id]; ok {
		mi.Checked = checked
		s.refreshMenu()
	}
}

func (s *fyneSurface) refreshMenu() {
	if s.menu != nil {
		s.menu.Refresh()
	}
}

func (s *fyneSurface) SetWordWrap(on bool) {
	if on {
		s.editor.Wrapping = fyne.TextWrapWord
		s.formatted.Wrapping = fyne.TextWrapWord
	} else {
		s.editor.Wrapping = fyne.TextWrapOff
		s.formatted.Wrapping = fyne.TextWrapOff
	}
	s.editor.Refresh()
	s.formatted.Refresh()
}

func (s *fyneSurface) SetZoom(factor float64) {
	s.theme.zoom = float32(factor)
	s.app.Settings().SetTheme(s.theme)
}

func (s *fyneSurface) SetSurfaceBackground(c document.Color) {
	s.theme.setBackground(c)
	s.app.Settings().SetTheme(s.theme)
}

func (s *fyneSurface) SetStatusBarVisible(visible bool) {
	setVisible(s.statusBar, visible)
	s.refreshContent()
}

func (s *fyneSurface) SetToolbarVisible(visible bool) {
	setVisible(s.toolbar, visible)
	s.refreshContent()
}

func (s *fyneSurface) refreshContent() {
	if s.content != nil {
		s.content.Refresh()
	}
}

// Refresh mirrors the document into the editor. Text is only replaced when it
// differs, so edits coming from the editor itself round-trip untouched.
func (s *fyneSurface) Refresh(doc *document.Document, c document.Change) {
	s.doc = doc
	if !c.Content && !c.Selection {
		return
	}
	s.syncing = true
	if c.Content {
		if text := doc.PlainText(); s.editor.Text != text {
			s.editor.SetText(text)
		}
		s.formatted.Segments = formattedSegments(doc.Paragraphs())
		s.formatted.Refresh()
	}
	line, col := doc.LineColumn(doc.Cursor())
	s.editor.CursorRow, s.editor.CursorColumn = line, col
	s.pushed = doc.Cursor()
	s.editor.Refresh()
	s.syncing = false
	s.updatePosition()
}

func (s *fyneSurface) Quit() {
	if s.onQuit != nil {
		s.onQuit()
	}
	s.win.Close()
}

func setVisible(o fyne.CanvasObject, visible bool) {
	if o == nil {
		return
	}
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}
