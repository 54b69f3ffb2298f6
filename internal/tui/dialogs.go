/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tui

import (
	"fmt"
	"image"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"notepadino/internal/document"
	"notepadino/internal/findreplace"
	"notepadino/internal/printing"
	"notepadino/internal/shell"
)

type promptKind int

const (
	promptMessage promptKind = iota
	promptSaveChanges
	promptText
	promptFind
	promptPalette
)

// prompt is an inline dialog drawn below the document. The newest prompt
// receives all keys until it is answered.
type prompt struct {
	kind    promptKind
	title   string
	message string
	inputs  []textinput.Model
	focus   int
	// onChoice answers promptSaveChanges.
	onChoice func(shell.Choice)
	// onText answers promptText; ok is false when dismissed.
	onText func(value string, ok bool)
	panel  *findreplace.Panel
	// matches holds the filtered action ids of a palette.
	matches []string
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.SetValue(value)
	ti.CursorEnd()
	return ti
}

func (m *model) push(p *prompt) {
	if len(p.inputs) > 0 {
		p.inputs[0].Focus()
	}
	m.prompts = append(m.prompts, p)
}

func (m *model) activePrompt() *prompt {
	if len(m.prompts) == 0 {
		return nil
	}
	return m.prompts[len(m.prompts)-1]
}

// pop removes p; continuations run afterwards so they may push new prompts.
func (m *model) pop(p *prompt) {
	for i := len(m.prompts) - 1; i >= 0; i-- {
		if m.prompts[i] == p {
			m.prompts = append(m.prompts[:i], m.prompts[i+1:]...)
			return
		}
	}
}

func (m *model) updatePrompt(p *prompt, msg tea.KeyMsg) tea.Cmd {
	switch p.kind {
	case promptMessage:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc || msg.Type == tea.KeySpace {
			m.pop(p)
		}
		return nil
	case promptSaveChanges:
		var c shell.Choice
		switch strings.ToLower(msg.String()) {
		case "y", "s", "enter":
			c = shell.ChoiceSave
		case "n", "d":
			c = shell.ChoiceDiscard
		case "c", "esc":
			c = shell.ChoiceCancel
		default:
			return nil
		}
		m.pop(p)
		p.onChoice(c)
		return nil
	case promptFind:
		return m.updateFind(p, msg)
	case promptPalette:
		return m.updatePalette(p, msg)
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.pop(p)
		p.onText("", false)
		return nil
	case tea.KeyEnter:
		m.pop(p)
		p.onText(strings.TrimSpace(p.inputs[0].Value()), true)
		return nil
	}
	var cmd tea.Cmd
	p.inputs[0], cmd = p.inputs[0].Update(msg)
	return cmd
}

func (m *model) askText(title, placeholder, value string, done func(string, bool)) {
	m.push(&prompt{kind: promptText, title: title, inputs: []textinput.Model{newInput(placeholder, value)}, onText: done})
}

func (m *model) AskSaveChanges(done func(shell.Choice)) {
	m.push(&prompt{
		kind:     promptSaveChanges,
		title:    shell.AppName,
		message:  "The document has been modified. Save changes? [y]es  [n]o  [c]ancel",
		onChoice: done,
	})
}

func (m *model) ChooseOpenPath(done func(string, bool)) {
	m.askText("Open", "path to a text file", "", func(path string, ok bool) {
		done(path, ok && path != "")
	})
}

func (m *model) ChooseSavePath(title string, extensions []string, done func(string, bool)) {
	value := m.win.Path()
	if len(extensions) > 0 {
		value = ""
	}
	placeholder := "file name"
	if len(extensions) > 0 {
		placeholder = "file name (" + strings.Join(extensions, ", ") + ")"
	}
	m.askText(title, placeholder, value, func(path string, ok bool) {
		done(path, ok && path != "")
	})
}

// ChooseFont reads "<family> <size>"; either part may be omitted.
func (m *model) ChooseFont(current document.Font, families []string, done func(document.Font, bool)) {
	title := "Font (" + strings.Join(families, ", ") + ")"
	m.askText(title, "family size", current.String(), func(v string, ok bool) {
		if !ok || v == "" {
			done(current, false)
			return
		}
		done(parseFont(v, current), true)
	})
}

func parseFont(v string, current document.Font) document.Font {
	f := current
	fields := strings.Fields(v)
	if n := len(fields); n > 0 {
		if size, err := strconv.ParseFloat(fields[n-1], 64); err == nil && size > 0 {
			f.Size = size
			fields = fields[:n-1]
		}
	}
	if len(fields) > 0 {
		f.Family = strings.Join(fields, " ")
	}
	return f
}

func (m *model) ChooseColor(title string, current document.Color, done func(document.Color, bool)) {
	m.askText(title, "#rrggbb", current.Hex(), func(v string, ok bool) {
		if !ok || v == "" {
			done(current, false)
			return
		}
		c, err := document.ParseHex(v)
		if err != nil {
			m.Warn(title, err.Error())
			done(current, false)
			return
		}
		done(c, true)
	})
}

func (m *model) ConfigurePrinter(s *printing.Settings, done func(bool)) {
	m.askText("Print to (empty for the default printer)", "printer", s.PrinterName, func(v string, ok bool) {
		if ok {
			s.PrinterName = v
		}
		done(ok)
	})
}

// ShowPrintPreview cannot draw pages in a terminal; it reports their size.
func (m *model) ShowPrintPreview(pages []image.Image) {
	msg := fmt.Sprintf("%d page(s) rendered.", len(pages))
	if len(pages) > 0 {
		b := pages[0].Bounds()
		msg += fmt.Sprintf(" First page %dx%d px. Use Export PDF to view them.", b.Dx(), b.Dy())
	}
	m.Inform("Print Preview", msg)
}

func (m *model) ShowFindReplace(p *findreplace.Panel) {
	for _, q := range m.prompts {
		if q.kind == promptFind {
			m.pop(q)
			break
		}
	}
	m.push(&prompt{
		kind:   promptFind,
		title:  findreplace.Title,
		inputs: []textinput.Model{newInput("find", p.FindText), newInput("replace with", p.ReplaceText)},
		panel:  p,
	})
}

func (m *model) updateFind(p *prompt, msg tea.KeyMsg) tea.Cmd {
	sync := func() {
		p.panel.FindText, p.panel.ReplaceText = p.inputs[0].Value(), p.inputs[1].Value()
		p.message = ""
	}
	switch msg.String() {
	case "esc":
		m.pop(p)
		return nil
	case "tab", "shift+tab":
		p.inputs[p.focus].Blur()
		p.focus = 1 - p.focus
		return p.inputs[p.focus].Focus()
	case "enter":
		sync()
		p.panel.FindNextClicked()
		return nil
	case "ctrl+r":
		sync()
		if !p.panel.ReplaceClicked() {
			p.message = "Select a match first"
		}
		return nil
	case "ctrl+a":
		sync()
		p.message = fmt.Sprintf("Replaced %d occurrence(s)", p.panel.ReplaceAllClicked())
		return nil
	}
	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return cmd
}

// openPalette lists every action; typing filters, Enter runs the first match.
func (m *model) openPalette() {
	p := &prompt{kind: promptPalette, title: "Commands", inputs: []textinput.Model{newInput("type to filter", "")}}
	p.matches = m.filterActions("")
	m.push(p)
}

func (m *model) filterActions(q string) []string {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []string
	for _, a := range m.layout.Actions {
		text := strings.ToLower(strings.TrimSuffix(a.Text, "..."))
		if q == "" || strings.Contains(text, q) || strings.Contains(strings.ToLower(a.ID), q) {
			out = append(out, a.ID)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.HasPrefix(strings.ToLower(out[i]), q) && !strings.HasPrefix(strings.ToLower(out[j]), q)
	})
	return out
}

func (m *model) updatePalette(p *prompt, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.pop(p)
		return nil
	case tea.KeyEnter:
		m.pop(p)
		if len(p.matches) > 0 {
			m.trigger(p.matches[0])
		}
		return nil
	}
	var cmd tea.Cmd
	p.inputs[0], cmd = p.inputs[0].Update(msg)
	p.matches = m.filterActions(p.inputs[0].Value())
	return cmd
}

func (m *model) Warn(title, message string) {
	m.push(&prompt{kind: promptMessage, title: "! " + title, message: message})
}

func (m *model) Inform(title, message string) {
	m.push(&prompt{kind: promptMessage, title: title, message: message})
}

func (m *model) About(title, message string) { m.Inform(title, message) }
