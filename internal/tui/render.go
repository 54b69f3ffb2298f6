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
	"strings"

	"github.com/charmbracelet/lipgloss"

	"notepadino/internal/document"
	"notepadino/internal/layout"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	promptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Bold(true)
)

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	var header []string
	header = append(header, titleStyle.Render(m.title))
	if m.toolbar {
		header = append(header, faintStyle.Render(m.toolbarLine()))
	}
	var footer []string
	if p := m.activePrompt(); p != nil {
		footer = append(footer, m.promptView(p))
	}
	if m.statusBar {
		footer = append(footer, faintStyle.Render(m.statusLine()))
	}
	head := lipgloss.JoinVertical(lipgloss.Left, header...)
	foot := lipgloss.JoinVertical(lipgloss.Left, footer...)
	bodyHeight := m.height - lipgloss.Height(head) - lipgloss.Height(foot)
	if len(footer) == 0 {
		bodyHeight = m.height - lipgloss.Height(head)
	}
	body := m.renderBody(m.width, max(bodyHeight, 1))
	parts := []string{head, body}
	if len(footer) > 0 {
		parts = append(parts, foot)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *model) toolbarLine() string {
	var items []string
	for _, id := range m.layout.Window.Toolbar.Items {
		if id == layout.Separator {
			items = append(items, "|")
			continue
		}
		a, _ := m.layout.Action(id)
		label := strings.TrimSuffix(a.Text, "...")
		if k := m.keys.help(id); k != "" {
			label = k + " " + label
		}
		items = append(items, label)
	}
	items = append(items, "|", m.keys.commands.Help().Key+" "+m.keys.commands.Help().Desc)
	return strings.Join(items, "  ")
}

func (m *model) statusLine() string {
	d := m.doc()
	line, col := d.LineColumn(d.Cursor())
	parts := []string{fmt.Sprintf("Ln %d, Col %d", line+1, col+1)}
	if m.zoom != 1 {
		parts = append(parts, fmt.Sprintf("Zoom %.0f%%", m.zoom*100))
	}
	if !m.wrap {
		parts = append(parts, "No wrap")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return strings.Join(parts, "  ")
}

func (m *model) promptView(p *prompt) string {
	var b strings.Builder
	title := titleStyle.Render(p.title)
	if strings.HasPrefix(p.title, "! ") {
		title = warnStyle.Render(strings.TrimPrefix(p.title, "! "))
	}
	b.WriteString(title)
	switch p.kind {
	case promptMessage:
		b.WriteString("\n" + p.message + "\n" + faintStyle.Render("Enter to close"))
	case promptSaveChanges:
		b.WriteString("\n" + p.message)
	case promptFind:
		b.WriteString("\n" + p.inputs[0].View() + "\n" + p.inputs[1].View())
		if p.message != "" {
			b.WriteString("\n" + p.message)
		}
		b.WriteString("\n" + faintStyle.Render("Enter find next  ^R replace  ^A replace all  Tab switch  Esc close"))
	case promptPalette:
		b.WriteString("\n" + p.inputs[0].View())
		for i, id := range p.matches {
			if i == 5 {
				b.WriteString(faintStyle.Render(fmt.Sprintf("\n  … %d more", len(p.matches)-i)))
				break
			}
			a, _ := m.layout.Action(id)
			line := "\n  " + a.Text
			if k := m.keys.help(id); k != "" {
				line += faintStyle.Render("  " + k)
			}
			b.WriteString(line)
		}
	default:
		b.WriteString("\n" + p.inputs[0].View())
	}
	width := m.width - 2
	if width < 10 {
		width = 10
	}
	return promptStyle.Width(width).Render(b.String())
}

// renderBody draws the paragraphs from m.top, scrolled so the cursor line is visible.
func (m *model) renderBody(width, height int) string {
	d := m.doc()
	paras := d.Paragraphs()
	line, _ := d.LineColumn(d.Cursor())
	if line < m.top {
		m.top = line
	}
	if line >= m.top+height {
		m.top = line - height + 1
	}
	start := 0
	for i := 0; i < m.top && i < len(paras); i++ {
		start += len([]rune(paras[i].Text())) + 1
	}
	selStart, selEnd := d.Selection()
	cursor := d.Cursor()

	var lines []string
	for i := m.top; i < len(paras) && len(lines) < height; i++ {
		p := paras[i]
		rendered := renderParagraph(p, start, selStart, selEnd, cursor)
		st := lipgloss.NewStyle()
		if m.wrap {
			st = st.Width(width).Align(alignPosition(p.Align))
		} else {
			st = st.MaxWidth(width)
		}
		lines = append(lines, strings.Split(st.Render(rendered), "\n")...)
		start += len([]rune(p.Text())) + 1
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	body := strings.Join(lines, "\n")
	if m.background.IsSet() && m.background != document.White {
		body = lipgloss.NewStyle().Background(lipgloss.Color(m.background.Hex())).Render(body)
	}
	return body
}

// renderParagraph styles each run and shows the selection, or the cursor
// when nothing is selected, in reverse video. start is the offset of the paragraph.
func renderParagraph(p document.Paragraph, start, selStart, selEnd, cursor int) string {
	var b strings.Builder
	pos := start
	for _, r := range p.Runs {
		base := runStyle(r.Format)
		var seg []rune
		inverted := false
		flush := func() {
			if len(seg) == 0 {
				return
			}
			st := base
			if inverted {
				st = st.Reverse(true)
			}
			b.WriteString(st.Render(string(seg)))
			seg = seg[:0]
		}
		for _, c := range r.Text {
			inv := (pos >= selStart && pos < selEnd) || (selStart == selEnd && pos == cursor)
			if inv != inverted {
				flush()
				inverted = inv
			}
			seg = append(seg, c)
			pos++
		}
		flush()
	}
	if selStart == selEnd && cursor == pos {
		b.WriteString(lipgloss.NewStyle().Reverse(true).Render(" "))
	}
	return b.String()
}

func runStyle(f document.CharFormat) lipgloss.Style {
	st := lipgloss.NewStyle().
		Bold(f.Bold).
		Italic(f.Italic).
		Underline(f.Underline).
		Strikethrough(f.Strike)
	if f.Foreground.IsSet() && f.Foreground != document.Black {
		st = st.Foreground(lipgloss.Color(f.Foreground.Hex()))
	}
	if f.Background.IsSet() {
		st = st.Background(lipgloss.Color(f.Background.Hex()))
	}
	return st
}

func alignPosition(a document.Alignment) lipgloss.Position {
	switch a {
	case document.AlignCenter:
		return lipgloss.Center
	case document.AlignRight:
		return lipgloss.Right
	}
	return lipgloss.Left
}
