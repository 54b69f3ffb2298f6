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
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"notepadino/internal/document"
	"notepadino/internal/textlayout"
)

// editorTheme scales text by the zoom factor, paints the editing surface
// with the chosen background and renders text in the configured family.
type editorTheme struct {
	base       fyne.Theme
	zoom       float32
	background color.Color
	regular    fyne.Resource
	bold       fyne.Resource
	italic     fyne.Resource
	boldItalic fyne.Resource
}

func newEditorTheme(fonts *textlayout.FontLibrary, family string) *editorTheme {
	t := &editorTheme{base: theme.DefaultTheme(), zoom: 1}
	if fonts == nil {
		return t
	}
	load := func(bold, italic bool) fyne.Resource {
		r, ok := fonts.Resolve(textlayout.FontSpec{Family: family, Bold: bold, Italic: italic})
		if !ok || len(r.TTF) == 0 {
			return nil
		}
		return fyne.NewStaticResource(r.Family+r.Style()+".ttf", r.TTF)
	}
	t.regular = load(false, false)
	t.bold = load(true, false)
	t.italic = load(false, true)
	t.boldItalic = load(true, true)
	return t
}

func (t *editorTheme) Color(n fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	if t.background != nil && n == theme.ColorNameInputBackground {
		return t.background
	}
	if c, ok := parseRunColor(n); ok {
		return c
	}
	return t.base.Color(n, v)
}

func (t *editorTheme) Font(s fyne.TextStyle) fyne.Resource {
	var r fyne.Resource
	switch {
	case s.Monospace || s.Symbol:
	case s.Bold && s.Italic:
		r = t.boldItalic
	case s.Bold:
		r = t.bold
	case s.Italic:
		r = t.italic
	default:
		r = t.regular
	}
	if r == nil {
		return t.base.Font(s)
	}
	return r
}

func (t *editorTheme) Icon(n fyne.ThemeIconName) fyne.Resource { return t.base.Icon(n) }

func (t *editorTheme) Size(n fyne.ThemeSizeName) float32 {
	s := t.base.Size(n)
	switch n {
	case theme.SizeNameText, theme.SizeNameInlineIcon:
		return s * t.zoom
	}
	return s
}

func (t *editorTheme) setBackground(c document.Color) {
	if !c.IsSet() || c == document.White {
		t.background = nil
		return
	}
	t.background = c
}
