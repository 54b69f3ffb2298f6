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
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"notepadino/internal/document"
)

// runColorPrefix marks theme colour names that carry a literal run colour;
// editorTheme resolves them.
const runColorPrefix = "notepadino-run:"

func runColorName(c document.Color) fyne.ThemeColorName {
	if !c.IsSet() || c == document.Black {
		return theme.ColorNameForeground
	}
	return fyne.ThemeColorName(runColorPrefix + c.Hex())
}

func parseRunColor(n fyne.ThemeColorName) (document.Color, bool) {
	hex, ok := strings.CutPrefix(string(n), runColorPrefix)
	if !ok {
		return document.Color{}, false
	}
	c, err := document.ParseHex(hex)
	return c, err == nil
}

func fyneAlign(a document.Alignment) fyne.TextAlign {
	switch a {
	case document.AlignCenter:
		return fyne.TextAlignCenter
	case document.AlignRight:
		return fyne.TextAlignTrailing
	}
	return fyne.TextAlignLeading
}

// formattedSegments renders paragraphs for the formatted view: one block per
// paragraph, one inline segment per run. Font sizes are relative to the
// document's default size.
func formattedSegments(paras []document.Paragraph) []widget.RichTextSegment {
	var segs []widget.RichTextSegment
	for _, p := range paras {
		align := fyneAlign(p.Align)
		if len(p.Runs) == 0 {
			segs = append(segs, &widget.TextSegment{Style: widget.RichTextStyle{Alignment: align, SizeName: theme.SizeNameText}})
			continue
		}
		for i, r := range p.Runs {
			segs = append(segs, &widget.TextSegment{
				Text: r.Text,
				Style: widget.RichTextStyle{
					Alignment: align,
					Inline:    i < len(p.Runs)-1,
					SizeName:  theme.SizeNameText,
					ColorName: runColorName(r.Format.Foreground),
					TextStyle: fyne.TextStyle{
						Bold:      r.Format.Bold,
						Italic:    r.Format.Italic,
						Underline: r.Format.Underline,
					},
				},
			})
		}
	}
	return segs
}
