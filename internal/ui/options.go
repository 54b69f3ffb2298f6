/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ui hosts the Shell Window in a Fyne desktop window. Builds without
// the "fyne" tag get a stub so CI stays headless.
package ui

import (
	"fmt"

	"notepadino/internal/layout"
	"notepadino/internal/shell"
)

// Options configures Run.
type Options struct {
	App    *shell.App
	Layout *layout.Layout
	// File is opened after the window is up; empty starts untitled.
	File string
}

// cursorOffset converts an editor row and column (runes) into a rune offset
// into text. Out-of-range positions clamp to the nearest valid offset.
func cursorOffset(text []rune, row, col int) int {
	pos := 0
	for r := 0; r < row && pos < len(text); pos++ {
		if text[pos] == '\n' {
			r++
		}
	}
	for c := 0; c < col && pos < len(text) && text[pos] != '\n'; c++ {
		pos++
	}
	return pos
}

// selectionAround recovers the selection from the cursor and the selected
// text, which is all an entry widget reveals. The selection ends at the
// cursor when the text before it matches, else it starts there.
func selectionAround(text []rune, cursor int, selected string) (anchor, end int) {
	sel := []rune(selected)
	n := len(sel)
	if n == 0 {
		return cursor, cursor
	}
	if cursor-n >= 0 && string(text[cursor-n:cursor]) == selected {
		return cursor - n, cursor
	}
	if cursor+n <= len(text) && string(text[cursor:cursor+n]) == selected {
		return cursor + n, cursor
	}
	return cursor, cursor
}

func positionText(line, col int) string {
	return fmt.Sprintf("Ln %d, Col %d", line+1, col+1)
}
