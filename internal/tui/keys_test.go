/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"notepadino/internal/layout"
)

func TestTeaKey(t *testing.T) {
	cases := map[string]string{
		"Ctrl+S":       "ctrl+s",
		"Ctrl+Shift+S": "",
		"Ctrl+I":       "",
		"Ctrl+=":       "",
		"Ctrl+0":       "",
		"F5":           "f5",
		"Alt+X":        "alt+x",
		"Ctrl+Home":    "",
		"Home":         "home",
		"A":            "",
	}
	for in, want := range cases {
		sc, err := layout.ParseShortcut(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got := teaKey(sc); got != want {
			t.Fatalf("teaKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKeyMapBindsLayoutShortcuts(t *testing.T) {
	lay, err := layout.Default()
	if err != nil {
		t.Fatal(err)
	}
	km := newKeyMap(lay)
	id, ok := km.action(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !ok || id != "Save" {
		t.Fatalf("ctrl+s -> %q, %v", id, ok)
	}
	if id, ok := km.action(tea.KeyMsg{Type: tea.KeyF5}); !ok || id != "Insert_Date_Time" {
		t.Fatalf("f5 -> %q, %v", id, ok)
	}
	if _, ok := km.action(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}); ok {
		t.Fatalf("plain letters must not trigger actions")
	}
	if !km.palette(tea.KeyMsg{Type: tea.KeyCtrlK}) {
		t.Fatalf("ctrl+k should open the command palette")
	}
	if got := km.help("Save"); got != "^S" {
		t.Fatalf("help(Save) = %q", got)
	}
}
