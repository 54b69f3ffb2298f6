/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"notepadino/internal/layout"
)

// binding ties a key binding to an action identifier.
type binding struct {
	id string
	key.Binding
}

type keyMap struct {
	bindings []binding
	commands key.Binding
}

// newKeyMap binds every layout shortcut a terminal can deliver.
func newKeyMap(lay *layout.Layout) keyMap {
	km := keyMap{
		commands: key.NewBinding(key.WithKeys("ctrl+k", "f10"), key.WithHelp("^K", "commands")),
	}
	for _, a := range lay.Actions {
		if a.Shortcut == "" {
			continue
		}
		sc, err := layout.ParseShortcut(a.Shortcut)
		if err != nil {
			continue
		}
		k := teaKey(sc)
		if k == "" {
			continue
		}
		km.bindings = append(km.bindings, binding{
			id:      a.ID,
			Binding: key.NewBinding(key.WithKeys(k), key.WithHelp(helpKey(k), a.Text)),
		})
	}
	return km
}

func (km keyMap) action(msg tea.KeyMsg) (string, bool) {
	for _, b := range km.bindings {
		if key.Matches(msg, b.Binding) {
			return b.id, true
		}
	}
	return "", false
}

func (km keyMap) palette(msg tea.KeyMsg) bool { return key.Matches(msg, km.commands) }

// help returns the hint shown for an action, or "" when it has no key.
func (km keyMap) help(id string) string {
	for _, b := range km.bindings {
		if b.id == id {
			return b.Help().Key
		}
	}
	return ""
}

var terminalNamedKeys = map[string]string{
	"Home": "home", "End": "end", "Delete": "delete", "Insert": "insert",
	"Prior": "pgup", "Next": "pgdown",
}

// teaKey converts a shortcut into the key string bubbletea reports. Chords a
// terminal cannot tell apart from plain keys map to "": Ctrl+Shift, Ctrl with
// digits or symbols, and Ctrl+I/Ctrl+M which arrive as Tab and Enter.
func teaKey(s layout.Shortcut) string {
	k := s.Key
	if named, ok := terminalNamedKeys[k]; ok {
		k = named
	} else if len(k) > 1 && k[0] == 'F' {
		k = strings.ToLower(k)
	} else if r := []rune(k); len(r) == 1 && unicode.IsLetter(r[0]) {
		k = strings.ToLower(k)
	} else if s.Ctrl && !s.Alt {
		return ""
	}
	switch {
	case s.Shift:
		return ""
	case s.Ctrl && s.Alt:
		return ""
	case s.Ctrl:
		if len(k) != 1 || !unicode.IsLetter(rune(k[0])) || k == "i" || k == "m" {
			return ""
		}
		return "ctrl+" + k
	case s.Alt:
		return "alt+" + k
	case len(k) == 1:
		// a bare character would shadow typing
		return ""
	}
	return k
}

func helpKey(k string) string {
	if rest, ok := strings.CutPrefix(k, "ctrl+"); ok {
		return "^" + strings.ToUpper(rest)
	}
	return k
}
