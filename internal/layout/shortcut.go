/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"fmt"
	"strings"
	"unicode"
)

// Shortcut is a parsed key chord such as Ctrl+Shift+S.
type Shortcut struct {
	Key   string
	Ctrl  bool
	Shift bool
	Alt   bool
}

var namedKeys = map[string]string{
	"plus": "+", "minus": "-", "equal": "=", "space": "Space",
	"tab": "Tab", "enter": "Return", "return": "Return", "esc": "Escape",
	"escape": "Escape", "delete": "Delete", "del": "Delete", "backspace": "BackSpace",
	"insert": "Insert", "home": "Home", "end": "End",
	"pageup": "Prior", "pagedown": "Next",
}

// ParseShortcut understands modifiers Ctrl, Shift and Alt followed by one key:
// a single character, F1..F12, or a named key. A trailing "++" means the plus key.
func ParseShortcut(s string) (Shortcut, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Shortcut{}, fmt.Errorf("empty shortcut")
	}
	var key string
	var mods []string
	if strings.HasSuffix(s, "++") {
		key = "+"
		mods = strings.Split(strings.TrimSuffix(s, "++"), "+")
	} else {
		parts := strings.Split(s, "+")
		key = parts[len(parts)-1]
		mods = parts[:len(parts)-1]
	}
	var sc Shortcut
	for _, m := range mods {
		switch strings.ToLower(strings.TrimSpace(m)) {
		case "ctrl", "control":
			sc.Ctrl = true
		case "shift":
			sc.Shift = true
		case "alt":
			sc.Alt = true
		default:
			return Shortcut{}, fmt.Errorf("shortcut %q: unknown modifier %q", s, m)
		}
	}
	k, err := normalizeKey(strings.TrimSpace(key))
	if err != nil {
		return Shortcut{}, fmt.Errorf("shortcut %q: %w", s, err)
	}
	sc.Key = k
	return sc, nil
}

func normalizeKey(k string) (string, error) {
	if r := []rune(k); len(r) == 1 {
		if unicode.IsLetter(r[0]) {
			return string(unicode.ToUpper(r[0])), nil
		}
		if unicode.IsPrint(r[0]) && !unicode.IsSpace(r[0]) {
			return k, nil
		}
	}
	if n, ok := namedKeys[strings.ToLower(k)]; ok {
		return n, nil
	}
	var f int
	if _, err := fmt.Sscanf(strings.ToUpper(k), "F%d", &f); err == nil && f >= 1 && f <= 12 && fmt.Sprintf("F%d", f) == strings.ToUpper(k) {
		return fmt.Sprintf("F%d", f), nil
	}
	return "", fmt.Errorf("unknown key %q", k)
}

func (s Shortcut) String() string {
	var b strings.Builder
	if s.Ctrl {
		b.WriteString("Ctrl+")
	}
	if s.Shift {
		b.WriteString("Shift+")
	}
	if s.Alt {
		b.WriteString("Alt+")
	}
	b.WriteString(s.Key)
	return b.String()
}
