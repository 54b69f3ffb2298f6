/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLayout(t *testing.T) {
	l, err := Default()
	if err != nil {
		t.Fatalf("embedded layout: %v", err)
	}
	if err := l.RequireWidgets("textEdit", "statusbar", "toolBar"); err != nil {
		t.Fatalf("widgets: %v", err)
	}
	if err := l.RequireActions("New", "Open", "Save", "Save_As", "Print", "Print_Preview", "Export_PDF", "Exit"); err != nil {
		t.Fatalf("actions: %v", err)
	}
	a, ok := l.Action("Word_Wrap")
	if !ok || !a.Checkable || !a.Checked {
		t.Fatalf("Word_Wrap should be checkable and checked: %+v", a)
	}
	if len(l.Menus) == 0 || l.Menus[0].Title != "File" {
		t.Fatalf("expected File menu first")
	}
	for _, id := range l.ActionIDs() {
		a, _ := l.Action(id)
		if a.Shortcut == "" {
			continue
		}
		if _, err := ParseShortcut(a.Shortcut); err != nil {
			t.Fatalf("%s: %v", id, err)
		}
	}
}

func TestLoadEmptyPathUsesEmbedded(t *testing.T) {
	l, err := Load("")
	if err != nil || l.Window.Central != "textEdit" {
		t.Fatalf("Load(\"\"): %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}

const minimal = `
window:
  central: editor
  statusbar: status
  toolbar: {name: tools, items: [Go]}
actions:
  - {id: Go, text: Go, shortcut: Ctrl+G}
menus:
  - {title: Run, items: [Go, "-"]}
`

func TestLoadFromFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "form.yaml")
	if err := os.WriteFile(p, []byte(minimal), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.Window.Central != "editor" || len(l.Actions) != 1 {
		t.Fatalf("unexpected layout %+v", l.Window)
	}
	err = l.RequireWidgets("textEdit", "statusbar", "toolBar")
	var me *MissingError
	if !errors.As(err, &me) || len(me.Names) != 3 {
		t.Fatalf("expected three missing widgets, got %v", err)
	}
	err = l.RequireActions("Go", "Stop")
	if !errors.As(err, &me) || len(me.Names) != 1 || me.Names[0] != "Stop" {
		t.Fatalf("expected Stop missing, got %v", err)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"yaml":           "window: [",
		"schema":         "window: {central: a}\nactions: []\nmenus: []\n",
		"unknown field":  strings.Replace(minimal, "text: Go,", "text: Go, colour: red,", 1),
		"unknown action": strings.Replace(minimal, "items: [Go, \"-\"]", "items: [Stop]", 1),
		"duplicate":      strings.Replace(minimal, "menus:", "  - {id: Go, text: Again}\nmenus:", 1),
		"shortcut":       strings.Replace(minimal, "Ctrl+G", "Hyper+G", 1),
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseShortcut(t *testing.T) {
	cases := []struct {
		in   string
		want Shortcut
	}{
		{"Ctrl+N", Shortcut{Key: "N", Ctrl: true}},
		{"ctrl+shift+s", Shortcut{Key: "S", Ctrl: true, Shift: true}},
		{"Alt+F4", Shortcut{Key: "F4", Alt: true}},
		{"Ctrl+=", Shortcut{Key: "=", Ctrl: true}},
		{"Ctrl+-", Shortcut{Key: "-", Ctrl: true}},
		{"Ctrl++", Shortcut{Key: "+", Ctrl: true}},
		{"Ctrl+0", Shortcut{Key: "0", Ctrl: true}},
		{"F5", Shortcut{Key: "F5"}},
		{"Ctrl+Delete", Shortcut{Key: "Delete", Ctrl: true}},
	}
	for _, c := range cases {
		got, err := ParseShortcut(c.in)
		if err != nil || got != c.want {
			t.Errorf("%q: got %+v err=%v, want %+v", c.in, got, err, c.want)
		}
	}
	for _, bad := range []string{"", "Ctrl+", "Meta+X", "F13", "Ctrl+Banana"} {
		if _, err := ParseShortcut(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
	if s := (Shortcut{Key: "S", Ctrl: true, Shift: true}).String(); s != "Ctrl+Shift+S" {
		t.Fatalf("String()=%q", s)
	}
}
