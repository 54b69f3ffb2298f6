/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout loads the declarative window description: named actions,
// menus, the toolbar and the names of the central editor and status bar.
package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed form.yaml
var defaultForm []byte

//go:embed layout.schema.json
var schema []byte

// Separator in a menu or toolbar item list.
const Separator = "-"

type Layout struct {
	Window  Window   `yaml:"window"`
	Actions []Action `yaml:"actions"`
	Menus   []Menu   `yaml:"menus"`
}

type Window struct {
	Title     string  `yaml:"title"`
	Width     float32 `yaml:"width"`
	Height    float32 `yaml:"height"`
	Central   string  `yaml:"central"`
	StatusBar string  `yaml:"statusbar"`
	MenuBar   string  `yaml:"menubar"`
	Toolbar   Toolbar `yaml:"toolbar"`
}

type Toolbar struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

type Action struct {
	ID        string `yaml:"id"`
	Text      string `yaml:"text"`
	Shortcut  string `yaml:"shortcut"`
	Icon      string `yaml:"icon"`
	Tip       string `yaml:"tip"`
	Checkable bool   `yaml:"checkable"`
	Checked   bool   `yaml:"checked"`
}

type Menu struct {
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

// Default returns the embedded layout.
func Default() (*Layout, error) {
	return Parse(defaultForm)
}

// Load reads the layout at path, or the embedded one when path is empty.
func Load(path string) (*Layout, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates a YAML layout document.
func Parse(data []byte) (*Layout, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if raw == nil {
		return nil, errors.New("layout is empty")
	}
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validate layout: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid layout: %s", strings.Join(msgs, "; "))
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if err := l.check(); err != nil {
		return nil, err
	}
	return &l, nil
}

// check verifies that ids are unique, every referenced item exists and all
// shortcuts parse.
func (l *Layout) check() error {
	seen := make(map[string]bool, len(l.Actions))
	for _, a := range l.Actions {
		if seen[a.ID] {
			return fmt.Errorf("duplicate action %q", a.ID)
		}
		seen[a.ID] = true
		if a.Shortcut != "" {
			if _, err := ParseShortcut(a.Shortcut); err != nil {
				return fmt.Errorf("action %s: %w", a.ID, err)
			}
		}
	}
	ref := func(where, id string) error {
		if id != Separator && !seen[id] {
			return fmt.Errorf("%s references unknown action %q", where, id)
		}
		return nil
	}
	for _, m := range l.Menus {
		for _, id := range m.Items {
			if err := ref("menu "+m.Title, id); err != nil {
				return err
			}
		}
	}
	for _, id := range l.Window.Toolbar.Items {
		if err := ref("toolbar", id); err != nil {
			return err
		}
	}
	return nil
}

// Action returns the action declared with id.
func (l *Layout) Action(id string) (Action, bool) {
	for _, a := range l.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// ActionIDs lists declared actions in declaration order.
func (l *Layout) ActionIDs() []string {
	ids := make([]string, len(l.Actions))
	for i, a := range l.Actions {
		ids[i] = a.ID
	}
	return ids
}

// MissingError lists required elements a layout does not declare.
type MissingError struct {
	Kind  string
	Names []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("layout is missing %s: %s", e.Kind, strings.Join(e.Names, ", "))
}

// RequireActions fails when any of ids is not declared.
func (l *Layout) RequireActions(ids ...string) error {
	var missing []string
	for _, id := range ids {
		if _, ok := l.Action(id); !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &MissingError{Kind: "actions", Names: missing}
	}
	return nil
}

// RequireWidgets fails unless the window names exactly the given central
// editor, status bar and toolbar.
func (l *Layout) RequireWidgets(central, statusBar, toolbar string) error {
	var missing []string
	if l.Window.Central != central {
		missing = append(missing, central)
	}
	if l.Window.StatusBar != statusBar {
		missing = append(missing, statusBar)
	}
	if l.Window.Toolbar.Name != toolbar {
		missing = append(missing, toolbar)
	}
	if len(missing) > 0 {
		return &MissingError{Kind: "widgets", Names: missing}
	}
	return nil
}
