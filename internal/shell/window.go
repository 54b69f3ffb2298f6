/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shell

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"notepadino/internal/document"
	"notepadino/internal/layout"
	applog "notepadino/internal/log"
)

// Names the layout must give its widgets.
const (
	CentralName   = "textEdit"
	StatusBarName = "statusbar"
	ToolbarName   = "toolBar"
)

const (
	AppName = "Notepadino"
	// ZoomStep multiplies or divides the zoom factor per step.
	ZoomStep = 1.2
	// DateTimeLayout is used by Insert Date/Time.
	DateTimeLayout = "2006-01-02 15:04:05"
	// PreviewScale is the raster resolution of print preview pages in pixels per point.
	PreviewScale = 1.5
)

// ViewState is the per-window presentation state. It lives only as long as the window.
type ViewState struct {
	Zoom              float64
	LastBackground    document.Color
	SurfaceBackground document.Color
	WordWrap          bool
	StatusBar         bool
	Toolbar           bool
}

// Command handles one action.
type Command func()

// Window is the Shell Window: one document, its file path, the view state
// and the command table bound to the layout's actions.
type Window struct {
	app      *App
	layout   *layout.Layout
	doc      *document.Document
	path     string
	view     ViewState
	dialogs  Dialogs
	surface  Surface
	commands map[string]Command
	closing  bool
	log      *slog.Logger
}

// NewWindow binds the layout to the command table. It fails when the layout
// lacks a required widget or action, or declares an action without a handler.
func NewWindow(app *App, l *layout.Layout, d Dialogs, s Surface) (*Window, error) {
	if app == nil || l == nil || d == nil || s == nil {
		return nil, fmt.Errorf("new window: missing dependency")
	}
	if err := l.RequireWidgets(CentralName, StatusBarName, ToolbarName); err != nil {
		return nil, err
	}
	w := &Window{
		app:     app,
		layout:  l,
		doc:     document.New(app.DefaultFormat()),
		dialogs: d,
		surface: s,
		log:     applog.WithComponent("shell"),
		view: ViewState{
			Zoom:              1.0,
			LastBackground:    document.White,
			SurfaceBackground: document.White,
			WordWrap:          app.Config.Editor.WordWrap,
			StatusBar:         app.Config.Editor.ShowStatusBar,
			Toolbar:           app.Config.Editor.ShowToolbar,
		},
	}
	w.doc.SetClock(app.now)
	w.commands = w.commandTable()
	ids := make([]string, 0, len(w.commands))
	for id := range w.commands {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if err := l.RequireActions(ids...); err != nil {
		return nil, err
	}
	for _, id := range l.ActionIDs() {
		if _, ok := w.commands[id]; !ok {
			return nil, fmt.Errorf("layout action %q has no handler", id)
		}
	}

	w.doc.OnChange(func(c document.Change) {
		w.surface.Refresh(w.doc, c)
		if c.Content || c.Modified {
			w.updateTitle()
		}
		if c.Content || c.Selection {
			w.syncFormatState()
		}
	})
	w.doc.OnUndoAvailable(func(ok bool) { w.surface.SetActionEnabled(ActionUndo, ok) })
	w.doc.OnRedoAvailable(func(ok bool) { w.surface.SetActionEnabled(ActionRedo, ok) })
	w.syncSurface()
	return w, nil
}

// syncSurface pushes the whole window state to the surface.
func (w *Window) syncSurface() {
	s := w.surface
	s.SetZoom(w.view.Zoom)
	s.SetWordWrap(w.view.WordWrap)
	s.SetSurfaceBackground(w.view.SurfaceBackground)
	s.SetStatusBarVisible(w.view.StatusBar)
	s.SetToolbarVisible(w.view.Toolbar)
	s.SetActionChecked(ActionWordWrap, w.view.WordWrap)
	s.SetActionChecked(ActionShowStatusBar, w.view.StatusBar)
	s.SetActionChecked(ActionShowToolbar, w.view.Toolbar)
	s.SetActionEnabled(ActionUndo, w.doc.CanUndo())
	s.SetActionEnabled(ActionRedo, w.doc.CanRedo())
	w.syncFormatState()
	s.Refresh(w.doc, document.Change{Content: true, Selection: true, Modified: true})
	w.updateTitle()
}

func (w *Window) Document() *document.Document { return w.doc }
func (w *Window) Layout() *layout.Layout       { return w.layout }
func (w *Window) App() *App                    { return w.app }

// Path is the file the document was loaded from or saved to; empty for a new document.
func (w *Window) Path() string { return w.path }

func (w *Window) View() ViewState { return w.view }

// Trigger runs the handler bound to an action identifier.
func (w *Window) Trigger(id string) error {
	cmd, ok := w.commands[id]
	if !ok {
		return fmt.Errorf("unknown action %q", id)
	}
	w.log.Debug("action", slog.String("id", id))
	cmd()
	return nil
}

// Actions lists the bound action identifiers.
func (w *Window) Actions() []string {
	ids := make([]string, 0, len(w.commands))
	for id := range w.commands {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DisplayName is the file name shown in the title bar.
func (w *Window) DisplayName() string {
	if w.path == "" {
		return "Untitled"
	}
	return filepath.Base(w.path)
}

// Title is the current window title.
func (w *Window) Title() string {
	t := AppName + " - " + w.DisplayName()
	if w.doc.IsModified() {
		t += "*"
	}
	return t
}

func (w *Window) updateTitle() { w.surface.SetTitle(w.Title()) }

func call(done func(bool), ok bool) {
	if done != nil {
		done(ok)
	}
}
