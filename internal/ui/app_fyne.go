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
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"notepadino/internal/crash"
	"notepadino/internal/layout"
	applog "notepadino/internal/log"
	"notepadino/internal/shell"
)

// Run builds the main window from the layout, binds it to the Shell Window
// and blocks in the Fyne event loop until the window closes.
func Run(opts Options) error {
	if opts.App == nil {
		return fmt.Errorf("ui: no application context")
	}
	l := applog.WithComponent("ui")
	lay := opts.Layout
	if lay == nil {
		var err error
		if lay, err = layout.Load(opts.App.Config.Editor.LayoutFile); err != nil {
			return err
		}
	}
	l.Info("starting UI")

	fyneApp := app.NewWithID("org.notepadino.app")
	w := fyneApp.NewWindow(lay.Window.Title)
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", int(lay.Window.Width))
	winH := prefs.IntWithFallback("window.height", int(lay.Window.Height))
	if winW < 400 {
		winW = 400
	}
	if winH < 300 {
		winH = 300
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	th := newEditorTheme(opts.App.Fonts, opts.App.Config.Editor.FontFamily)
	fyneApp.Settings().SetTheme(th)
	surf := newFyneSurface(fyneApp, w, th)
	dlgs := &fyneDialogs{app: fyneApp, win: w, beforeCommand: surf.syncSelection, log: l}

	var win *shell.Window
	run := func(id string) func() {
		return func() {
			if win == nil {
				return
			}
			surf.syncSelection()
			if err := win.Trigger(id); err != nil {
				l.Warn("action failed", slog.String("id", id), slog.Any("err", err))
			}
		}
	}

	surf.menu = buildMenu(lay, surf.items, run)
	w.SetMainMenu(surf.menu)
	surf.toolbar = buildToolbar(lay, run)
	bindShortcuts(lay, w, surf.editor, run, l)
	surf.content = container.NewBorder(surf.toolbar, surf.statusBar, nil, nil, surf.body)
	w.SetContent(surf.content)

	surf.onQuit = func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	}

	var err error
	win, err = shell.NewWindow(opts.App, lay, dlgs, surf)
	if err != nil {
		return err
	}
	defer crash.Recover(win)

	w.SetCloseIntercept(func() {
		surf.syncSelection()
		win.RequestClose()
	})
	if opts.File != "" {
		if err := win.Load(opts.File); err != nil {
			l.Error("auto-open file failed", slog.String("path", opts.File), slog.Any("err", err))
		}
	}
	w.Canvas().Focus(surf.editor)
	w.ShowAndRun()
	l.Info("UI closed")
	return nil
}

func buildMenu(lay *layout.Layout, items map[string]*fyne.MenuItem, run func(string) func()) *fyne.MainMenu {
	menus := make([]*fyne.Menu, 0, len(lay.Menus))
	for _, m := range lay.Menus {
		var mis []*fyne.MenuItem
		for _, id := range m.Items {
			if id == layout.Separator {
				mis = append(mis, fyne.NewMenuItemSeparator())
				continue
			}
			a, _ := lay.Action(id)
			mi := fyne.NewMenuItem(a.Text, run(id))
			mi.Checked = a.Checkable && a.Checked
			mi.IsQuit = id == shell.ActionExit
			if res := iconFor(a.Icon); res != nil {
				mi.Icon = res
			}
			if a.Shortcut != "" {
				if sc, err := layout.ParseShortcut(a.Shortcut); err == nil {
					mi.Shortcut = toFyneShortcut(sc)
				}
			}
			items[id] = mi
			mis = append(mis, mi)
		}
		menus = append(menus, fyne.NewMenu(m.Title, mis...))
	}
	return fyne.NewMainMenu(menus...)
}

// textToolItem is a toolbar entry for actions without a theme icon.
type textToolItem struct{ btn *widget.Button }

func (t textToolItem) ToolbarObject() fyne.CanvasObject { return t.btn }

func buildToolbar(lay *layout.Layout, run func(string) func()) *widget.Toolbar {
	var items []widget.ToolbarItem
	for _, id := range lay.Window.Toolbar.Items {
		if id == layout.Separator {
			items = append(items, widget.NewToolbarSeparator())
			continue
		}
		a, _ := lay.Action(id)
		if res := iconFor(a.Icon); res != nil {
			items = append(items, widget.NewToolbarAction(res, run(id)))
			continue
		}
		btn := widget.NewButton(toolLabel(a), run(id))
		btn.Importance = widget.LowImportance
		items = append(items, textToolItem{btn: btn})
	}
	return widget.NewToolbar(items...)
}

func bindShortcuts(lay *layout.Layout, w fyne.Window, editor *editorEntry, run func(string) func(), l *slog.Logger) {
	for _, a := range lay.Actions {
		if a.Shortcut == "" {
			continue
		}
		sc, err := layout.ParseShortcut(a.Shortcut)
		if err != nil {
			l.Warn("skipping shortcut", slog.String("action", a.ID), slog.Any("err", err))
			continue
		}
		cs := toFyneShortcut(sc)
		fn := run(a.ID)
		w.Canvas().AddShortcut(cs, func(fyne.Shortcut) { fn() })
		editor.shortcuts[cs.ShortcutName()] = fn
	}
	for name, id := range standardShortcuts {
		editor.shortcuts[name] = run(id)
	}
}

var themeIcons = map[string]func() fyne.Resource{
	"document-new":           theme.DocumentCreateIcon,
	"document-open":          theme.FolderOpenIcon,
	"document-save":          theme.DocumentSaveIcon,
	"document-save-as":       theme.DocumentSaveIcon,
	"document-print":         theme.DocumentPrintIcon,
	"document-print-preview": theme.VisibilityIcon,
	"edit-undo":              theme.ContentUndoIcon,
	"edit-redo":              theme.ContentRedoIcon,
	"edit-cut":               theme.ContentCutIcon,
	"edit-copy":              theme.ContentCopyIcon,
	"edit-paste":             theme.ContentPasteIcon,
	"edit-find":              theme.SearchIcon,
	"edit-find-replace":      theme.SearchReplaceIcon,
	"zoom-in":                theme.ZoomInIcon,
	"zoom-out":               theme.ZoomOutIcon,
	"zoom-original":          theme.ZoomFitIcon,
	"help-about":             theme.InfoIcon,
}

// iconFor maps a freedesktop icon name to a theme icon; nil when the theme has none.
func iconFor(name string) fyne.Resource {
	if fn, ok := themeIcons[name]; ok {
		return fn()
	}
	return nil
}

func toolLabel(a layout.Action) string {
	switch a.ID {
	case shell.ActionBold:
		return "B"
	case shell.ActionItalic:
		return "I"
	case shell.ActionUnderline:
		return "U"
	case shell.ActionStrikethrough:
		return "S"
	}
	return a.Text
}
