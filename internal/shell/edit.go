/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shell

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"notepadino/internal/document"
	"notepadino/internal/findreplace"
	applog "notepadino/internal/log"
	"notepadino/internal/printing"
	"notepadino/internal/version"
)

// ToggleBold and friends flip one attribute of the current format and apply
// it to the selection, or to the typing format without one.
func (w *Window) ToggleBold() {
	w.mergeFormat(document.SetBold(!w.doc.CurrentFormat().Bold))
}
func (w *Window) ToggleItalic() {
	w.mergeFormat(document.SetItalic(!w.doc.CurrentFormat().Italic))
}
func (w *Window) ToggleUnderline() {
	w.mergeFormat(document.SetUnderline(!w.doc.CurrentFormat().Underline))
}
func (w *Window) ToggleStrikethrough() {
	w.mergeFormat(document.SetStrike(!w.doc.CurrentFormat().Strike))
}

// mergeFormat also refreshes the check marks: a change to the typing format
// alone does not notify document listeners.
func (w *Window) mergeFormat(p document.Patch) {
	w.doc.MergeFormat(p)
	w.syncFormatState()
}

var alignActions = map[string]document.Alignment{
	ActionAlignLeft:    document.AlignLeft,
	ActionAlignCenter:  document.AlignCenter,
	ActionAlignRight:   document.AlignRight,
	ActionAlignJustify: document.AlignJustify,
}

// syncFormatState checks the character and alignment actions that match the
// format at the cursor.
func (w *Window) syncFormatState() {
	f := w.doc.CurrentFormat()
	w.surface.SetActionChecked(ActionBold, f.Bold)
	w.surface.SetActionChecked(ActionItalic, f.Italic)
	w.surface.SetActionChecked(ActionUnderline, f.Underline)
	w.surface.SetActionChecked(ActionStrikethrough, f.Strike)
	a := w.doc.Alignment()
	for id, al := range alignActions {
		w.surface.SetActionChecked(id, a == al)
	}
}

// SetAlignment aligns the paragraphs touched by the selection.
func (w *Window) SetAlignment(a document.Alignment) { w.doc.SetAlignment(a) }

func (w *Window) ZoomIn()    { w.setZoom(w.view.Zoom * ZoomStep) }
func (w *Window) ZoomOut()   { w.setZoom(w.view.Zoom / ZoomStep) }
func (w *Window) ResetZoom() { w.setZoom(1.0) }

func (w *Window) setZoom(z float64) {
	w.view.Zoom = z
	w.surface.SetZoom(z)
}

func (w *Window) ToggleWordWrap() {
	w.view.WordWrap = !w.view.WordWrap
	w.surface.SetWordWrap(w.view.WordWrap)
	w.surface.SetActionChecked(ActionWordWrap, w.view.WordWrap)
}

func (w *Window) ToggleStatusBar() {
	w.view.StatusBar = !w.view.StatusBar
	w.surface.SetStatusBarVisible(w.view.StatusBar)
	w.surface.SetActionChecked(ActionShowStatusBar, w.view.StatusBar)
}

func (w *Window) ToggleToolbar() {
	w.view.Toolbar = !w.view.Toolbar
	w.surface.SetToolbarVisible(w.view.Toolbar)
	w.surface.SetActionChecked(ActionShowToolbar, w.view.Toolbar)
}

// ChooseFont seeds the picker with the current font.
func (w *Window) ChooseFont() {
	cur := w.doc.CurrentFormat().Font
	w.dialogs.ChooseFont(cur, w.app.Fonts.Families(), func(f document.Font, ok bool) {
		if ok {
			w.doc.MergeFormat(document.SetFont(f))
		}
	})
}

// ChooseTextColor seeds the picker with the current text colour.
func (w *Window) ChooseTextColor() {
	cur := w.doc.CurrentFormat().Foreground
	if !cur.IsSet() {
		cur = document.Black
	}
	w.dialogs.ChooseColor("Text Color", cur, func(c document.Color, ok bool) {
		if ok {
			w.doc.MergeFormat(document.SetForeground(c))
		}
	})
}

// ChooseBackgroundColor highlights the selection, or colours the whole
// editing surface when nothing is selected. The picker starts from the last choice.
func (w *Window) ChooseBackgroundColor() {
	w.dialogs.ChooseColor("Background Color", w.view.LastBackground, func(c document.Color, ok bool) {
		if !ok {
			return
		}
		w.view.LastBackground = c
		if w.doc.HasSelection() {
			w.doc.MergeFormat(document.SetBackground(c))
			return
		}
		w.view.SurfaceBackground = c
		w.surface.SetSurfaceBackground(c)
	})
}

func (w *Window) Cut() {
	if !w.doc.HasSelection() {
		return
	}
	if w.copySelection() {
		w.doc.DeleteSelection()
	}
}

func (w *Window) Copy() {
	if w.doc.HasSelection() {
		w.copySelection()
	}
}

func (w *Window) copySelection() bool {
	if err := w.app.Clipboard.WriteText(w.doc.SelectedText()); err != nil {
		w.log.Warn("clipboard write failed", slog.Any("err", err))
		w.surface.ShowStatus("Clipboard unavailable")
		return false
	}
	return true
}

func (w *Window) Paste() {
	text, err := w.app.Clipboard.ReadText()
	if err != nil {
		w.log.Warn("clipboard read failed", slog.Any("err", err))
		w.surface.ShowStatus("Clipboard unavailable")
		return
	}
	if text != "" {
		w.doc.InsertText(text)
	}
}

// InsertDateTime replaces the selection with the local time.
func (w *Window) InsertDateTime() {
	w.doc.InsertText(w.app.now().Format(DateTimeLayout))
}

// ShowFindDialog opens a fresh Find/Replace panel on the document.
func (w *Window) ShowFindDialog() {
	w.dialogs.ShowFindReplace(findreplace.New(w.doc, w.dialogs))
}

func (w *Window) About() {
	w.dialogs.About("About "+AppName, fmt.Sprintf("%s v%s\n\nA rich-text notepad built with Go and Fyne", AppName, version.Version))
}

func (w *Window) CheckUpdates() {
	w.dialogs.Inform("Check for Updates", "You are running the latest version.")
}

// printSettings seeds a job from the configuration.
func (w *Window) printSettings() printing.Settings {
	s := printing.NewSettings(w.app.Config.Print)
	s.Title = w.DisplayName()
	return s
}

// Print asks for printer settings, then prints.
func (w *Window) Print() {
	s := w.printSettings()
	w.dialogs.ConfigurePrinter(&s, func(ok bool) {
		if ok {
			w.runPrint(s)
		}
	})
}

// PrintPreview renders the pages and shows them.
func (w *Window) PrintPreview() {
	pages, err := w.app.Printer.Preview(w.doc, w.printSettings(), PreviewScale)
	if err != nil {
		w.log.Warn("preview failed", slog.Any("err", err))
		w.dialogs.Warn("Print Error", "Could not render preview: "+err.Error())
		return
	}
	w.dialogs.ShowPrintPreview(pages)
}

// ExportPDF asks for a destination and prints into it as PDF.
func (w *Window) ExportPDF() {
	w.dialogs.ChooseSavePath("Export PDF", []string{".pdf"}, func(path string, ok bool) {
		if !ok || path == "" {
			return
		}
		if filepath.Ext(path) == "" {
			path += ".pdf"
		}
		s := w.printSettings()
		s.Format = printing.PDF
		s.OutputFile = path
		if w.runPrint(s) {
			w.surface.ShowStatus("Exported " + path)
		}
	})
}

func (w *Window) runPrint(s printing.Settings) bool {
	l := applog.WithOperation(w.log, "print")
	if err := w.app.Printer.Print(context.Background(), w.doc, s); err != nil {
		l.Warn("print failed", slog.String("format", s.Format.String()), slog.Any("err", err))
		w.dialogs.Warn("Print Error", "Could not print: "+err.Error())
		return false
	}
	if s.Format == printing.Native {
		w.surface.ShowStatus("Sent to " + printerLabel(s))
	}
	return true
}

func printerLabel(s printing.Settings) string {
	if s.PrinterName == "" {
		return "default printer"
	}
	return s.PrinterName
}
