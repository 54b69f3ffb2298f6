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
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"notepadino/internal/document"
	"notepadino/internal/findreplace"
	"notepadino/internal/printing"
	"notepadino/internal/shell"
	"notepadino/internal/textlayout"
)

// fyneDialogs implements shell.Dialogs with Fyne dialogs parented to the
// main window. Every callback runs on the UI goroutine.
type fyneDialogs struct {
	app fyne.App
	win fyne.Window
	// beforeCommand brings the document selection up to date with the editor.
	beforeCommand func()
	findWin       fyne.Window
	log           *slog.Logger
}

func (d *fyneDialogs) parent() fyne.Window {
	if d.findWin != nil {
		return d.findWin
	}
	return d.win
}

func (d *fyneDialogs) AskSaveChanges(done func(shell.Choice)) {
	msg := widget.NewLabel("The document has been modified.\nDo you want to save your changes?")
	dlg := dialog.NewCustomWithoutButtons(shell.AppName, msg, d.win)
	answered := false
	answer := func(c shell.Choice) func() {
		return func() {
			if answered {
				return
			}
			answered = true
			dlg.Hide()
			done(c)
		}
	}
	save := widget.NewButton("Save", answer(shell.ChoiceSave))
	save.Importance = widget.HighImportance
	dlg.SetButtons([]fyne.CanvasObject{
		widget.NewButton("Cancel", answer(shell.ChoiceCancel)),
		widget.NewButton("Discard", answer(shell.ChoiceDiscard)),
		save,
	})
	dlg.SetOnClosed(answer(shell.ChoiceCancel))
	dlg.Show()
}

func (d *fyneDialogs) ChooseOpenPath(done func(string, bool)) {
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			d.Warn("Open", err.Error())
			done("", false)
			return
		}
		if r == nil {
			done("", false)
			return
		}
		path := r.URI().Path()
		_ = r.Close()
		done(path, true)
	}, d.win)
	fd.Show()
}

func (d *fyneDialogs) ChooseSavePath(title string, extensions []string, done func(string, bool)) {
	fd := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			d.Warn(title, err.Error())
			done("", false)
			return
		}
		if wc == nil {
			done("", false)
			return
		}
		path := wc.URI().Path()
		_ = wc.Close()
		done(path, true)
	}, d.win)
	name := "Untitled.txt"
	if len(extensions) > 0 {
		fd.SetFilter(fstorage.NewExtensionFileFilter(extensions))
		name = "Untitled" + extensions[0]
	}
	fd.SetFileName(name)
	fd.Show()
}

func (d *fyneDialogs) ChooseFont(current document.Font, families []string, done func(document.Font, bool)) {
	family := widget.NewSelect(families, nil)
	family.SetSelected(current.Family)
	size := widget.NewEntry()
	size.SetText(strconv.FormatFloat(current.Size, 'f', -1, 64))
	size.Validator = func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("size must be a positive number")
		}
		return nil
	}
	items := []*widget.FormItem{
		widget.NewFormItem("Family", family),
		widget.NewFormItem("Size (pt)", size),
	}
	dialog.NewForm("Font", "OK", "Cancel", items, func(ok bool) {
		if !ok {
			done(current, false)
			return
		}
		f := current
		if family.Selected != "" {
			f.Family = family.Selected
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(size.Text), 64); err == nil && v > 0 {
			f.Size = v
		}
		done(f, true)
	}, d.win).Show()
}

func (d *fyneDialogs) ChooseColor(title string, current document.Color, done func(document.Color, bool)) {
	picker := dialog.NewColorPicker(title, "", func(c color.Color) {
		done(document.FromColor(c), true)
	}, d.win)
	picker.Advanced = true
	picker.SetColor(current)
	picker.Show()
}

func (d *fyneDialogs) ConfigurePrinter(s *printing.Settings, done func(bool)) {
	printer := widget.NewSelectEntry(d.printers())
	printer.SetText(s.PrinterName)
	printer.SetPlaceHolder("default printer")
	copies := widget.NewEntry()
	copies.SetText(strconv.Itoa(max(s.Copies, 1)))
	copies.Validator = func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 {
			return fmt.Errorf("copies must be at least 1")
		}
		return nil
	}
	paper := widget.NewSelect(textlayout.PageSizeNames, nil)
	paper.SetSelected(pageName(s.PageSize))
	items := []*widget.FormItem{
		widget.NewFormItem("Printer", printer),
		widget.NewFormItem("Copies", copies),
		widget.NewFormItem("Paper", paper),
	}
	dialog.NewForm("Print", "Print", "Cancel", items, func(ok bool) {
		if ok {
			s.PrinterName = strings.TrimSpace(printer.Text)
			if n, err := strconv.Atoi(strings.TrimSpace(copies.Text)); err == nil && n > 0 {
				s.Copies = n
			}
			if paper.Selected != "" {
				s.PageSize = paper.Selected
			}
		}
		done(ok)
	}, d.win).Show()
}

func (d *fyneDialogs) printers() []string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	names, err := printing.LPSpooler{}.Printers(ctx)
	if err != nil {
		d.log.Debug("printer list unavailable", slog.Any("err", err))
		return nil
	}
	return names
}

func pageName(s string) string {
	for _, n := range textlayout.PageSizeNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return n
		}
	}
	return textlayout.PageSizeNames[0]
}

func (d *fyneDialogs) ShowPrintPreview(pages []image.Image) {
	pw := d.app.NewWindow("Print Preview")
	box := container.NewVBox()
	for i, pg := range pages {
		img := canvas.NewImageFromImage(pg)
		b := pg.Bounds()
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(float32(b.Dx())/shell.PreviewScale, float32(b.Dy())/shell.PreviewScale))
		box.Add(widget.NewLabel(fmt.Sprintf("Page %d of %d", i+1, len(pages))))
		box.Add(img)
	}
	closeBtn := widget.NewButton("Close", pw.Close)
	pw.SetContent(container.NewBorder(nil, container.NewHBox(closeBtn), nil, nil, container.NewVScroll(box)))
	pw.Resize(fyne.NewSize(680, 860))
	pw.Show()
}

// ShowFindReplace opens the non-modal Find/Replace window, replacing any
// window left open from an earlier request.
func (d *fyneDialogs) ShowFindReplace(p *findreplace.Panel) {
	if d.findWin != nil {
		d.findWin.Close()
	}
	fw := d.app.NewWindow(findreplace.Title)
	findEntry := widget.NewEntry()
	findEntry.SetPlaceHolder("Find what")
	replaceEntry := widget.NewEntry()
	replaceEntry.SetPlaceHolder("Replace with")
	result := widget.NewLabel("")

	run := func(fn func()) func() {
		return func() {
			if d.beforeCommand != nil {
				d.beforeCommand()
			}
			p.FindText, p.ReplaceText = findEntry.Text, replaceEntry.Text
			result.SetText("")
			fn()
		}
	}
	findBtn := widget.NewButton("Find Next", run(func() { p.FindNextClicked() }))
	findBtn.Importance = widget.HighImportance
	replaceBtn := widget.NewButton("Replace", run(func() {
		if !p.ReplaceClicked() {
			result.SetText("Select a match first")
		}
	}))
	allBtn := widget.NewButton("Replace All", run(func() {
		result.SetText(fmt.Sprintf("Replaced %d occurrence(s)", p.ReplaceAllClicked()))
	}))
	findEntry.OnSubmitted = func(string) { findBtn.OnTapped() }

	form := widget.NewForm(
		widget.NewFormItem("Find", findEntry),
		widget.NewFormItem("Replace", replaceEntry),
	)
	buttons := container.NewHBox(findBtn, replaceBtn, allBtn, widget.NewButton("Close", fw.Close))
	fw.SetContent(container.NewVBox(form, buttons, result))
	fw.SetOnClosed(func() {
		if d.findWin == fw {
			d.findWin = nil
		}
	})
	fw.Resize(fyne.NewSize(420, 160))
	d.findWin = fw
	fw.Show()
	fw.Canvas().Focus(findEntry)
}

func (d *fyneDialogs) Warn(title, message string) {
	content := container.NewHBox(widget.NewIcon(theme.WarningIcon()), widget.NewLabel(message))
	dialog.NewCustom(title, "OK", content, d.parent()).Show()
}

func (d *fyneDialogs) Inform(title, message string) {
	dialog.ShowInformation(title, message, d.parent())
}

func (d *fyneDialogs) About(title, message string) {
	dialog.ShowInformation(title, message, d.win)
}
