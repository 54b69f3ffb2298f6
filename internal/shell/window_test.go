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
	"errors"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"notepadino/internal/clipboard"
	"notepadino/internal/config"
	"notepadino/internal/document"
	"notepadino/internal/findreplace"
	"notepadino/internal/layout"
	"notepadino/internal/printing"
	"notepadino/internal/textlayout"
)

type fakeDialogs struct {
	saveChoice Choice
	asked      int
	openPath   string
	savePath   string
	saveTitles []string
	font       document.Font
	fontOK     bool
	color      document.Color
	colorOK    bool
	printOK    bool
	previewed  int
	panel      *findreplace.Panel
	warnings   []string
	infos      []string
	about      string
}

func (f *fakeDialogs) AskSaveChanges(done func(Choice)) {
	f.asked++
	done(f.saveChoice)
}

func (f *fakeDialogs) ChooseOpenPath(done func(string, bool)) { done(f.openPath, f.openPath != "") }

func (f *fakeDialogs) ChooseSavePath(title string, _ []string, done func(string, bool)) {
	f.saveTitles = append(f.saveTitles, title)
	done(f.savePath, f.savePath != "")
}

func (f *fakeDialogs) ChooseFont(_ document.Font, _ []string, done func(document.Font, bool)) {
	done(f.font, f.fontOK)
}

func (f *fakeDialogs) ChooseColor(_ string, _ document.Color, done func(document.Color, bool)) {
	done(f.color, f.colorOK)
}

func (f *fakeDialogs) ConfigurePrinter(s *printing.Settings, done func(bool)) {
	s.PrinterName = "office"
	done(f.printOK)
}

func (f *fakeDialogs) ShowPrintPreview(pages []image.Image) { f.previewed = len(pages) }
func (f *fakeDialogs) ShowFindReplace(p *findreplace.Panel) { f.panel = p }
func (f *fakeDialogs) Warn(title, msg string)               { f.warnings = append(f.warnings, title+": "+msg) }
func (f *fakeDialogs) Inform(title, msg string)             { f.infos = append(f.infos, title+": "+msg) }
func (f *fakeDialogs) About(_, msg string)                  { f.about = msg }

type fakeSurface struct {
	title      string
	status     string
	enabled    map[string]bool
	checked    map[string]bool
	wrap       bool
	zoom       float64
	background document.Color
	statusBar  bool
	toolbar    bool
	refreshes  int
	quits      int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{enabled: map[string]bool{}, checked: map[string]bool{}}
}

func (s *fakeSurface) SetTitle(t string)                           { s.title = t }
func (s *fakeSurface) ShowStatus(m string)                         { s.status = m }
func (s *fakeSurface) SetActionEnabled(id string, on bool)         { s.enabled[id] = on }
func (s *fakeSurface) SetActionChecked(id string, on bool)         { s.checked[id] = on }
func (s *fakeSurface) SetWordWrap(on bool)                         { s.wrap = on }
func (s *fakeSurface) SetZoom(f float64)                           { s.zoom = f }
func (s *fakeSurface) SetSurfaceBackground(c document.Color)       { s.background = c }
func (s *fakeSurface) SetStatusBarVisible(v bool)                  { s.statusBar = v }
func (s *fakeSurface) SetToolbarVisible(v bool)                    { s.toolbar = v }
func (s *fakeSurface) Refresh(*document.Document, document.Change) { s.refreshes++ }
func (s *fakeSurface) Quit()                                       { s.quits++ }

type recordingSpooler struct {
	calls   int
	printer string
}

func (r *recordingSpooler) Spool(_ context.Context, path string, s printing.Settings) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	r.calls++
	r.printer = s.PrinterName
	return nil
}

type failingClipboard struct{}

func (failingClipboard) ReadText() (string, error) { return "", errors.New("no clipboard") }
func (failingClipboard) WriteText(string) error    { return errors.New("no clipboard") }

func newTestApp(t *testing.T) (*App, *recordingSpooler) {
	t.Helper()
	fonts, err := textlayout.DefaultFontLibrary()
	if err != nil {
		t.Fatalf("fonts: %v", err)
	}
	sp := &recordingSpooler{}
	p := printing.NewPipeline(fonts, sp)
	p.TempDir = t.TempDir()
	return &App{
		Config:    config.Defaults(),
		Fonts:     fonts,
		Printer:   p,
		Clipboard: &clipboard.Memory{},
		Now:       func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.Local) },
	}, sp
}

func defaultLayout(t *testing.T) *layout.Layout {
	t.Helper()
	l, err := layout.Default()
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return l
}

func newTestWindow(t *testing.T) (*Window, *fakeDialogs, *fakeSurface) {
	t.Helper()
	app, _ := newTestApp(t)
	d := &fakeDialogs{saveChoice: ChoiceCancel}
	s := newFakeSurface()
	w, err := NewWindow(app, defaultLayout(t), d, s)
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	return w, d, s
}

func mustTrigger(t *testing.T, w *Window, id string) {
	t.Helper()
	if err := w.Trigger(id); err != nil {
		t.Fatalf("trigger %s: %v", id, err)
	}
}

func TestNewWindowInitialState(t *testing.T) {
	w, _, s := newTestWindow(t)
	if s.title != "Notepadino - Untitled" {
		t.Fatalf("title = %q", s.title)
	}
	if s.zoom != 1.0 || !s.wrap || !s.statusBar || !s.toolbar {
		t.Fatalf("unexpected surface state: %+v", s)
	}
	if s.enabled[ActionUndo] || s.enabled[ActionRedo] {
		t.Fatalf("undo/redo should start disabled")
	}
	if len(w.Actions()) != 36 {
		t.Fatalf("actions = %d", len(w.Actions()))
	}
	if err := w.Trigger("Nope"); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestNewWindowRejectsIncompleteLayout(t *testing.T) {
	app, _ := newTestApp(t)
	l := defaultLayout(t)
	l.Window.StatusBar = "status"
	if _, err := NewWindow(app, l, &fakeDialogs{}, newFakeSurface()); err == nil {
		t.Fatalf("expected missing widget error")
	}
	l = defaultLayout(t)
	l.Actions = l.Actions[1:]
	if _, err := NewWindow(app, l, &fakeDialogs{}, newFakeSurface()); err == nil {
		t.Fatalf("expected missing action error")
	}
}

func TestSaveReloadRoundTrip(t *testing.T) {
	w, d, s := newTestWindow(t)
	path := filepath.Join(t.TempDir(), "note.txt")
	d.savePath = path
	content := "first line\nsecond line äöü\n\nend"
	w.Document().InsertText(content)
	if s.title != "Notepadino - Untitled*" {
		t.Fatalf("title after edit = %q", s.title)
	}
	mustTrigger(t, w, ActionSave)
	if w.Path() != path || w.Document().IsModified() {
		t.Fatalf("save did not record path or clear modified flag")
	}
	if s.title != "Notepadino - note.txt" {
		t.Fatalf("title after save = %q", s.title)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != content {
		t.Fatalf("file = %q", raw)
	}

	w2, _, _ := newTestWindow(t)
	if err := w2.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if w2.Document().PlainText() != content {
		t.Fatalf("reloaded = %q", w2.Document().PlainText())
	}
	if w2.Document().IsModified() {
		t.Fatalf("freshly loaded document must be unmodified")
	}
}

func TestSaveWithoutPathBehavesLikeSaveAs(t *testing.T) {
	w, d, _ := newTestWindow(t)
	dir := t.TempDir()
	w.Document().InsertText("x")

	d.savePath = filepath.Join(dir, "a.txt")
	mustTrigger(t, w, ActionSave)
	w.Document().InsertText("y")
	d.savePath = filepath.Join(dir, "b.txt")
	mustTrigger(t, w, ActionSaveAs)

	if len(d.saveTitles) != 2 || d.saveTitles[0] != d.saveTitles[1] {
		t.Fatalf("save dialogs = %v", d.saveTitles)
	}
	if w.Path() != d.savePath {
		t.Fatalf("path = %q", w.Path())
	}

	// with a path, Save writes without asking
	w.Document().InsertText("z")
	mustTrigger(t, w, ActionSave)
	if len(d.saveTitles) != 2 {
		t.Fatalf("save with path asked for a file name")
	}
}

func TestSaveAsCancelled(t *testing.T) {
	w, d, _ := newTestWindow(t)
	w.Document().InsertText("x")
	var got *bool
	w.SaveDocumentAs(func(ok bool) { got = &ok })
	if got == nil || *got {
		t.Fatalf("cancelled save should report false")
	}
	if w.Path() != "" || !w.Document().IsModified() || len(d.warnings) != 0 {
		t.Fatalf("cancelled save changed state")
	}
}

func TestSaveErrorWarns(t *testing.T) {
	w, d, _ := newTestWindow(t)
	d.savePath = t.TempDir() // a directory cannot be written as a file
	w.Document().InsertText("x")
	mustTrigger(t, w, ActionSave)
	if len(d.warnings) != 1 || !strings.HasPrefix(d.warnings[0], "Save Error: Could not save file:") {
		t.Fatalf("warnings = %v", d.warnings)
	}
	if w.Path() != "" || !w.Document().IsModified() {
		t.Fatalf("failed save changed state")
	}
}

func TestLoadErrorKeepsState(t *testing.T) {
	w, d, _ := newTestWindow(t)
	w.Document().InsertText("keep")
	if err := w.Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected load error")
	}
	if len(d.warnings) != 1 || !strings.HasPrefix(d.warnings[0], "Load Error: Could not load file:") {
		t.Fatalf("warnings = %v", d.warnings)
	}
	if w.Document().PlainText() != "keep" || w.Path() != "" {
		t.Fatalf("state changed after failed load")
	}
}

func TestNewDocumentCancelKeepsContent(t *testing.T) {
	w, d, _ := newTestWindow(t)
	w.Document().InsertText("draft")
	d.saveChoice = ChoiceCancel
	mustTrigger(t, w, ActionNew)
	if d.asked != 1 {
		t.Fatalf("asked = %d", d.asked)
	}
	if w.Document().PlainText() != "draft" || !w.Document().IsModified() {
		t.Fatalf("cancel must leave content unchanged")
	}
}

func TestNewDocumentDiscardAndSave(t *testing.T) {
	w, d, s := newTestWindow(t)
	w.Document().InsertText("draft")
	d.saveChoice = ChoiceDiscard
	mustTrigger(t, w, ActionNew)
	if w.Document().PlainText() != "" || w.Path() != "" || s.title != "Notepadino - Untitled" {
		t.Fatalf("discard should clear the document")
	}

	w.Document().InsertText("keep me")
	d.saveChoice = ChoiceSave
	d.savePath = filepath.Join(t.TempDir(), "kept.txt")
	mustTrigger(t, w, ActionNew)
	raw, err := os.ReadFile(d.savePath)
	if err != nil || string(raw) != "keep me" {
		t.Fatalf("saved = %q, %v", raw, err)
	}
	if w.Document().PlainText() != "" || w.Path() != "" {
		t.Fatalf("new after save should clear the document")
	}
}

func TestNewDocumentUnmodifiedDoesNotAsk(t *testing.T) {
	w, d, _ := newTestWindow(t)
	mustTrigger(t, w, ActionNew)
	if d.asked != 0 {
		t.Fatalf("unmodified document should not prompt")
	}
}

func TestSaveChoiceCancelledSaveAbortsNew(t *testing.T) {
	w, d, _ := newTestWindow(t)
	w.Document().InsertText("draft")
	d.saveChoice = ChoiceSave
	mustTrigger(t, w, ActionNew)
	if w.Document().PlainText() != "draft" {
		t.Fatalf("a cancelled save must abort the new document")
	}
}

func TestOpenDocument(t *testing.T) {
	w, d, s := newTestWindow(t)
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	d.openPath = path
	mustTrigger(t, w, ActionOpen)
	if w.Document().PlainText() != "hello" || w.Path() != path {
		t.Fatalf("open failed: %q %q", w.Document().PlainText(), w.Path())
	}
	if s.title != "Notepadino - in.txt" {
		t.Fatalf("title = %q", s.title)
	}
}

func TestExitVetoAndQuit(t *testing.T) {
	w, d, s := newTestWindow(t)
	w.Document().InsertText("draft")
	d.saveChoice = ChoiceCancel
	mustTrigger(t, w, ActionExit)
	if s.quits != 0 {
		t.Fatalf("cancel must veto exit")
	}
	d.saveChoice = ChoiceDiscard
	mustTrigger(t, w, ActionExit)
	mustTrigger(t, w, ActionExit)
	if s.quits != 1 {
		t.Fatalf("quits = %d", s.quits)
	}
}

func TestCloseReportsDecision(t *testing.T) {
	w, d, _ := newTestWindow(t)
	var got []bool
	w.Close(func(ok bool) { got = append(got, ok) })
	w.Document().InsertText("x")
	d.saveChoice = ChoiceCancel
	w.Close(func(ok bool) { got = append(got, ok) })
	if len(got) != 2 || !got[0] || got[1] {
		t.Fatalf("close decisions = %v", got)
	}
}

func TestFindNextWrapsOnce(t *testing.T) {
	w, d, _ := newTestWindow(t)
	w.Document().InsertText("abc x def")
	mustTrigger(t, w, ActionFind)
	if d.panel == nil {
		t.Fatalf("find dialog not shown")
	}
	// cursor is at the end, so the match is found after wrapping
	if !d.panel.FindNext("x") {
		t.Fatalf("expected match after wrap")
	}
	if start, end := w.Document().Selection(); start != 4 || end != 5 {
		t.Fatalf("selection = %d..%d", start, end)
	}
	if len(d.infos) != 0 {
		t.Fatalf("unexpected info: %v", d.infos)
	}
}

func TestFindNextNotFound(t *testing.T) {
	w, d, _ := newTestWindow(t)
	w.Document().InsertText("abc")
	w.Document().SetCursor(1)
	mustTrigger(t, w, ActionReplace)
	if d.panel.FindNext("zzz") {
		t.Fatalf("unexpected match")
	}
	if len(d.infos) != 1 || d.infos[0] != "Not Found: Cannot find 'zzz'" {
		t.Fatalf("infos = %v", d.infos)
	}
	if w.Document().Cursor() != 1 || w.Document().HasSelection() {
		t.Fatalf("cursor moved")
	}
}

func TestReplaceAllThroughPanel(t *testing.T) {
	w, d, _ := newTestWindow(t)
	w.Document().InsertText("aaa")
	mustTrigger(t, w, ActionFind)
	d.panel.FindText, d.panel.ReplaceText = "a", "b"
	if n := d.panel.ReplaceAllClicked(); n != 3 {
		t.Fatalf("replaced %d", n)
	}
	if got := w.Document().PlainText(); got != "bbb" {
		t.Fatalf("content = %q", got)
	}
	mustTrigger(t, w, ActionUndo)
	if got := w.Document().PlainText(); got != "aaa" {
		t.Fatalf("undo = %q", got)
	}
}

func TestZoomRoundTrip(t *testing.T) {
	w, _, s := newTestWindow(t)
	mustTrigger(t, w, ActionZoomIn)
	if math.Abs(s.zoom-1.2) > 1e-9 {
		t.Fatalf("zoom = %v", s.zoom)
	}
	mustTrigger(t, w, ActionZoomOut)
	if math.Abs(w.View().Zoom-1.0) > 1e-9 {
		t.Fatalf("zoom round trip = %v", w.View().Zoom)
	}
	mustTrigger(t, w, ActionZoomIn)
	mustTrigger(t, w, ActionZoomIn)
	mustTrigger(t, w, ActionResetZoom)
	if s.zoom != 1.0 {
		t.Fatalf("reset zoom = %v", s.zoom)
	}
}

func TestViewToggles(t *testing.T) {
	w, _, s := newTestWindow(t)
	mustTrigger(t, w, ActionWordWrap)
	mustTrigger(t, w, ActionShowStatusBar)
	mustTrigger(t, w, ActionShowToolbar)
	if s.wrap || s.statusBar || s.toolbar {
		t.Fatalf("toggles not applied: %+v", s)
	}
	if s.checked[ActionWordWrap] || s.checked[ActionShowStatusBar] || s.checked[ActionShowToolbar] {
		t.Fatalf("checked state not mirrored: %v", s.checked)
	}
	mustTrigger(t, w, ActionShowToolbar)
	if !s.toolbar || !s.checked[ActionShowToolbar] {
		t.Fatalf("toolbar toggle back failed")
	}
}

func TestFormattingToggles(t *testing.T) {
	w, _, _ := newTestWindow(t)
	doc := w.Document()
	doc.InsertText("hello world")
	doc.Select(0, 5)
	mustTrigger(t, w, ActionBold)
	mustTrigger(t, w, ActionUnderline)
	f := doc.FormatAt(0)
	if !f.Bold || !f.Underline || f.Italic {
		t.Fatalf("format = %+v", f)
	}
	if doc.FormatAt(6).Bold {
		t.Fatalf("bold leaked outside the selection")
	}
	mustTrigger(t, w, ActionBold)
	if doc.FormatAt(0).Bold {
		t.Fatalf("second toggle should clear bold")
	}
	mustTrigger(t, w, ActionAlignCenter)
	if doc.Alignment() != document.AlignCenter {
		t.Fatalf("alignment = %v", doc.Alignment())
	}

	// without a selection the typing format changes
	doc.SetCursor(doc.Len())
	mustTrigger(t, w, ActionItalic)
	doc.InsertText("!")
	if !doc.FormatAt(doc.Len() - 1).Italic {
		t.Fatalf("typed text should be italic")
	}
}

func TestFormatCheckMarksFollowCursor(t *testing.T) {
	w, _, s := newTestWindow(t)
	if !s.checked[ActionAlignLeft] || s.checked[ActionBold] {
		t.Fatalf("initial check marks: %v", s.checked)
	}
	doc := w.Document()
	doc.InsertText("hello world")
	doc.Select(0, 5)
	mustTrigger(t, w, ActionBold)
	if !s.checked[ActionBold] {
		t.Fatalf("bold selection should check Bold")
	}
	doc.SetCursor(8)
	if s.checked[ActionBold] {
		t.Fatalf("plain text at the cursor should uncheck Bold")
	}
	mustTrigger(t, w, ActionItalic)
	if !s.checked[ActionItalic] {
		t.Fatalf("italic typing format should check Italic")
	}
	mustTrigger(t, w, ActionAlignRight)
	if !s.checked[ActionAlignRight] || s.checked[ActionAlignLeft] || s.checked[ActionAlignCenter] {
		t.Fatalf("alignment check marks: %v", s.checked)
	}
	doc.SetCursor(2)
	if !s.checked[ActionBold] || s.checked[ActionItalic] {
		t.Fatalf("check marks should follow the cursor: %v", s.checked)
	}
}

func TestChooseFontAndColors(t *testing.T) {
	w, d, s := newTestWindow(t)
	doc := w.Document()
	doc.InsertText("abc")
	doc.Select(0, 2)

	d.font, d.fontOK = document.Font{Family: "Go Mono", Size: 18}, true
	mustTrigger(t, w, ActionFont)
	if got := doc.FormatAt(0).Font; got != d.font {
		t.Fatalf("font = %+v", got)
	}

	red := document.Color{R: 255, A: 255}
	d.color, d.colorOK = red, true
	mustTrigger(t, w, ActionTextColor)
	if doc.FormatAt(1).Foreground != red {
		t.Fatalf("foreground = %+v", doc.FormatAt(1).Foreground)
	}

	yellow := document.Color{R: 255, G: 255, A: 255}
	d.color = yellow
	mustTrigger(t, w, ActionBackground)
	if doc.FormatAt(0).Background != yellow || s.background != document.White {
		t.Fatalf("selection background not applied")
	}

	doc.SetCursor(0)
	mustTrigger(t, w, ActionBackground)
	if s.background != yellow || w.View().SurfaceBackground != yellow {
		t.Fatalf("surface background = %+v", s.background)
	}

	d.colorOK = false
	d.color = red
	mustTrigger(t, w, ActionBackground)
	if s.background != yellow {
		t.Fatalf("cancelled picker changed the background")
	}
}

func TestClipboardCommands(t *testing.T) {
	w, _, _ := newTestWindow(t)
	doc := w.Document()
	doc.InsertText("hello world")
	doc.Select(0, 6)
	mustTrigger(t, w, ActionCut)
	if doc.PlainText() != "world" {
		t.Fatalf("after cut = %q", doc.PlainText())
	}
	doc.SetCursor(doc.Len())
	mustTrigger(t, w, ActionPaste)
	if doc.PlainText() != "worldhello " {
		t.Fatalf("after paste = %q", doc.PlainText())
	}
	doc.Select(0, 5)
	mustTrigger(t, w, ActionCopy)
	doc.SetCursor(0)
	mustTrigger(t, w, ActionPaste)
	if doc.PlainText() != "worldworldhello " {
		t.Fatalf("after copy/paste = %q", doc.PlainText())
	}
}

func TestClipboardFailureKeepsText(t *testing.T) {
	w, _, s := newTestWindow(t)
	w.App().Clipboard = failingClipboard{}
	doc := w.Document()
	doc.InsertText("abc")
	doc.SelectAll()
	mustTrigger(t, w, ActionCut)
	if doc.PlainText() != "abc" {
		t.Fatalf("failed cut removed text")
	}
	mustTrigger(t, w, ActionPaste)
	if s.status != "Clipboard unavailable" {
		t.Fatalf("status = %q", s.status)
	}
}

func TestInsertDateTimeAndSelectAll(t *testing.T) {
	w, _, _ := newTestWindow(t)
	mustTrigger(t, w, ActionInsertDateTime)
	if got := w.Document().PlainText(); got != "2025-03-04 05:06:07" {
		t.Fatalf("date = %q", got)
	}
	mustTrigger(t, w, ActionSelectAll)
	if w.Document().SelectedText() != "2025-03-04 05:06:07" {
		t.Fatalf("select all failed")
	}
}

func TestUndoRedoEnablement(t *testing.T) {
	w, _, s := newTestWindow(t)
	w.Document().InsertText("a")
	if !s.enabled[ActionUndo] || s.enabled[ActionRedo] {
		t.Fatalf("after edit: %v", s.enabled)
	}
	mustTrigger(t, w, ActionUndo)
	if s.enabled[ActionUndo] || !s.enabled[ActionRedo] {
		t.Fatalf("after undo: %v", s.enabled)
	}
	if w.Document().PlainText() != "" {
		t.Fatalf("undo failed")
	}
	mustTrigger(t, w, ActionRedo)
	if w.Document().PlainText() != "a" {
		t.Fatalf("redo failed")
	}
}

func TestExportPDF(t *testing.T) {
	w, d, s := newTestWindow(t)
	w.Document().InsertText("export me")
	d.savePath = filepath.Join(t.TempDir(), "out")
	mustTrigger(t, w, ActionExportPDF)
	want := d.savePath + ".pdf"
	raw, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read pdf: %v (warnings %v)", err, d.warnings)
	}
	if !strings.HasPrefix(string(raw), "%PDF-") {
		t.Fatalf("not a pdf")
	}
	if s.status != "Exported "+want {
		t.Fatalf("status = %q", s.status)
	}
	if d.saveTitles[0] != "Export PDF" {
		t.Fatalf("dialog title = %q", d.saveTitles[0])
	}
}

func TestPrintUsesConfiguredPrinter(t *testing.T) {
	app, sp := newTestApp(t)
	d := &fakeDialogs{}
	s := newFakeSurface()
	w, err := NewWindow(app, defaultLayout(t), d, s)
	if err != nil {
		t.Fatal(err)
	}
	w.Document().InsertText("page")

	mustTrigger(t, w, ActionPrint)
	if sp.calls != 0 {
		t.Fatalf("cancelled print dialog spooled a job")
	}
	d.printOK = true
	mustTrigger(t, w, ActionPrint)
	if sp.calls != 1 || sp.printer != "office" {
		t.Fatalf("spooler calls=%d printer=%q", sp.calls, sp.printer)
	}
	if s.status != "Sent to office" {
		t.Fatalf("status = %q", s.status)
	}
}

func TestPrintPreview(t *testing.T) {
	w, d, _ := newTestWindow(t)
	w.Document().InsertText("preview")
	mustTrigger(t, w, ActionPrintPreview)
	if d.previewed != 1 {
		t.Fatalf("previewed = %d", d.previewed)
	}
}

func TestAboutAndUpdates(t *testing.T) {
	w, d, _ := newTestWindow(t)
	mustTrigger(t, w, ActionAbout)
	if !strings.HasPrefix(d.about, "Notepadino v") {
		t.Fatalf("about = %q", d.about)
	}
	mustTrigger(t, w, ActionCheckUpdates)
	if len(d.infos) != 1 || d.infos[0] != "Check for Updates: You are running the latest version." {
		t.Fatalf("infos = %v", d.infos)
	}
}
