/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shell

import (
	"log/slog"

	applog "notepadino/internal/log"
	"notepadino/internal/storage"
)

// NewDocument clears content and path once unsaved changes are dealt with.
func (w *Window) NewDocument() {
	w.MaybeSave(func(ok bool) {
		if !ok {
			return
		}
		w.path = ""
		w.doc.Clear()
		w.updateTitle()
		w.surface.ShowStatus("New document")
	})
}

// OpenDocument asks for a file and loads it once unsaved changes are dealt with.
func (w *Window) OpenDocument() {
	w.MaybeSave(func(ok bool) {
		if !ok {
			return
		}
		w.dialogs.ChooseOpenPath(func(path string, ok bool) {
			if !ok || path == "" {
				return
			}
			_ = w.Load(path)
		})
	})
}

// Load replaces the document with the file at path. On failure the user is
// warned and the window state is left as it was.
func (w *Window) Load(path string) error {
	l := applog.WithOperation(w.log, "load")
	text, err := storage.ReadText(path)
	if err != nil {
		l.Warn("load failed", slog.String("path", path), slog.Any("err", err))
		w.dialogs.Warn("Load Error", "Could not load file: "+err.Error())
		return err
	}
	w.path = path
	w.doc.SetPlainText(text)
	w.updateTitle()
	w.surface.ShowStatus("Opened " + path)
	l.Info("document loaded", slog.String("path", path), slog.Int("runes", w.doc.Len()))
	return nil
}

// SaveDocument writes to the recorded path, or behaves like SaveDocumentAs
// when there is none. done receives the outcome and may be nil.
func (w *Window) SaveDocument(done func(ok bool)) {
	if w.path == "" {
		w.SaveDocumentAs(done)
		return
	}
	call(done, w.saveTo(w.path))
}

// SaveDocumentAs asks for a path and writes there.
func (w *Window) SaveDocumentAs(done func(ok bool)) {
	w.dialogs.ChooseSavePath("Save As", nil, func(path string, ok bool) {
		if !ok || path == "" {
			call(done, false)
			return
		}
		call(done, w.saveTo(path))
	})
}

func (w *Window) saveTo(path string) bool {
	l := applog.WithOperation(w.log, "save")
	if err := storage.WriteText(path, w.doc.PlainText()); err != nil {
		l.Warn("save failed", slog.String("path", path), slog.Any("err", err))
		w.dialogs.Warn("Save Error", "Could not save file: "+err.Error())
		return false
	}
	w.path = path
	w.doc.SetModified(false)
	w.updateTitle()
	w.surface.ShowStatus("Saved " + path)
	l.Info("document saved", slog.String("path", path))
	return true
}

// MaybeSave gates destructive operations. then(true) means proceed: the
// document was unmodified, saved successfully, or the user discarded it.
func (w *Window) MaybeSave(then func(ok bool)) {
	if !w.doc.IsModified() {
		call(then, true)
		return
	}
	w.dialogs.AskSaveChanges(func(c Choice) {
		switch c {
		case ChoiceSave:
			w.SaveDocument(then)
		case ChoiceDiscard:
			call(then, true)
		default:
			call(then, false)
		}
	})
}

// Close reports through then whether the window may close.
func (w *Window) Close(then func(ok bool)) {
	w.MaybeSave(then)
}

// RequestClose handles Exit and the window close box: the surface quits
// unless the user vetoes.
func (w *Window) RequestClose() {
	if w.closing {
		return
	}
	w.Close(func(ok bool) {
		if !ok {
			w.log.Debug("close vetoed")
			return
		}
		w.closing = true
		w.surface.Quit()
	})
}
