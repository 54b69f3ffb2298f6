/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shell

import (
	"image"

	"notepadino/internal/document"
	"notepadino/internal/findreplace"
	"notepadino/internal/printing"
)

// Choice is the answer to the unsaved-changes question.
type Choice int

const (
	ChoiceSave Choice = iota
	ChoiceDiscard
	ChoiceCancel
)

// Dialogs are the modal interactions the window needs. Implementations may
// return before the user answers; every result arrives through done on
// the UI goroutine. A dismissed dialog reports ok == false.
type Dialogs interface {
	AskSaveChanges(done func(Choice))
	ChooseOpenPath(done func(path string, ok bool))
	ChooseSavePath(title string, extensions []string, done func(path string, ok bool))
	ChooseFont(current document.Font, families []string, done func(f document.Font, ok bool))
	ChooseColor(title string, current document.Color, done func(c document.Color, ok bool))
	ConfigurePrinter(s *printing.Settings, done func(ok bool))
	ShowPrintPreview(pages []image.Image)
	ShowFindReplace(p *findreplace.Panel)
	Warn(title, message string)
	Inform(title, message string)
	About(title, message string)
}

// Surface is the window chrome and the editing widget.
type Surface interface {
	SetTitle(title string)
	ShowStatus(message string)
	SetActionEnabled(id string, enabled bool)
	SetActionChecked(id string, checked bool)
	SetWordWrap(on bool)
	SetZoom(factor float64)
	SetSurfaceBackground(c document.Color)
	SetStatusBarVisible(visible bool)
	SetToolbarVisible(visible bool)
	// Refresh pushes document changes into the editing widget.
	Refresh(doc *document.Document, c document.Change)
	Quit()
}
