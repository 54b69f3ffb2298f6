/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package findreplace implements the Find and Replace panel that works on
// the window's document. A panel keeps no state between showings.
package findreplace

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"notepadino/internal/document"
	applog "notepadino/internal/log"
)

const Title = "Find and Replace"

// Informer shows an informational message to the user.
type Informer interface {
	Inform(title, message string)
}

// Panel backs the Find/Replace dialog. The dialog writes its two text
// fields into FindText and ReplaceText before invoking a command.
type Panel struct {
	FindText    string
	ReplaceText string

	doc  *document.Document
	info Informer
	log  *slog.Logger
}

func New(doc *document.Document, info Informer) *Panel {
	return &Panel{doc: doc, info: info, log: applog.WithComponent("findreplace")}
}

// FindNext selects the next literal, case-sensitive occurrence of term after
// the cursor, wrapping to the start once. When term is absent the user is
// told once and the previous selection is kept.
func (p *Panel) FindNext(term string) bool {
	anchor, cursor := p.doc.Anchor(), p.doc.Cursor()
	if p.findFrom(term, cursor) {
		return true
	}
	p.doc.MoveToStart()
	if p.findFrom(term, 0) {
		p.log.Debug("search wrapped", slog.String("term", term))
		return true
	}
	p.doc.Select(anchor, cursor)
	if p.info != nil {
		p.info.Inform("Not Found", fmt.Sprintf("Cannot find '%s'", term))
	}
	return false
}

func (p *Panel) findFrom(term string, from int) bool {
	pos, ok := p.doc.Find(term, from)
	if !ok {
		return false
	}
	p.doc.Select(pos, pos+utf8.RuneCountInString(term))
	return true
}

// ReplaceOne replaces the current selection, whatever it is, with
// replacement. Without a selection nothing happens.
func (p *Panel) ReplaceOne(replacement string) bool {
	if !p.doc.HasSelection() {
		return false
	}
	p.doc.InsertText(replacement)
	return true
}

// ReplaceAll replaces every occurrence of term in one undoable step.
func (p *Panel) ReplaceAll(term, replacement string) int {
	n := p.doc.ReplaceAll(term, replacement)
	if n > 0 {
		p.log.Info("replaced all", slog.Int("count", n))
	}
	return n
}

// The three dialog buttons.

func (p *Panel) FindNextClicked() bool  { return p.FindNext(p.FindText) }
func (p *Panel) ReplaceClicked() bool   { return p.ReplaceOne(p.ReplaceText) }
func (p *Panel) ReplaceAllClicked() int { return p.ReplaceAll(p.FindText, p.ReplaceText) }
