/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"notepadino/internal/document"
	"notepadino/internal/textlayout"
)

// Meta is written into the PDF info dictionary.
type Meta struct {
	Title   string
	Author  string
	Creator string
	// Created fixes the creation date; zero means now.
	Created time.Time
}

// WritePDF renders pages into a PDF file at outPath.
// Units are points; the page origin is top-left. Fonts are embedded as UTF-8 TrueType.
func WritePDF(pages []textlayout.Page, setup textlayout.PageSetup, fonts *textlayout.FontLibrary, outPath string, meta Meta) error {
	pdf, err := build(pages, setup, fonts, meta)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// EncodePDF renders pages as PDF into w.
func EncodePDF(w io.Writer, pages []textlayout.Page, setup textlayout.PageSetup, fonts *textlayout.FontLibrary, meta Meta) error {
	pdf, err := build(pages, setup, fonts, meta)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func build(pages []textlayout.Page, setup textlayout.PageSetup, fonts *textlayout.FontLibrary, meta Meta) (*gofpdf.Fpdf, error) {
	if fonts == nil {
		return nil, fmt.Errorf("font library is nil")
	}
	if setup.Width <= 0 || setup.Height <= 0 {
		return nil, fmt.Errorf("invalid page size %gx%g", setup.Width, setup.Height)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: setup.Width, Ht: setup.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	if meta.Creator != "" {
		pdf.SetCreator(meta.Creator, true)
	}
	if !meta.Created.IsZero() {
		pdf.SetCreationDate(meta.Created)
	}

	embedded := map[string]bool{}
	useFont := func(f document.CharFormat) error {
		r, ok := fonts.Resolve(textlayout.SpecFor(f))
		if !ok {
			return fmt.Errorf("no font for %q", f.Font.Family)
		}
		family := strings.ReplaceAll(r.Family, " ", "")
		key := family + "/" + r.Style()
		if !embedded[key] {
			pdf.AddUTF8FontFromBytes(family, r.Style(), r.TTF)
			if err := pdf.Error(); err != nil {
				return fmt.Errorf("embed font %s: %w", key, err)
			}
			embedded[key] = true
		}
		pdf.SetFont(family, r.Style(), sizeOf(f))
		return nil
	}

	if len(pages) == 0 {
		pages = []textlayout.Page{{Number: 1}}
	}
	for _, pg := range pages {
		pdf.AddPage()
		for _, ln := range pg.Lines {
			for _, fr := range ln.Fragments {
				if bg := fr.Format.Background; bg.IsSet() {
					pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
					pdf.Rect(fr.X, ln.Top, fr.Width, ln.Height, "F")
				}
				if err := useFont(fr.Format); err != nil {
					return nil, err
				}
				fg := foreground(fr.Format)
				pdf.SetTextColor(int(fg.R), int(fg.G), int(fg.B))
				pdf.Text(fr.X, ln.Baseline, fr.Text)
				size := sizeOf(fr.Format)
				pdf.SetDrawColor(int(fg.R), int(fg.G), int(fg.B))
				pdf.SetLineWidth(size / 15)
				if fr.Format.Underline {
					y := ln.Baseline + size*underlineOffset
					pdf.Line(fr.X, y, fr.X+fr.Width, y)
				}
				if fr.Format.Strike {
					y := ln.Baseline - size*strikeOffset
					pdf.Line(fr.X, y, fr.X+fr.Width, y)
				}
			}
		}
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}

// Decoration offsets relative to the baseline, as a fraction of the font size.
const (
	underlineOffset = 0.12
	strikeOffset    = 0.28
)

func sizeOf(f document.CharFormat) float64 {
	if f.Font.Size <= 0 {
		return 12
	}
	return f.Font.Size
}

func foreground(f document.CharFormat) document.Color {
	if !f.Foreground.IsSet() {
		return document.Black
	}
	return f.Foreground
}
