/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package printing turns a document into pages and sends them to a PDF file,
// the OS print spooler or a raster preview.
package printing

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"notepadino/internal/config"
	"notepadino/internal/document"
	"notepadino/internal/export"
	applog "notepadino/internal/log"
	"notepadino/internal/textlayout"
	"notepadino/internal/version"
)

// OutputFormat selects where a print job goes.
type OutputFormat int

const (
	Native OutputFormat = iota // OS print spooler
	PDF                        // file at Settings.OutputFile
)

func (f OutputFormat) String() string {
	if f == PDF {
		return "pdf"
	}
	return "native"
}

var (
	ErrNoOutputFile = errors.New("no output file set for PDF printing")
	ErrNoSpooler    = errors.New("no print spooler available")
)

// Settings is the printer configuration of one job.
type Settings struct {
	PrinterName string
	Copies      int
	Format      OutputFormat
	OutputFile  string
	PageSize    string
	MarginPt    float64
	Title       string
}

// NewSettings seeds a job from the print configuration.
func NewSettings(c config.PrintConfig) Settings {
	return Settings{
		PrinterName: c.Printer,
		Copies:      1,
		Format:      Native,
		PageSize:    c.PageSize,
		MarginPt:    c.MarginPt,
	}
}

// Setup returns the page geometry of the job.
func (s Settings) Setup() textlayout.PageSetup {
	return textlayout.NewPageSetup(s.PageSize, s.MarginPt)
}

// Source is anything that can be split into rich paragraphs.
type Source interface {
	Paragraphs() []document.Paragraph
}

// Spooler hands a finished PDF to the operating system.
type Spooler interface {
	Spool(ctx context.Context, pdfPath string, s Settings) error
}

// Pipeline paginates documents and routes them to their destination.
type Pipeline struct {
	Fonts   *textlayout.FontLibrary
	Spooler Spooler
	// TempDir holds spool files; empty means os.TempDir().
	TempDir string
	Now     func() time.Time
	log     *slog.Logger
}

func NewPipeline(fonts *textlayout.FontLibrary, spooler Spooler) *Pipeline {
	return &Pipeline{Fonts: fonts, Spooler: spooler, Now: time.Now, log: applog.WithComponent("printing")}
}

// Paginate lays out doc for the job's paper.
func (p *Pipeline) Paginate(doc Source, s Settings) ([]textlayout.Page, textlayout.PageSetup) {
	setup := s.Setup()
	pages := textlayout.Paginator{Fonts: p.Fonts, Setup: setup}.Paginate(doc.Paragraphs())
	return pages, setup
}

// Print renders doc and delivers it according to s.Format.
func (p *Pipeline) Print(ctx context.Context, doc Source, s Settings) error {
	l := applog.WithOperation(p.logger(), "print")
	pages, setup := p.Paginate(doc, s)
	meta := export.Meta{Title: s.Title, Creator: "Notepadino " + version.Version, Created: p.now()}
	switch s.Format {
	case PDF:
		if s.OutputFile == "" {
			return ErrNoOutputFile
		}
		if err := export.WritePDF(pages, setup, p.Fonts, s.OutputFile, meta); err != nil {
			return err
		}
		l.Info("pdf written", slog.String("path", s.OutputFile), slog.Int("pages", len(pages)))
		return nil
	default:
		if p.Spooler == nil {
			return ErrNoSpooler
		}
		f, err := os.CreateTemp(p.TempDir, "notepadino-print-*.pdf")
		if err != nil {
			return fmt.Errorf("create spool file: %w", err)
		}
		tmp := f.Name()
		_ = f.Close()
		defer func() {
			if rerr := os.Remove(tmp); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				l.Warn("remove spool file", slog.String("path", tmp), slog.Any("err", rerr))
			}
		}()
		if err := export.WritePDF(pages, setup, p.Fonts, tmp, meta); err != nil {
			return err
		}
		if err := p.Spooler.Spool(ctx, tmp, s); err != nil {
			return fmt.Errorf("spool: %w", err)
		}
		l.Info("job spooled", slog.String("printer", s.PrinterName), slog.Int("copies", s.Copies), slog.Int("pages", len(pages)))
		return nil
	}
}

// Preview rasterises every page at scale pixels per point.
func (p *Pipeline) Preview(doc Source, s Settings, scale float64) ([]image.Image, error) {
	pages, setup := p.Paginate(doc, s)
	return export.RenderPages(pages, setup, p.Fonts, scale)
}

func (p *Pipeline) logger() *slog.Logger {
	if p.log == nil {
		p.log = applog.WithComponent("printing")
	}
	return p.log
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
