/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package shell is the application core of Notepadino: the application
// context and the Shell Window with its command table. It talks to the GUI
// toolkit only through the Dialogs and Surface interfaces.
package shell

import (
	"log/slog"
	"time"

	"notepadino/internal/clipboard"
	"notepadino/internal/config"
	"notepadino/internal/document"
	applog "notepadino/internal/log"
	"notepadino/internal/printing"
	"notepadino/internal/textlayout"
)

// App is the process-wide application context. It is built once in main,
// handed to the window and closed on exit.
type App struct {
	Config    config.AppConfig
	Fonts     *textlayout.FontLibrary
	Printer   *printing.Pipeline
	Clipboard clipboard.Clipboard
	Now       func() time.Time

	log *slog.Logger
}

// NewApp wires the default services for cfg.
func NewApp(cfg config.AppConfig) (*App, error) {
	fonts, err := textlayout.DefaultFontLibrary()
	if err != nil {
		return nil, err
	}
	return &App{
		Config:    cfg,
		Fonts:     fonts,
		Printer:   printing.NewPipeline(fonts, printing.LPSpooler{}),
		Clipboard: clipboard.Default(),
		Now:       time.Now,
		log:       applog.WithComponent("app"),
	}, nil
}

// DefaultFormat is the character format of new text.
func (a *App) DefaultFormat() document.CharFormat {
	family := a.Config.Editor.FontFamily
	if a.Fonts == nil || !a.Fonts.Has(family) {
		family = textlayout.DefaultFamily
	}
	size := a.Config.Editor.FontSize
	if size <= 0 {
		size = 12
	}
	return document.CharFormat{Font: document.Font{Family: family, Size: size}, Foreground: document.Black}
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) logger() *slog.Logger {
	if a.log == nil {
		a.log = applog.WithComponent("app")
	}
	return a.log
}

// Close tears the context down and flushes the log file.
func (a *App) Close() error {
	a.logger().Debug("application closing")
	return applog.Close()
}
