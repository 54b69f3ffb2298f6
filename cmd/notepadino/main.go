/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"gopkg.in/yaml.v3"

	"notepadino/internal/config"
	"notepadino/internal/crash"
	"notepadino/internal/document"
	applog "notepadino/internal/log"
	"notepadino/internal/printing"
	"notepadino/internal/shell"
	"notepadino/internal/storage"
	"notepadino/internal/tui"
	"notepadino/internal/ui"
	"notepadino/internal/version"
)

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Notepadino, a rich-text notepad")
	_, _ = fmt.Fprintf(w, "Version: %s\n", version.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  notepadino [<file>]                     Launch the editor (build with -tags fyne for the UI)")
	_, _ = fmt.Fprintln(w, "  notepadino tui [<file>]                 Edit in the terminal")
	_, _ = fmt.Fprintln(w, "  notepadino version|-v|--version         Show version")
	_, _ = fmt.Fprintln(w, "  notepadino config [init]                Show the effective config, or write the defaults")
	_, _ = fmt.Fprintln(w, "  notepadino export-pdf <in> <out.pdf>    Render a text file to PDF")
	_, _ = fmt.Fprintln(w, "  notepadino print <in> [<printer>]       Send a text file to a printer")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(applog.FromConfig(cfg.Logging))
	defer crash.Recover(nil)
	if cfgErr != nil {
		applog.WithComponent("cli").Warn("config load failed, using defaults", slog.Any("err", cfgErr))
	}
	code := run(cfg, os.Args[1:], os.Stdout, os.Stderr)
	_ = applog.Close()
	if code != 0 {
		os.Exit(code)
	}
}

// run dispatches one command line and returns the process exit code.
func run(cfg config.AppConfig, args []string, stdout, stderr io.Writer) int {
	l := applog.WithComponent("cli")
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 0 {
		switch args[0] {
		case "version", "--version", "-v":
			_, _ = fmt.Fprintln(stdout, shell.AppName)
			_, _ = fmt.Fprintln(stdout, version.String())
			return 0
		case "help", "--help", "-h":
			usage(stdout)
			return 0
		case "config":
			return runConfig(cfg, args[1:], stdout, stderr)
		case "export-pdf":
			if len(args) < 3 {
				_, _ = fmt.Fprintln(stderr, "export-pdf requires <in> and <out.pdf>")
				usage(stderr)
				return 2
			}
			s := printing.NewSettings(cfg.Print)
			s.Format = printing.PDF
			s.OutputFile = args[2]
			if err := printFile(cfg, args[1], s); err != nil {
				l.Error("export failed", slog.Any("err", err))
				_, _ = fmt.Fprintln(stderr, "Error:", err)
				return 1
			}
			_, _ = fmt.Fprintln(stdout, "Exported", args[2])
			return 0
		case "print":
			if len(args) < 2 {
				_, _ = fmt.Fprintln(stderr, "print requires <in>")
				usage(stderr)
				return 2
			}
			s := printing.NewSettings(cfg.Print)
			if len(args) > 2 {
				s.PrinterName = args[2]
			}
			if err := printFile(cfg, args[1], s); err != nil {
				l.Error("print failed", slog.Any("err", err))
				_, _ = fmt.Fprintln(stderr, "Error:", err)
				return 1
			}
			_, _ = fmt.Fprintln(stdout, "Sent", args[1], "to the printer")
			return 0
		case "tui":
			var file string
			if len(args) > 1 {
				file = args[1]
			}
			return runUI(cfg, file, stderr, func(app *shell.App, file string) error {
				return tui.Run(tui.Options{App: app, File: file})
			})
		}
	}
	var file string
	if len(args) > 0 {
		file = args[0]
	}
	return runUI(cfg, file, stderr, func(app *shell.App, file string) error {
		return ui.Run(ui.Options{App: app, File: file})
	})
}

func runUI(cfg config.AppConfig, file string, stderr io.Writer, front func(*shell.App, string) error) int {
	app, err := shell.NewApp(cfg)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	defer func() { _ = app.Close() }()
	if err := front(app, file); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func runConfig(cfg config.AppConfig, args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "init" {
		path, err := config.Save(config.Defaults())
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		_, _ = fmt.Fprintln(stdout, "Wrote default config to", path)
		return 0
	}
	if path, err := config.ConfigPath(); err == nil {
		_, _ = fmt.Fprintln(stdout, "# "+path)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	_, _ = stdout.Write(out)
	return 0
}

// printFile loads a plain-text file in the configured default format and
// prints it with s.
func printFile(cfg config.AppConfig, in string, s printing.Settings) error {
	text, err := storage.ReadText(in)
	if err != nil {
		return err
	}
	app, err := shell.NewApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	doc := document.New(app.DefaultFormat())
	doc.SetPlainText(text)
	s.Title = in
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return app.Printer.Print(ctx, doc, s)
}
