/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a fatal panic into a report file and a recovery copy
// of the unsaved document.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"notepadino/internal/document"
	applog "notepadino/internal/log"
	"notepadino/internal/storage"
	"notepadino/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Session is the editing state worth rescuing. *shell.Window satisfies it.
type Session interface {
	Path() string
	Document() *document.Document
}

// Recover captures a panic, logs it with its stacktrace, writes a report
// file into the temp directory and, when the session holds unsaved
// changes, a recovery copy of the text next to the original file.
//
// Usage: defer crash.Recover(win)
func Recover(s Session) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, err := writeReport(s, r, stack, time.Now())
		if err != nil {
			l.Error("crash report failed", slog.Any("err", err))
		}
		if path, err := writeRecovery(s, time.Now()); err != nil {
			l.Error("recovery copy failed", slog.Any("err", err))
		} else if path != "" {
			l.Info("recovery copy written", slog.String("path", path))
			_, _ = fmt.Fprintf(os.Stderr, "Unsaved text was written to: %s\n", path)
		}

		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		exitFn(2)
	}
}

func writeReport(s Session, panicVal any, stack []byte, now time.Time) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("notepadino-crash-%s.log", now.Format("20060102-150405")))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Notepadino Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", now.Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if s != nil {
		doc := s.Document()
		_, _ = fmt.Fprintf(&buf, "Document: %s\n", orUntitled(s.Path()))
		if doc != nil {
			_, _ = fmt.Fprintf(&buf, "Modified: %t\nRunes: %d\n", doc.IsModified(), doc.Len())
		}
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := storage.WriteText(path, buf.String()); err != nil {
		return path, err
	}
	return path, nil
}

// writeRecovery saves modified text beside its file, or in the temp
// directory for an untitled document. It returns "" when there is nothing to save.
func writeRecovery(s Session, now time.Time) (string, error) {
	if s == nil {
		return "", nil
	}
	doc := s.Document()
	if doc == nil || !doc.IsModified() || doc.Len() == 0 {
		return "", nil
	}
	stamp := now.Format("20060102-150405")
	var path string
	if p := s.Path(); p != "" {
		ext := filepath.Ext(p)
		path = fmt.Sprintf("%s.recovered-%s%s", strings.TrimSuffix(p, ext), stamp, ext)
	} else {
		path = filepath.Join(os.TempDir(), fmt.Sprintf("notepadino-untitled-%s.txt", stamp))
	}
	if err := storage.WriteText(path, doc.PlainText()); err != nil {
		return "", err
	}
	return path, nil
}

func orUntitled(p string) string {
	if p == "" {
		return "(untitled)"
	}
	return p
}
