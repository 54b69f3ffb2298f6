/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "note.txt")
	text := "line one\r\nzwei – drei\n\tcafé ✓\n"
	if err := WriteText(p, text); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if string(raw) != text {
		t.Fatalf("bytes on disk differ: %q", raw)
	}
	got, err := ReadText(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != text {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestWriteReplacesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.txt")
	if err := WriteText(p, "first"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteText(p, "second"); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	got, _ := ReadText(p)
	if got != "second" {
		t.Fatalf("got %q", got)
	}
	ents, _ := os.ReadDir(dir)
	if len(ents) != 1 {
		t.Fatalf("expected only the target file, found %d entries", len(ents))
	}
}

func TestWriteKeepsMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not portable")
	}
	p := filepath.Join(t.TempDir(), "m.txt")
	if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteText(p, "y"); err != nil {
		t.Fatalf("write: %v", err)
	}
	fi, _ := os.Stat(p)
	if fi.Mode().Perm() != 0o600 {
		t.Fatalf("mode=%v", fi.Mode().Perm())
	}
}

func TestWriteFailures(t *testing.T) {
	dir := t.TempDir()
	if err := WriteText(filepath.Join(dir, "missing", "x.txt"), "x"); err == nil {
		t.Fatalf("expected error for missing directory")
	}
	if err := WriteText(dir, "x"); err == nil {
		t.Fatalf("expected error when target is a directory")
	}
	if err := WriteText(" ", "x"); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestReadFailures(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadText(filepath.Join(dir, "nope.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist, got %v", err)
	}
	bin := filepath.Join(dir, "bin.dat")
	if err := os.WriteFile(bin, []byte{0xff, 0xfe, 0x00, 'a'}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadText(bin); !errors.Is(err, ErrNotUTF8) {
		t.Fatalf("expected ErrNotUTF8, got %v", err)
	}
	empty := filepath.Join(dir, "empty.txt")
	_ = os.WriteFile(empty, nil, 0o644)
	if s, err := ReadText(empty); err != nil || s != "" {
		t.Fatalf("empty file: %q %v", s, err)
	}
}

func TestWriteThroughSymlinkKeepsLink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "real.txt")
	link := filepath.Join(dir, "link.txt")
	if err := os.WriteFile(target, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}
	if err := WriteText(link, "new"); err != nil {
		t.Fatalf("write: %v", err)
	}
	fi, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("link was replaced by a regular file")
	}
	b, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "new" {
		t.Fatalf("target = %q", b)
	}
	if st, _ := os.Stat(target); st.Mode().Perm() != 0o600 {
		t.Fatalf("target mode = %v", st.Mode().Perm())
	}
}
