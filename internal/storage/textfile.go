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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrNotUTF8 is returned by ReadText for files that are not valid UTF-8.
var ErrNotUTF8 = errors.New("file is not valid UTF-8 text")

// ReadText returns the whole file as text. Line endings are kept as stored.
func ReadText(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrNotUTF8)
	}
	return string(data), nil
}

// WriteText stores text as UTF-8 at path. The previous content survives any
// failure; an existing file keeps its permission bits. A symlink is written
// through to its target and stays a link.
func WriteText(path, text string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path is required")
	}
	if fi, err := os.Lstat(path); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		target, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", filepath.Base(path), err)
		}
		path = target
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		if fi.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		mode = fi.Mode().Perm()
	}
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	temp := f.Name()
	if werr := writeSync(f, []byte(text)); werr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("write temp file: %w", werr)
	}
	if cerr := os.Chmod(temp, mode); cerr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("set file mode: %w", cerr)
	}
	if rerr := os.Rename(temp, path); rerr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), rerr)
	}
	return nil
}

// writeSync writes data, flushes it to disk and closes f.
func writeSync(f *os.File, data []byte) (err error) {
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
