/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package clipboard abstracts the system clipboard so that cut, copy and paste
// work the same way in the UI, in headless runs and in tests.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard holds plain text.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// System talks to the OS clipboard (xclip/xsel/wl-clipboard on Linux,
// pbcopy on macOS, the Win32 API on Windows).
type System struct{}

func (System) ReadText() (string, error) {
	s, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return s, nil
}

func (System) WriteText(s string) error {
	if err := clipboard.WriteAll(s); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Available reports whether the OS clipboard can be used at all.
func Available() bool { return !clipboard.Unsupported }

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteText(s string) error {
	m.mu.Lock()
	m.text = s
	m.mu.Unlock()
	return nil
}

// Default returns the system clipboard when supported, else a Memory one.
func Default() Clipboard {
	if Available() {
		return System{}
	}
	return &Memory{}
}
