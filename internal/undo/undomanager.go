/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"sync"
	"time"
)

// Snapshot is an opaque, restorable document state captured before a change.
// Size is estimated as len(Blob).
type Snapshot struct {
	Label string
	Blob  []byte
	TS    time.Time
	// Coalesce lets a snapshot merge into the previous one when both carry the same
	// label and arrive within Config.MinInterval (continuous typing).
	Coalesce bool
}

// Config controls memory and depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap over both stacks; the oldest undo entries are pruned first.
	MaxBytes int
	// MaxDepth limits the number of undo steps kept (0 means unlimited).
	MaxDepth int
	// MinInterval is the coalescing window for snapshots flagged Coalesce.
	MinInterval time.Duration
}

// Manager keeps a linear undo/redo history of snapshots.
// It is safe for concurrent use.
type Manager struct {
	cfg  Config
	mu   sync.Mutex
	undo []Snapshot
	redo []Snapshot
	// lastPush is the time of the most recent Push, used for coalescing.
	// It is reset by Undo, Redo, Seal and Clear so that coalescing never spans them.
	lastPush   time.Time
	totalBytes int

	onChange           func(canUndo, canRedo bool)
	lastUndo, lastRedo bool
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 16 * 1024 * 1024 // 16 MiB
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = time.Second
	}
	return &Manager{cfg: cfg}
}

// OnChange registers fn to be called whenever undo or redo availability flips.
// fn runs outside the manager lock.
func (m *Manager) OnChange(fn func(canUndo, canRedo bool)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// Push records the state before a change. Any new change invalidates redo.
func (m *Manager) Push(s Snapshot) {
	m.mu.Lock()
	if n := len(m.undo); n > 0 && s.Coalesce && !m.lastPush.IsZero() {
		last := m.undo[n-1]
		if last.Coalesce && last.Label == s.Label && s.TS.Sub(m.lastPush) < m.cfg.MinInterval {
			// keep the older state; the run of edits undoes as one step
			m.lastPush = s.TS
			m.dropRedoLocked()
			m.unlockAndNotify()
			return
		}
	}
	m.undo = append(m.undo, s)
	m.totalBytes += len(s.Blob)
	m.lastPush = s.TS
	m.dropRedoLocked()
	m.enforceCapsLocked()
	m.unlockAndNotify()
}

// Undo pops the latest snapshot, stores current on the redo stack, and returns the popped state.
func (m *Manager) Undo(current Snapshot) (Snapshot, bool) {
	m.mu.Lock()
	n := len(m.undo)
	if n == 0 {
		m.mu.Unlock()
		return Snapshot{}, false
	}
	s := m.undo[n-1]
	m.undo = m.undo[:n-1]
	m.totalBytes -= len(s.Blob)
	current.Label = s.Label
	m.redo = append(m.redo, current)
	m.totalBytes += len(current.Blob)
	m.lastPush = time.Time{}
	m.enforceCapsLocked()
	m.unlockAndNotify()
	return s, true
}

// Redo pops from redo, stores current back on the undo stack, and returns the redone state.
func (m *Manager) Redo(current Snapshot) (Snapshot, bool) {
	m.mu.Lock()
	n := len(m.redo)
	if n == 0 {
		m.mu.Unlock()
		return Snapshot{}, false
	}
	s := m.redo[n-1]
	m.redo = m.redo[:n-1]
	m.totalBytes -= len(s.Blob)
	current.Label = s.Label
	current.Coalesce = false
	m.undo = append(m.undo, current)
	m.totalBytes += len(current.Blob)
	m.lastPush = time.Time{}
	m.enforceCapsLocked()
	m.unlockAndNotify()
	return s, true
}

// Seal ends the current coalescing run; the next Push starts a new step.
func (m *Manager) Seal() {
	m.mu.Lock()
	m.lastPush = time.Time{}
	m.mu.Unlock()
}

// Clear drops the whole history.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.undo = nil
	m.redo = nil
	m.totalBytes = 0
	m.lastPush = time.Time{}
	m.unlockAndNotify()
}

func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) > 0
}

func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (totalBytes int, undoDepth int, redoDepth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalBytes, len(m.undo), len(m.redo)
}

func (m *Manager) dropRedoLocked() {
	for _, s := range m.redo {
		m.totalBytes -= len(s.Blob)
	}
	m.redo = nil
}

func (m *Manager) enforceCapsLocked() {
	if m.cfg.MaxDepth > 0 && len(m.undo) > m.cfg.MaxDepth {
		toDrop := len(m.undo) - m.cfg.MaxDepth
		for i := 0; i < toDrop; i++ {
			m.totalBytes -= len(m.undo[i].Blob)
		}
		m.undo = append([]Snapshot(nil), m.undo[toDrop:]...)
	}
	// the newest undo entry always survives so the last change stays undoable
	for m.totalBytes > m.cfg.MaxBytes && len(m.undo) > 1 {
		m.totalBytes -= len(m.undo[0].Blob)
		m.undo = m.undo[1:]
	}
	if m.totalBytes < 0 {
		m.totalBytes = 0
	}
}

// unlockAndNotify releases the lock and fires onChange if availability changed.
func (m *Manager) unlockAndNotify() {
	cu, cr := len(m.undo) > 0, len(m.redo) > 0
	fn := m.onChange
	changed := cu != m.lastUndo || cr != m.lastRedo
	m.lastUndo, m.lastRedo = cu, cr
	m.mu.Unlock()
	if changed && fn != nil {
		fn(cu, cr)
	}
}
