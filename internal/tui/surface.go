/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tui

import "notepadino/internal/document"

func (m *model) SetTitle(title string)                    { m.title = title }
func (m *model) ShowStatus(message string)                { m.status = message }
func (m *model) SetActionEnabled(id string, enabled bool) { m.enabled[id] = enabled }
func (m *model) SetActionChecked(id string, checked bool) { m.checked[id] = checked }
func (m *model) SetWordWrap(on bool)                      { m.wrap = on }
func (m *model) SetStatusBarVisible(visible bool)         { m.statusBar = visible }
func (m *model) SetToolbarVisible(visible bool)           { m.toolbar = visible }
func (m *model) SetSurfaceBackground(c document.Color)    { m.background = c }

// SetZoom has no effect on terminal cell size; the factor is shown in the status line.
func (m *model) SetZoom(factor float64) { m.zoom = factor }

// Refresh needs no work: View renders straight from the document.
func (m *model) Refresh(*document.Document, document.Change) {}

func (m *model) Quit() { m.quitting = true }
