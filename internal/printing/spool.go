/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package printing

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// LPSpooler prints through the CUPS/System V lp command.
type LPSpooler struct {
	// Command defaults to "lp"; LpstatCommand to "lpstat".
	Command       string
	LpstatCommand string
}

// Args builds the command line for one job.
func (s LPSpooler) Args(pdfPath string, st Settings) []string {
	var args []string
	if st.PrinterName != "" {
		args = append(args, "-d", st.PrinterName)
	}
	if st.Copies > 1 {
		args = append(args, "-n", strconv.Itoa(st.Copies))
	}
	if st.Title != "" {
		args = append(args, "-t", st.Title)
	}
	return append(args, pdfPath)
}

func (s LPSpooler) Spool(ctx context.Context, pdfPath string, st Settings) error {
	cmd := s.Command
	if cmd == "" {
		cmd = "lp"
	}
	out, err := exec.CommandContext(ctx, cmd, s.Args(pdfPath, st)...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", cmd, err, msg)
		}
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return nil
}

// Printers lists destinations known to the spooler.
func (s LPSpooler) Printers(ctx context.Context) ([]string, error) {
	cmd := s.LpstatCommand
	if cmd == "" {
		cmd = "lpstat"
	}
	out, err := exec.CommandContext(ctx, cmd, "-e").Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd, err)
	}
	return parsePrinters(out), nil
}

func parsePrinters(out []byte) []string {
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if f := strings.Fields(sc.Text()); len(f) > 0 {
			names = append(names, f[0])
		}
	}
	return names
}
