/*
 * Copyright 2023 Cydarm Technologies Pty Ltd, https://cydarm.com/
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * 		http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package narrative turns a parsed BPMN document into the numbered
// Portuguese-language prose narrative: one section per process, a
// trailing message-flow section for cross-process collaboration, and a
// trailing orphan-annotation section.
package narrative

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/Darkgator/BPMN-to-TEXT/bpmn"
	"github.com/Darkgator/BPMN-to-TEXT/config"
)

// Render parses data as a BPMN document and produces its full text
// narrative, with every optional section included. filename is used only
// as the title fallback for a process that has neither its own name nor
// a bound participant name.
func Render(data []byte, filename string) (string, error) {
	return RenderWithConfig(data, filename, config.Default())
}

// RenderWithConfig is Render with optional sections gated by cfg.
func RenderWithConfig(data []byte, filename string, cfg config.RenderConfig) (string, error) {
	defs, err := bpmn.Load(data)
	if err != nil {
		return "", errors.Wrap(err, "loading BPMN")
	}

	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	var out []string
	for _, proc := range defs.Processes {
		if len(proc.StartEvents) == 0 {
			continue
		}
		out = append(out, renderProcess(proc, defs, stem)...)
		out = append(out, "")
	}

	if cfg.IncludeMessageFlows {
		out = append(out, renderMessageFlows(defs, stem)...)
	}

	if cfg.IncludeOrphanAnnotations {
		out = append(out, renderOrphanAnnotations(defs)...)
	}

	return strings.TrimRight(strings.Join(out, "\n"), " \t\r\n"), nil
}

// RenderFromPath reads path and renders it with the full configuration,
// per Render.
func RenderFromPath(path string) (string, error) {
	return RenderFromPathWithConfig(path, config.Default())
}

// RenderFromPathWithConfig reads path and renders it per RenderWithConfig.
func RenderFromPathWithConfig(path string, cfg config.RenderConfig) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return RenderWithConfig(data, path, cfg)
}

// processTitle resolves a process's display title: its own name, else the
// participant name bound to it via processRef, else the source file's
// stem.
func processTitle(proc *bpmn.Process, defs *bpmn.Definitions, stem string) string {
	if proc.Name != "" {
		return proc.Name
	}
	if name := bpmn.ParticipantNameByProcess(defs.Participants, proc.ID); name != "" {
		return name
	}
	return stem
}

func renderProcess(proc *bpmn.Process, defs *bpmn.Definitions, stem string) []string {
	title := processTitle(proc, defs, stem)
	out := []string{fmt.Sprintf("Titulo: %s", title)}

	w := newWalker(proc, defs)
	for _, start := range proc.StartEvents {
		w.walk(start, numbering{1})
	}
	out = append(out, w.lines...)
	return out
}

func renderMessageFlows(defs *bpmn.Definitions, stem string) []string {
	if len(defs.MessageFlows) == 0 {
		return nil
	}

	out := []string{
		"Interações entre processos (message flows):",
		"- Origem (Processo / Elemento) | Destino (Processo / Elemento) | Mensagem",
	}
	for _, mf := range defs.MessageFlows {
		srcPool, srcEl := poolAndElement(defs, mf.Source, stem)
		tgtPool, tgtEl := poolAndElement(defs, mf.Target, stem)
		label := mf.Label
		if label == "" {
			label = "(sem nome)"
		}
		out = append(out, fmt.Sprintf("- %s / %s | %s / %s | %s", srcPool, srcEl, tgtPool, tgtEl, label))
	}
	return out
}

// poolAndElement resolves a message-flow endpoint's display pool name and
// element display text: the pool falls back through participant-by-id,
// participant-by-process, the endpoint's raw owning process id, and
// finally (only when the endpoint is itself a known flow node and every
// prior lookup came up empty) that process's own resolved title. The
// element falls back from the node's name to its category label; an
// endpoint that isn't a known flow node displays its raw id instead.
func poolAndElement(defs *bpmn.Definitions, id, stem string) (pool, element string) {
	pool = bpmn.ParticipantNameByID(defs.Participants, id)
	procID := defs.NodeProcess[id]
	if pool == "" {
		if name := bpmn.ParticipantNameByProcess(defs.Participants, procID); name != "" {
			pool = name
		} else {
			pool = procID
		}
	}

	for _, proc := range defs.Processes {
		if nd, ok := proc.Nodes[id]; ok {
			element = nd.Name
			if element == "" {
				element = nd.Label
			}
			if pool == "" {
				pool = processTitle(proc, defs, stem)
			}
			return pool, element
		}
	}

	return pool, id
}

func renderOrphanAnnotations(defs *bpmn.Definitions) []string {
	if len(defs.OrphanAnnotations) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var rows []string
	for _, a := range defs.OrphanAnnotations {
		note := cleanNote(a.Text)
		if note == "" || seen[note] {
			continue
		}
		seen[note] = true
		rows = append(rows, fmt.Sprintf("- %q", note))
	}
	if len(rows) == 0 {
		return nil
	}
	return append([]string{"", "Anotações não ligadas a elementos:"}, rows...)
}
