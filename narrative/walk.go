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

package narrative

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Darkgator/BPMN-to-TEXT/bpmn"
)

const indentUnit = "    "

// numberEntry records where a node was first emitted during the walk.
type numberEntry struct {
	numStr string
	parts  numbering
}

// branchCounter tracks the next branch index to allocate at a diverging
// gateway; it survives re-entry into the same gateway.
type branchCounter struct {
	next int
}

// walker holds all mutable state threaded through a single DFS pass over
// one process: the node->numbering map (for cross-references), the
// current DFS stack (for loop detection), and per-gateway branch
// counters. Everything here is explicit owned state rather than being
// threaded through recursion arguments, mirroring the mutable maps the
// original walker closed over.
type walker struct {
	proc    *bpmn.Process
	defs    *bpmn.Definitions
	lines   []string
	numbers map[string]numberEntry
	onStack map[string]bool
	branch  map[string]*branchCounter
}

func newWalker(proc *bpmn.Process, defs *bpmn.Definitions) *walker {
	return &walker{
		proc:    proc,
		defs:    defs,
		numbers: make(map[string]numberEntry),
		onStack: make(map[string]bool),
		branch:  make(map[string]*branchCounter),
	}
}

// walk performs the depth-first traversal, appending lines to
// w.lines and returning the numbering ultimately reached by the deepest
// unbranched continuation of this subtree (used by the caller to advance
// a diverging gateway's branch counter past whatever depth a child used).
func (w *walker) walk(nodeID string, num numbering) numbering {
	nd, ok := w.proc.Nodes[nodeID]
	if !ok {
		return num
	}

	depth := len(num) - 1
	indent := strings.Repeat(indentUnit, depth)
	detailIndent := indent + indentUnit
	numStr := num.String()

	if prev, seen := w.numbers[nodeID]; seen {
		var label string
		switch compare(prev.parts, num) {
		case -1:
			label = "retorna para"
		case 1:
			label = "avança para"
		default:
			label = "referência"
		}
		w.emit(fmt.Sprintf("%s(%s %s)", indent, label, prev.numStr))
		return num
	}

	if w.onStack[nodeID] {
		w.emit(fmt.Sprintf("%s(loop em %s)", indent, numStr))
		return num
	}

	outs := w.proc.Outgoing[nodeID]
	isGateway := nd.Category == bpmn.CategoryGateway
	isDiverging := isGateway && len(outs) > 1
	isConverging := isGateway && len(w.proc.Incoming[nodeID]) > 1 && len(outs) == 1 && !isDiverging
	isParallelConvergence := isConverging && nd.GatewayKind == bpmn.GatewayParallel

	if isConverging && len(outs) > 0 && !isParallelConvergence {
		w.numbers[nodeID] = numberEntry{numStr, num}
		w.onStack[nodeID] = true
		defer delete(w.onStack, nodeID)
		next := w.proc.Flows[outs[0]].Target
		return w.walk(next, num)
	}

	desc := describeNode(nd)
	if isParallelConvergence {
		desc = "Fim do Gateway Paralelo (convergência)"
	}
	w.emit(fmt.Sprintf("%s%s. %s", indent, numStr, desc))
	w.emitDetails(nd, detailIndent)

	w.numbers[nodeID] = numberEntry{numStr, num}
	w.onStack[nodeID] = true
	defer delete(w.onStack, nodeID)

	lastUsed := num

	switch {
	case isDiverging:
		state, ok := w.branch[nodeID]
		if !ok {
			state = &branchCounter{next: 1}
			w.branch[nodeID] = state
		}
		for i, flowID := range outs {
			branchIdx := i + 1
			childNum := state.next
			state.next++
			flow := w.proc.Flows[flowID]
			label := branchLabel(flow.Label, nd.GatewayKind, branchIdx, childNum)
			w.emit(fmt.Sprintf("%sCaso %s:", detailIndent, label))
			last := w.walk(flow.Target, num.withBranch(childNum))
			lastUsed = last
			if len(last) > len(num) {
				suffix := last[len(num)]
				if suffix+1 > state.next {
					state.next = suffix + 1
				}
			}
		}
	case len(outs) == 1:
		lastUsed = w.walk(w.proc.Flows[outs[0]].Target, num.nextStep())
	}

	return lastUsed
}

func branchLabel(flowLabel string, kind bpmn.GatewayKind, branchIdx, childNum int) string {
	if flowLabel == "" && kind == bpmn.GatewayParallel {
		return fmt.Sprintf("Caminho %02d", branchIdx)
	}
	if flowLabel != "" {
		return flowLabel
	}
	return fmt.Sprintf("Caminho %d", childNum)
}

func (w *walker) emit(line string) {
	w.lines = append(w.lines, line)
}

func (w *walker) emitDetails(nd *bpmn.Node, detailIndent string) {
	if nd.Category == bpmn.CategoryTask {
		actor := w.defs.Actor(nd.ID)
		typeLabel := bpmn.TaskKindLabel[nd.TaskKind]
		w.emit(fmt.Sprintf("%sAtor: %s | Tipo: %s", detailIndent, actor, typeLabel))
	} else if nd.Category == bpmn.CategorySubprocess {
		actor := w.defs.Actor(nd.ID)
		w.emit(fmt.Sprintf("%sAtor: %s", detailIndent, actor))
	}

	artifacts := w.defs.ArtifactsByNode[nd.ID]

	docs := uniqueSorted(artifacts, bpmn.ArtifactDocument)
	systems := uniqueSorted(artifacts, bpmn.ArtifactSystem)
	if len(docs) > 0 || len(systems) > 0 {
		var parts []string
		if len(systems) > 0 {
			parts = append(parts, fmt.Sprintf("Sistema: %s", strings.Join(systems, ", ")))
		}
		if len(docs) > 0 {
			parts = append(parts, fmt.Sprintf("Documento: %s", strings.Join(docs, ", ")))
		}
		w.emit(fmt.Sprintf("%s%s", detailIndent, strings.Join(parts, " | ")))
	}

	for _, note := range firstSeenNotes(artifacts) {
		w.emit(fmt.Sprintf("%sAnotação: %q", detailIndent, note))
	}
}

func uniqueSorted(artifacts []bpmn.Artifact, kind bpmn.ArtifactKind) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range artifacts {
		if a.Kind != kind {
			continue
		}
		if seen[a.Text] {
			continue
		}
		seen[a.Text] = true
		out = append(out, a.Text)
	}
	sort.Strings(out)
	return out
}

func firstSeenNotes(artifacts []bpmn.Artifact) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range artifacts {
		if a.Kind != bpmn.ArtifactAnnotation {
			continue
		}
		key := cleanNote(a.Text)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

// cleanNote normalises an annotation's text to a single line with
// collapsed whitespace.
func cleanNote(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
