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

// Package bpmn parses BPMN 2.0 XML into a uniform node/edge graph: it
// recognises the several overlapping BPMN element families, repairs link
// events that connect by name rather than by an explicit sequence flow,
// resolves lane membership (explicit and geometric), and collects
// artifacts (documents, systems, annotations) and their attachments.
// Everything here is built once from an immutable input byte buffer and
// is read-only afterwards; there is no mutable shared state once Load
// returns.
package bpmn

import (
	"github.com/pkg/errors"
)

// ErrNoProcess is returned when a BPMN document contains no <process>
// element at all.
var ErrNoProcess = errors.New("Nenhum processo encontrado no BPMN.")

// Load parses a full BPMN XML byte buffer into a Definitions: every
// process (fully collected, link-repaired, lane-resolved), every
// collaboration participant and message flow, and the artifact
// attachments shared across all processes.
func Load(data []byte) (*Definitions, error) {
	root, err := parseXML(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing BPMN XML")
	}

	processElems := root.childrenLocal("process")
	if len(processElems) == 0 {
		return nil, ErrNoProcess
	}

	participants, messageFlows := collectCollaboration(root)

	defs := &Definitions{
		Participants:      participants,
		MessageFlows:      messageFlows,
		NodeLane:          make(map[string]string),
		ArtifactsByNode:   make(map[string][]Artifact),
		OrphanAnnotations: nil,
		NodeProcess:       make(map[string]string),
	}

	allNodeIDs := make(map[string]bool)
	for _, procElem := range processElems {
		proc := collectElements(procElem)
		defs.Processes = append(defs.Processes, proc)
		for id := range proc.Nodes {
			allNodeIDs[id] = true
			defs.NodeProcess[id] = proc.ID
		}
	}

	for i, procElem := range processElems {
		proc := defs.Processes[i]
		nodeLaneExplicit, laneName := collectLanes(procElem)
		laneIDs := make(map[string]bool, len(laneName))
		for id := range laneName {
			laneIDs[id] = true
		}
		nodeIDs := make(map[string]bool, len(proc.Nodes))
		for id := range proc.Nodes {
			nodeIDs[id] = true
		}
		nodeBounds, laneBounds := collectDIBounds(root, nodeIDs, laneIDs)
		resolved := inferLaneByDI(nodeLaneExplicit, laneName, nodeBounds, laneBounds)
		for id, name := range resolved {
			defs.NodeLane[id] = name
		}
	}

	byNode, orphans := collectArtifacts(root, allNodeIDs)
	defs.ArtifactsByNode = byNode
	defs.OrphanAnnotations = orphans

	return defs, nil
}

// PickMainProcess returns the first process containing at least one start
// event (document order), or the first process if none does. Callers
// that need every process (e.g. to render a whole collaboration) should
// use Definitions.Processes directly instead.
func PickMainProcess(defs *Definitions) *Process {
	for _, p := range defs.Processes {
		if len(p.StartEvents) > 0 {
			return p
		}
	}
	if len(defs.Processes) > 0 {
		return defs.Processes[0]
	}
	return nil
}
