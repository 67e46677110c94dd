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

package bpmn

import (
	"strings"

	"github.com/golang/glog"
)

// linkGroup tracks the catch and throw node ids sharing one link name.
type linkGroup struct {
	catch []string
	throw []string
}

// eventDefinition scans an event element's direct children for the first
// one whose local name ends with "EventDefinition". It returns the
// flavor (the tag name with the "EventDefinition" suffix stripped) and
// that definition's name attribute (the link name, for
// linkEventDefinition).
func eventDefinition(n *node) (flavor, linkName string) {
	for _, child := range n.Children {
		tag := child.XMLName.Local
		if strings.HasSuffix(tag, "EventDefinition") {
			return strings.TrimSuffix(tag, "EventDefinition"), strings.TrimSpace(child.attr("name"))
		}
	}
	return "", ""
}

func setTaskKind(nd *Node, tag string) {
	nd.TaskKind = TaskKind(tag)
}

func setSubprocessKind(nd *Node, tag string) {
	nd.SubprocessKind = SubprocessKind(tag)
}

func setGatewayKind(nd *Node, tag string) {
	nd.GatewayKind = GatewayKind(tag)
}

func setEventPosition(nd *Node, tag string) {
	nd.EventPosition = EventPosition(tag)
}

// collectElements builds the node map, sequence-flow map, and the two
// adjacency maps for one BPMN <process> element, then applies link
// resolution and graph repair.
func collectElements(procElem *node) *Process {
	proc := &Process{
		ID:       procElem.attr("id"),
		Name:     procElem.attr("name"),
		Nodes:    make(map[string]*Node),
		Flows:    make(map[string]*SequenceFlow),
		Outgoing: make(map[string][]string),
		Incoming: make(map[string][]string),
	}

	linkByName := make(map[string]*linkGroup)
	linkGroupFor := func(name string) *linkGroup {
		g, ok := linkByName[name]
		if !ok {
			g = &linkGroup{}
			linkByName[name] = g
		}
		return g
	}

	for tag, spec := range elementTable {
		for _, elem := range procElem.childrenLocal(tag) {
			id := elem.attr("id")
			if id == "" {
				continue
			}
			nd := &Node{
				ID:       id,
				Name:     elem.attr("name"),
				Category: spec.category,
				Label:    spec.label,
			}
			switch spec.category {
			case CategoryTask:
				setTaskKind(nd, tag)
			case CategorySubprocess:
				setSubprocessKind(nd, tag)
			case CategoryGateway:
				setGatewayKind(nd, tag)
			case CategoryEvent:
				setEventPosition(nd, tag)
				flavor, linkName := eventDefinition(elem)
				nd.EventFlavor = flavor
				nd.LinkName = linkName
				if flavor == "link" && linkName != "" {
					switch EventPosition(tag) {
					case EventIntermediateCatch:
						g := linkGroupFor(linkName)
						g.catch = append(g.catch, id)
					case EventIntermediateThrow:
						g := linkGroupFor(linkName)
						g.throw = append(g.throw, id)
					}
				}
			}
			proc.Nodes[id] = nd
		}
	}

	// Mark captura/disparo only when both halves of the named link exist.
	for _, g := range linkByName {
		if len(g.catch) == 0 || len(g.throw) == 0 {
			continue
		}
		for _, cid := range g.catch {
			if nd, ok := proc.Nodes[cid]; ok {
				nd.CatchThrow = CatchThrowCatch
			}
		}
		for _, tid := range g.throw {
			if nd, ok := proc.Nodes[tid]; ok {
				nd.CatchThrow = CatchThrowThrow
			}
		}
	}

	for _, sf := range procElem.childrenLocal("sequenceFlow") {
		id := sf.attr("id")
		if id == "" {
			continue
		}
		src := sf.attr("sourceRef")
		tgt := sf.attr("targetRef")
		proc.Flows[id] = &SequenceFlow{
			ID:     id,
			Label:  strings.TrimSpace(sf.attr("name")),
			Source: src,
			Target: tgt,
		}
		proc.Outgoing[src] = append(proc.Outgoing[src], id)
		proc.Incoming[tgt] = append(proc.Incoming[tgt], id)
	}

	// Edges to missing nodes are discarded: the walker only ever follows
	// flow targets that resolve to a known node, but we drop flows whose
	// declared source or target id was never collected here too, so
	// repair never operates on a dangling reference.
	for id, sf := range proc.Flows {
		_, srcOK := proc.Nodes[sf.Source]
		_, tgtOK := proc.Nodes[sf.Target]
		if srcOK && tgtOK {
			continue
		}
		glog.Warningf("sequence flow %s references unknown node (source=%q target=%q); dropping", id, sf.Source, sf.Target)
		removeFlowID(proc.Outgoing, sf.Source, id)
		removeFlowID(proc.Incoming, sf.Target, id)
		delete(proc.Flows, id)
	}

	repairLinks(proc, linkByName)

	for _, se := range procElem.childrenLocal("startEvent") {
		if id := se.attr("id"); id != "" {
			proc.StartEvents = append(proc.StartEvents, id)
		}
	}

	return proc
}

func removeFlowID(adj map[string][]string, key, id string) {
	ids := adj[key]
	for i, v := range ids {
		if v == id {
			adj[key] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}
