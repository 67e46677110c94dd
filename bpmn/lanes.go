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
	"sort"
	"strconv"
)

const (
	unnamedLane     = "(sem ator)"
	UnresolvedActor  = "(ator nao identificado)"
	ambiguousSuffix = " (ambiguo)"
)

// collectLanes maps node id -> lane display name via explicit flowNodeRef
// membership, and returns the lane display names keyed by lane id for the
// later DI inference pass.
func collectLanes(procElem *node) (nodeLane map[string]string, laneName map[string]string) {
	nodeLane = make(map[string]string)
	laneName = make(map[string]string)

	for _, lane := range procElem.findAll("lane") {
		lid := lane.attr("id")
		name := lane.attr("name")
		if name == "" {
			name = unnamedLane
		}
		if lid != "" {
			laneName[lid] = name
		}
		for _, ref := range lane.childrenLocal("flowNodeRef") {
			if id := ref.text(); id != "" {
				nodeLane[id] = name
			}
		}
	}
	return nodeLane, laneName
}

// diBounds is the document-order-preserving result of a BPMNShape scan:
// rectangles keyed by element id, plus the order element ids were first
// encountered in, so downstream tie-breaking can stay deterministic
// without relying on Go's randomized map iteration.
type diBounds struct {
	rects map[string]rect
	order []string
}

// collectDIBounds gathers every BPMNShape's Bounds rectangle from the
// whole document, split into node-shape bounds and lane-shape bounds
// according to the id sets passed in.
func collectDIBounds(root *node, nodeIDs, laneIDs map[string]bool) (nodeBounds, laneBounds diBounds) {
	nodeBounds = diBounds{rects: make(map[string]rect)}
	laneBounds = diBounds{rects: make(map[string]rect)}

	for _, shape := range root.findAll("BPMNShape") {
		elemID := shape.attr("bpmnElement")
		bounds := shape.childLocal("Bounds")
		if elemID == "" || bounds == nil {
			continue
		}
		r := rect{
			X: parseFloatAttr(bounds, "x"),
			Y: parseFloatAttr(bounds, "y"),
			W: parseFloatAttr(bounds, "width"),
			H: parseFloatAttr(bounds, "height"),
		}
		if nodeIDs[elemID] {
			if _, seen := nodeBounds.rects[elemID]; !seen {
				nodeBounds.order = append(nodeBounds.order, elemID)
			}
			nodeBounds.rects[elemID] = r
		}
		if laneIDs[elemID] {
			if _, seen := laneBounds.rects[elemID]; !seen {
				laneBounds.order = append(laneBounds.order, elemID)
			}
			laneBounds.rects[elemID] = r
		}
	}
	return nodeBounds, laneBounds
}

func parseFloatAttr(n *node, name string) float64 {
	v := n.attr(name)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// overlapCandidate is one lane's intersection-area ranking entry; docIdx
// records the lane's position in document order. The comparators do not
// read it: candidates are appended in document order and sorted stably,
// which keeps ties between otherwise-equal candidates in that order.
type overlapCandidate struct {
	area     float64
	laneArea float64
	docIdx   int
	laneID   string
}

// inferLaneByDI performs geometric lane inference for nodes not already
// mapped by flowNodeRef: rank lanes by descending shape-intersection area
// (ties broken by ascending lane area), falling back to point-containment
// of the node's centre when no lane intersects at all.
func inferLaneByDI(nodeLane, laneName map[string]string, nodeBounds, laneBounds diBounds) map[string]string {
	result := make(map[string]string, len(nodeLane))
	for k, v := range nodeLane {
		result[k] = v
	}

	laneIdx := make(map[string]int, len(laneBounds.order))
	for i, id := range laneBounds.order {
		laneIdx[id] = i
	}

	for _, nodeID := range nodeBounds.order {
		if _, already := result[nodeID]; already {
			continue
		}
		r := nodeBounds.rects[nodeID]

		var overlaps []overlapCandidate
		for _, laneID := range laneBounds.order {
			lrect := laneBounds.rects[laneID]
			inter := rectIntersectionArea(r, lrect)
			if inter > 0 {
				overlaps = append(overlaps, overlapCandidate{inter, lrect.area(), laneIdx[laneID], laneID})
			}
		}
		if len(overlaps) > 0 {
			sort.SliceStable(overlaps, func(i, j int) bool {
				if overlaps[i].area != overlaps[j].area {
					return overlaps[i].area > overlaps[j].area
				}
				return overlaps[i].laneArea < overlaps[j].laneArea
			})
			top := overlaps[0]
			tied := 1
			for _, o := range overlaps[1:] {
				if o.area == top.area {
					tied++
				}
			}
			name := laneName[top.laneID]
			if name == "" {
				name = UnresolvedActor
			}
			if tied > 1 {
				name += ambiguousSuffix
			}
			result[nodeID] = name
			continue
		}

		cx, cy := r.centre()
		var candidates []overlapCandidate
		for _, laneID := range laneBounds.order {
			lrect := laneBounds.rects[laneID]
			if rectContains(lrect, cx, cy) {
				candidates = append(candidates, overlapCandidate{0, lrect.area(), laneIdx[laneID], laneID})
			}
		}
		if len(candidates) > 0 {
			sort.SliceStable(candidates, func(i, j int) bool {
				return candidates[i].laneArea < candidates[j].laneArea
			})
			chosen := candidates[0].laneID
			name := laneName[chosen]
			if name == "" {
				name = UnresolvedActor
			}
			if len(candidates) > 1 {
				name += ambiguousSuffix
			}
			result[nodeID] = name
		}
	}
	return result
}
