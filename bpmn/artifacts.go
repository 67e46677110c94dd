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

// artifactRef is an artifact keyed by its own element id, carrying its
// kind and display text, before attachment to any node.
type artifactRef struct {
	kind ArtifactKind
	text string
}

// collectArtifacts builds the three disjoint artifact maps (annotations,
// documents, systems), merges them, then walks every association element
// in the document attaching each artifact to its owning node. It returns
// the per-node attachment map plus every annotation that never got
// attached.
func collectArtifacts(root *node, nodeIDs map[string]bool) (byNode map[string][]Artifact, orphanAnnotations []Artifact) {
	artifacts := make(map[string]artifactRef)
	annotationIDs := make([]string, 0)

	for _, ta := range root.findAll("textAnnotation") {
		id := ta.attr("id")
		textEl := ta.childLocal("text")
		if textEl == nil {
			continue
		}
		val := textEl.text()
		if val == "" {
			continue
		}
		artifacts[id] = artifactRef{ArtifactAnnotation, val}
		annotationIDs = append(annotationIDs, id)
	}

	dataObjectDefs := make(map[string]string)
	for _, dobj := range root.findAll("dataObject") {
		dataObjectDefs[dobj.attr("id")] = dobj.attr("name")
	}
	dataStoreDefs := make(map[string]string)
	for _, ds := range root.findAll("dataStore") {
		dataStoreDefs[ds.attr("id")] = ds.attr("name")
	}

	referencedObjects := make(map[string]bool)
	for _, dobj := range root.findAll("dataObjectReference") {
		id := dobj.attr("id")
		ref := dobj.attr("dataObjectRef")
		referencedObjects[ref] = true
		name := dobj.attr("name")
		if name == "" {
			name = dataObjectDefs[ref]
		}
		if name == "" {
			name = id
		}
		artifacts[id] = artifactRef{ArtifactDocument, name}
	}
	// Bare dataObject elements not referenced by a dataObjectReference are
	// documents in their own right.
	for _, dobj := range root.findAll("dataObject") {
		id := dobj.attr("id")
		if referencedObjects[id] {
			continue
		}
		name := dobj.attr("name")
		if name == "" {
			name = id
		}
		artifacts[id] = artifactRef{ArtifactDocument, name}
	}

	for _, dstore := range root.findAll("dataStoreReference") {
		id := dstore.attr("id")
		ref := dstore.attr("dataStoreRef")
		name := dstore.attr("name")
		if name == "" {
			name = dataStoreDefs[ref]
		}
		if name == "" {
			name = id
		}
		artifacts[id] = artifactRef{ArtifactSystem, name}
	}

	byNode = make(map[string][]Artifact)
	attachedNotes := make(map[string]bool)

	attach := func(src, tgt string) {
		if a, ok := artifacts[src]; ok && nodeIDs[tgt] {
			byNode[tgt] = append(byNode[tgt], Artifact{a.kind, a.text})
			if a.kind == ArtifactAnnotation {
				attachedNotes[src] = true
			}
		}
		if a, ok := artifacts[tgt]; ok && nodeIDs[src] {
			byNode[src] = append(byNode[src], Artifact{a.kind, a.text})
			if a.kind == ArtifactAnnotation {
				attachedNotes[tgt] = true
			}
		}
	}

	for _, assoc := range root.findAll("association") {
		attach(assoc.attr("sourceRef"), assoc.attr("targetRef"))
	}
	for _, dia := range root.findAll("dataInputAssociation") {
		tgt := childText(dia, "targetRef")
		for _, srcEl := range dia.childrenLocal("sourceRef") {
			attach(srcEl.text(), tgt)
		}
	}
	for _, doa := range root.findAll("dataOutputAssociation") {
		tgt := childText(doa, "targetRef")
		for _, srcEl := range doa.childrenLocal("sourceRef") {
			attach(srcEl.text(), tgt)
		}
	}

	for _, id := range annotationIDs {
		if !attachedNotes[id] {
			orphanAnnotations = append(orphanAnnotations, Artifact{ArtifactAnnotation, artifacts[id].text})
		}
	}

	return byNode, orphanAnnotations
}

func childText(n *node, local string) string {
	c := n.childLocal(local)
	if c == nil {
		return ""
	}
	return c.text()
}
