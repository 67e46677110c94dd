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
	"encoding/xml"
	"strings"
)

// Namespace URIs for the three BPMN XML namespaces this renderer understands.
const (
	NamespaceModel = "http://www.omg.org/spec/BPMN/20100524/MODEL"
	NamespaceDI    = "http://www.omg.org/spec/BPMN/20100524/DI"
	NamespaceDC    = "http://www.omg.org/spec/DD/20100524/DC"
)

// node is a namespace-aware generic XML element. BPMN has too many
// overlapping element families (task variants, event variants, gateway
// variants, DI shapes nested arbitrarily deep) to bind with one fixed
// struct of xml tags; instead every element unmarshals into this same
// shape and callers walk it looking for the local names and attributes
// they care about.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	CharData string     `xml:",chardata"`
	Children []*node    `xml:",any"`
}

// parseXML unmarshals a full BPMN document into its root node.
func parseXML(data []byte) (*node, error) {
	root := new(node)
	if err := xml.Unmarshal(data, root); err != nil {
		return nil, err
	}
	return root, nil
}

// attr returns the value of the attribute with the given local name,
// ignoring its namespace, or "" if absent.
func (n *node) attr(local string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// text returns the element's trimmed character data.
func (n *node) text() string {
	return strings.TrimSpace(n.CharData)
}

// childrenLocal returns the direct children whose local name matches,
// in document order.
func (n *node) childrenLocal(local string) []*node {
	var out []*node
	for _, c := range n.Children {
		if c.XMLName.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// childLocal returns the first direct child matching local, or nil.
func (n *node) childLocal(local string) *node {
	for _, c := range n.Children {
		if c.XMLName.Local == local {
			return c
		}
	}
	return nil
}

// findAll performs a depth-first, document-order search for every
// descendant (not including n itself) whose local name matches. This
// covers DI shapes, annotations, and associations that can appear nested
// arbitrarily deep under process/subProcess/diagram elements.
func (n *node) findAll(local string) []*node {
	var out []*node
	var walk func(*node)
	walk = func(cur *node) {
		for _, c := range cur.Children {
			if c.XMLName.Local == local {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}
