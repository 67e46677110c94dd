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
	"strings"

	"github.com/Darkgator/BPMN-to-TEXT/bpmn"
)

const unnamed = "(sem nome)"

// describeNode renders the header description for a node, before any
// numbering prefix.
func describeNode(n *bpmn.Node) string {
	if n.Category == bpmn.CategoryTask {
		display := n.Name
		if display == "" {
			display = unnamed
		}
		return fmt.Sprintf("Atividade: %s", display)
	}

	if n.Category == bpmn.CategoryGateway && n.Name == "" {
		return n.Label
	}

	display := n.Name
	if display == "" {
		display = unnamed
	}

	if n.Category == bpmn.CategoryEvent {
		flavor := n.EventFlavor
		var catchThrow string
		switch n.EventPosition {
		case bpmn.EventIntermediateCatch:
			catchThrow = "captura"
		case bpmn.EventIntermediateThrow:
			catchThrow = "disparo"
		}
		var typeLabel string
		if flavor == "link" && catchThrow != "" {
			typeLabel = fmt.Sprintf("Evento intermediário (link, %s)", catchThrow)
		} else {
			var parts []string
			if flavor != "" {
				parts = append(parts, flavor)
			}
			if catchThrow != "" {
				parts = append(parts, catchThrow)
			}
			if len(parts) > 0 {
				typeLabel = fmt.Sprintf("%s (%s)", n.Label, strings.Join(parts, ", "))
			} else {
				typeLabel = n.Label
			}
		}
		return fmt.Sprintf("%s: %s", typeLabel, display)
	}

	return fmt.Sprintf("%s: %s", n.Label, display)
}
