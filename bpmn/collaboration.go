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

import "strings"

// collectCollaboration reads every <collaboration>'s participants and
// message flows from the document root, in document order.
func collectCollaboration(root *node) (participants []*Participant, messageFlows []*MessageFlow) {
	for _, collab := range root.childrenLocal("collaboration") {
		for _, part := range collab.childrenLocal("participant") {
			participants = append(participants, &Participant{
				ID:         part.attr("id"),
				ProcessRef: part.attr("processRef"),
				Name:       strings.TrimSpace(part.attr("name")),
			})
		}
		for _, mf := range collab.childrenLocal("messageFlow") {
			src := mf.attr("sourceRef")
			tgt := mf.attr("targetRef")
			if src == "" || tgt == "" {
				continue
			}
			messageFlows = append(messageFlows, &MessageFlow{
				ID:     mf.attr("id"),
				Source: src,
				Target: tgt,
				Label:  strings.TrimSpace(mf.attr("name")),
			})
		}
	}
	return participants, messageFlows
}

// ParticipantNameByProcess resolves a process id to the participant name
// bound to it via processRef, or "" if no participant binds it.
func ParticipantNameByProcess(participants []*Participant, processID string) string {
	for _, p := range participants {
		if p.ProcessRef == processID {
			return p.Name
		}
	}
	return ""
}

// ParticipantNameByID resolves a participant id directly, falling back
// to the participant's own processRef-bound name when the participant
// itself has no name.
func ParticipantNameByID(participants []*Participant, id string) string {
	for _, p := range participants {
		if p.ID == id {
			if p.Name != "" {
				return p.Name
			}
			return ParticipantNameByProcess(participants, p.ProcessRef)
		}
	}
	return ""
}
