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
	"crypto"
	_ "crypto/sha256"
	"fmt"

	"github.com/google/uuid"
)

// linkNamespace seeds the UUIDv5 hash (uuid.NewHash over SHA-256) used to
// mint synthetic sequence-flow ids during graph repair, deriving a stable
// id from the BPMN element ids it connects.
const linkNamespace = "2f6e9b1a-0e36-4dc0-8c7e-5a2b0e2f6d21"

var linkNamespaceUUID = uuid.MustParse(linkNamespace)

// syntheticFlowID mints a deterministic, visibly-synthetic flow id: same
// (kind, a, b) always yields the same id, so repeated renders of the same
// document are byte-identical, while the "_" prefix and kind tag make the
// id unmistakably not an authored one.
func syntheticFlowID(kind, a, b string) string {
	h := uuid.NewHash(crypto.SHA256.New(), linkNamespaceUUID, []byte(kind+"|"+a+"|"+b), 5)
	return fmt.Sprintf("_%s_%s", kind, h.String())
}

func linkLabel(name string) string {
	if name == "" {
		return "Link"
	}
	return fmt.Sprintf("Link: %s", name)
}

// repairLinks synthesises sequence flows for matched link-event pairs:
// orphan-catch splicing first, then dead-throw wiring.
// Both passes only touch groups with at least one catch and one throw.
func repairLinks(proc *Process, linkByName map[string]*linkGroup) {
	for name, g := range linkByName {
		if len(g.catch) == 0 || len(g.throw) == 0 {
			continue
		}
		spliceOrphanCatches(proc, name, g)
	}
	for name, g := range linkByName {
		if len(g.catch) == 0 || len(g.throw) == 0 {
			continue
		}
		wireDeadThrows(proc, name, g)
	}
}

// spliceOrphanCatches handles a catch with no incoming and no outgoing: it
// is spliced into the predecessor chain of the first same-named throw's
// first successor, so the catch renders immediately before that successor.
// Exactly one throw (the first with a non-empty outgoing) is used per
// catch; this asymmetry with wireDeadThrows' fan-out is intentional and
// load-bearing.
func spliceOrphanCatches(proc *Process, name string, g *linkGroup) {
	for _, cid := range g.catch {
		if len(proc.Incoming[cid]) > 0 || len(proc.Outgoing[cid]) > 0 {
			continue
		}
		for _, tid := range g.throw {
			firstOut := proc.Outgoing[tid]
			if len(firstOut) == 0 {
				continue
			}
			tgt := proc.Flows[firstOut[0]].Target

			// Redirect every edge currently targeting tgt to target the catch.
			for _, incID := range append([]string(nil), proc.Incoming[tgt]...) {
				proc.Flows[incID].Target = cid
				proc.Incoming[cid] = append(proc.Incoming[cid], incID)
			}
			proc.Incoming[tgt] = nil

			alreadyLinked := false
			for _, outID := range proc.Outgoing[cid] {
				if proc.Flows[outID].Target == tgt {
					alreadyLinked = true
					break
				}
			}
			if !alreadyLinked {
				flowID := syntheticFlowID("linkcatch", cid, tgt)
				proc.Flows[flowID] = &SequenceFlow{
					ID:        flowID,
					Label:     linkLabel(name),
					Source:    cid,
					Target:    tgt,
					Synthetic: true,
				}
				proc.Outgoing[cid] = append(proc.Outgoing[cid], flowID)
				proc.Incoming[tgt] = append(proc.Incoming[tgt], flowID)
			}
			break
		}
	}
}

// wireDeadThrows handles a throw with no outgoing: it fans a synthetic
// flow out to every matching catch (not just the first), unlike
// spliceOrphanCatches above.
func wireDeadThrows(proc *Process, name string, g *linkGroup) {
	for _, tid := range g.throw {
		if len(proc.Outgoing[tid]) > 0 {
			continue
		}
		for _, cid := range g.catch {
			flowID := syntheticFlowID("link", tid, cid)
			proc.Flows[flowID] = &SequenceFlow{
				ID:        flowID,
				Label:     linkLabel(name),
				Source:    tid,
				Target:    cid,
				Synthetic: true,
			}
			proc.Outgoing[tid] = append(proc.Outgoing[tid], flowID)
			proc.Incoming[cid] = append(proc.Incoming[cid], flowID)
		}
	}
}
