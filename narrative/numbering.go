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
	"strconv"
	"strings"
)

// numbering is the ordered dotted-decimal path assigned to a node during
// the DFS walk, e.g. [1, 2, 3, 1] formats as "1.2.3.1".
type numbering []int

func (n numbering) String() string {
	parts := make([]string, len(n))
	for i, v := range n {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// clone returns a copy so callers can append without aliasing the
// caller's backing array.
func (n numbering) clone() numbering {
	out := make(numbering, len(n))
	copy(out, n)
	return out
}

// withBranch returns a new numbering with a branch index and an initial
// "1" sub-step appended, e.g. [1,2] + branch 3 -> [1,2,3,1].
func (n numbering) withBranch(branchIdx int) numbering {
	out := make(numbering, 0, len(n)+2)
	out = append(out, n...)
	out = append(out, branchIdx, 1)
	return out
}

// nextStep returns a new numbering with its last component incremented,
// e.g. [1,2,3] -> [1,2,4].
func (n numbering) nextStep() numbering {
	out := n.clone()
	out[len(out)-1]++
	return out
}

// compare compares two numberings lexicographically component by
// component; a shorter prefix of an otherwise-equal sequence sorts first.
// Returns -1, 0, or 1.
func compare(a, b numbering) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	switch {
	case len(a) == len(b):
		return 0
	case len(a) < len(b):
		return -1
	default:
		return 1
	}
}
