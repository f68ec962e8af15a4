// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package property

import (
	"cmp"

	"fillmore-labs.com/fixpoint/internal/element"
)

// KindID identifies a registered property kind.
type KindID uint16

// Key addresses the value of one property kind for one element.
type Key struct {
	Kind    KindID
	Element element.ID
}

// Compare orders keys by element, then kind.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.Element, o.Element); c != 0 {
		return c
	}

	return cmp.Compare(k.Kind, o.Kind)
}
