/*
 * Copyright (c) 2019 OysterPack, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package ulids provides ULID generation for error instances and log events.
package ulids

import (
	"crypto/rand"
	"sync"

	"github.com/oklog/ulid"
)

// MonotonicGenerator returns a function that generates ULID(s) in strictly increasing order.
//   - is safe for concurrent use
//   - panics if a ULID fails to be generated
//
// Use it to stamp error instances and log events so they sort in creation order.
func MonotonicGenerator() func() ulid.ULID {
	var m sync.Mutex
	entropy := ulid.Monotonic(rand.Reader, 0)

	return func() (uid ulid.ULID) {
		m.Lock()
		uid = ulid.MustNew(ulid.Now(), entropy)
		m.Unlock()
		return
	}
}

// MustNew generates a new crypto/rand based ULID.
//   - ~5x slower than ULIDs from a MonotonicGenerator
//   - panics if a ULID fails to be generated
func MustNew() ulid.ULID {
	return ulid.MustNew(ulid.Now(), rand.Reader)
}
