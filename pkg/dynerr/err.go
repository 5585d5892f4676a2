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

package dynerr

import (
	"github.com/oklog/ulid"
	"github.com/oysterpack/guasto/pkg/ulids"
	"github.com/rs/zerolog"
)

var (
	newInstanceID = ulids.MonotonicGenerator()
)

// Error is a type erased error carrier. It owns exactly one concrete error cause and hides
// its type, which can be recovered at runtime via As or dispatched via Match.
type Error struct {
	cause      error
	instanceID ulid.ULID
}

// Wrap erases the cause's concrete type and returns it as an error carrier.
// The carrier is assigned a unique instance ID.
//   - wrapping nil returns nil
//   - wrapping an *Error returns it as is, i.e., carriers are never nested
func Wrap(cause error) *Error {
	if cause == nil {
		return nil
	}
	if e, ok := cause.(*Error); ok {
		return e
	}
	return &Error{
		cause:      cause,
		instanceID: newInstanceID(),
	}
}

// Error implements the error interface by delegating to the cause.
func (e *Error) Error() string {
	return e.cause.Error()
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// InstanceID returns the unique error instance ID that was assigned when the cause was wrapped.
// use case: the InstanceID can be returned back to the client, which can be used to track down the specific error.
func (e *Error) InstanceID() ulid.ULID {
	return e.instanceID
}

// MarshalZerologObject logs the error instance ID and message.
func (e *Error) MarshalZerologObject(event *zerolog.Event) {
	event.
		Str("id", e.instanceID.String()).
		Str("err", e.cause.Error())
}

// As recovers the wrapped cause as an E.
// For a concrete type E the recovery succeeds iff the cause's type is exactly E.
// For an interface type E the recovery succeeds iff the cause implements E.
func As[E error](e *Error) (E, bool) {
	if e == nil {
		var zero E
		return zero, false
	}
	cause, ok := e.cause.(E)
	return cause, ok
}
