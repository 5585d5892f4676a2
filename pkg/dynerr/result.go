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

// Result holds either a value or an Error - never both.
// The zero value is a success holding T's zero value.
type Result[T any] struct {
	value T
	err   *Error
}

// Ok returns a success Result holding the value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail returns a failure Result wrapping the cause.
// A nil cause yields a success Result holding T's zero value, mirroring Wrap.
func Fail[T any](cause error) Result[T] {
	return Result[T]{err: Wrap(cause)}
}

// FailErr returns a failure Result that adopts an already wrapped error carrier.
func FailErr[T any](e *Error) Result[T] {
	return Result[T]{err: e}
}

// Get returns the value and the error carrier. Exactly one of them is set,
// i.e., on failure the value is T's zero value.
func (r Result[T]) Get() (T, *Error) {
	return r.value, r.err
}

// Failed returns true if the Result holds an error.
func (r Result[T]) Failed() bool {
	return r.err != nil
}

// Err returns the error carrier - nil on success.
func (r Result[T]) Err() *Error {
	return r.err
}
