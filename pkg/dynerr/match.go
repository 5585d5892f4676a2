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

// Case is an entry in the ordered dispatch table used by Match.
// Cases are declared via On.
type Case[T any] interface {
	eval(cause error) (T, bool)
}

type caseFunc[T any] func(cause error) (T, bool)

func (f caseFunc[T]) eval(cause error) (T, bool) {
	return f(cause)
}

// Arm pairs a guard with a handler for an error that was recovered as an E.
type Arm[E error, T any] struct {
	// When guards the arm - a nil When always passes.
	When func(e E) bool
	// Then handles the error. It must not be nil.
	Then func(e E) T
}

// On declares a dispatch case for the error type E.
// The case matches when the carrier's cause is recovered as an E, using the same type test
// as As. On a match the arms are tried top to bottom and the first arm whose guard passes
// handles the error. If no arm passes, otherwise handles it. Either way, dispatch stops at
// the first case whose type matches.
//   - panics if otherwise is nil
func On[E error, T any](arms []Arm[E, T], otherwise func(e E) T) Case[T] {
	if otherwise == nil {
		panic("dynerr.On: otherwise must not be nil")
	}
	return caseFunc[T](func(cause error) (T, bool) {
		e, ok := cause.(E)
		if !ok {
			var zero T
			return zero, false
		}
		for _, arm := range arms {
			if arm.When == nil || arm.When(e) {
				return arm.Then(e), true
			}
		}
		return otherwise(e), true
	})
}

// Match dispatches the error carrier to the first case that matches its concrete cause.
// Cases are tried strictly in declaration order. If the same type is declared by more than
// one case, the first one wins. If no case matches, otherwise handles the carrier.
// A nil carrier goes straight to otherwise.
//   - panics if otherwise is nil
func Match[T any](e *Error, cases []Case[T], otherwise func(e *Error) T) T {
	if otherwise == nil {
		panic("dynerr.Match: otherwise must not be nil")
	}
	if e == nil {
		return otherwise(nil)
	}
	for _, c := range cases {
		if v, ok := c.eval(e.cause); ok {
			return v
		}
	}
	return otherwise(e)
}
