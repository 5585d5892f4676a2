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

package crashlog

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
	"github.com/oysterpack/guasto/pkg/dynerr"
)

// Log appends the event's display text to the crash log and returns the event unchanged,
// so the failure site can log inline without giving up the value:
//
//	return crashlog.Log(f, err)
//
// Failing to append is fatal: under the default strategy the process exits, and the
// FatalFailure diagnostic carries both the I/O failure and the event that was being
// logged. Under a strategy that continues, the event is returned with the entry unwritten.
func Log[E any](f *File, event E) E {
	text := fmt.Sprint(event)
	if err := f.Append(text); err != nil {
		f.fatal(err, text)
	}
	return event
}

// Abort logs the event and terminates the process with the event text as the crash
// message. Abort never returns. The configured fatal strategy does not apply here - it
// governs crash log I/O failures, not the crash itself.
func Abort[E any](f *File, event E) {
	text := fmt.Sprint(event)
	if err := f.Append(text); err != nil {
		f.fatal(err, text)
	}
	f.abort(nil, text)
}

// Check returns the result's value on success, without touching the crash log.
// On failure it logs the error's display text and aborts, i.e., Abort applied to the
// error carrier.
func Check[T any](f *File, r dynerr.Result[T]) T {
	value, err := r.Get()
	if err != nil {
		Abort(f, err)
	}
	return value
}

// TrapPanic is meant to be deferred in main. It captures a panic, appends the panic
// message to the crash log, reports an Aborted event carrying the panic stack trace,
// and terminates the process. When no panic is in flight it does nothing.
func (f *File) TrapPanic() {
	r := recover()
	if r == nil {
		return
	}
	panicErr := goerrors.Wrap(r, 2)
	text := fmt.Sprintf("panic: %v", r)
	if err := f.Append(text); err != nil {
		f.fatal(err, text)
	}
	f.abort(stackDiag(panicErr.ErrorStack()), text)
}
