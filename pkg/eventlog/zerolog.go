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

package eventlog

import (
	"io"
	"time"

	"github.com/oysterpack/guasto/pkg/ulids"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Applies standard zerolog initialization.
//
// The following global settings are applied for performance reasons:
//   - the standard logger field names are shortened
//   - Unix time format is used - seconds granularity is sufficient for log events
//   - time.Duration fields are rendered as int instead of float
//
// The error stack marshaller is set to understand github.com/pkg/errors stacks.
func init() {
	zerolog.TimestampFieldName = string(Timestamp)
	zerolog.LevelFieldName = string(Level)
	zerolog.MessageFieldName = string(Message)
	zerolog.ErrorFieldName = string(Error)
	zerolog.ErrorStackFieldName = string(Stack)

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// Field is used to define log event fields used for structured logging.
type Field string

func (f Field) String() string {
	return string(f)
}

// standard log event field names
const (
	// Timestamp specifies when the log event occurred in Unix time.
	Timestamp = Field("t")
	// Level specifies the log level.
	Level = Field("l")
	// Message specifies the log message.
	Message = Field("m")
	// Error specifies the error message.
	Error = Field("e")
	// Stack is used to log an error stack trace.
	Stack = Field("s")

	// Name is used to specify the event name. All log events should specify the event name.
	Name = Field("n")
	// Component specifies which component logged the event.
	Component = Field("c")
	// ULID stores the event instance ULID.
	ULID = Field("z")
	// Tags is used to tag log events, e.g., to group related events across components.
	Tags = Field("g")
	// Data is used to group event specific data fields.
	Data = Field("d")
)

var newEventID = ulids.MonotonicGenerator()

// ForComponent returns a new logger with the component field 'c' set to the specified value.
func ForComponent(logger *zerolog.Logger, name string) *zerolog.Logger {
	l := logger.With().Str(string(Component), name).Logger()
	return &l
}

// WithEventULID augments each log event with an event ULID.
//
// NOTE: the ULID uses a monotonic generator - its timestamp portion is simply used to construct
// the ULID and does not represent when the ULID was created.
func WithEventULID(logger zerolog.Logger) zerolog.Logger {
	return logger.Hook(zerolog.HookFunc(func(e *zerolog.Event, _ zerolog.Level, _ string) {
		e.Str(string(ULID), newEventID().String())
	}))
}

// New constructs a new zerolog.Logger that writes to w and is configured to add the following
// fields to every log event:
//   - timestamp in Unix time format
//   - event ULID
//
// Example log message:
//
//	{"z":"01DFBGCFD9WD29SGRJPK8KZKQS","t":1562680638,"m":"log file created"}
func New(w io.Writer) zerolog.Logger {
	return WithEventULID(zerolog.New(w)).
		With().
		Timestamp().
		Logger()
}
