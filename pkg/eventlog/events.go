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
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Event is used as an event name.
// It must be unique within the application - keep names short and stable because monitors,
// queries, and alerting tools will depend on them.
type Event string

func (e Event) String() string {
	return string(e)
}

// Logger is a function used to log events.
type Logger func(data zerolog.LogObjectMarshaler, msg string, tags ...string)

// ErrorLogger is a function used to log error events.
type ErrorLogger func(data zerolog.LogObjectMarshaler, err error, tags ...string)

// NewLogger creates a new function used to log events using a standardized structure. Having a
// standardized structure makes it possible to process log events programmatically.
//
// The event data is logged as a dictionary under the "d" field. Treat the event data structure as
// an interface - design it to be as stable as possible. Not all events need event data.
//
// Example log event:
//
//	{
//	  "l": "debug", ------------------- event level
//	  "n": "entry", ------------------- event name
//	  "c": "crashlog", ---------------- component that logged the event
//	  "d": { -------------------------- event data (optional)
//	    "id": "01DE379HHNVHQE5G6NHN2BBKAT"
//	  },
//	  "g": ["tag-a","tag-b"], --------- event tags (optional)
//	  "z": "01DE379HHNM87XT4PBHXYYBTYS",
//	  "t": 1561328928,
//	  "m": "crash log entry appended" - event short description
//	}
func (e Event) NewLogger(logger *zerolog.Logger, level zerolog.Level) Logger {
	eventLogger := named(logger, e)
	return func(data zerolog.LogObjectMarshaler, msg string, tags ...string) {
		event := eventLogger.WithLevel(level)

		if data != nil {
			dict := zerolog.Dict()
			data.MarshalZerologObject(dict)
			event.Dict(string(Data), dict)
		}

		if len(tags) > 0 {
			event.Strs(string(Tags), tags)
		}

		event.Msg(msg)
	}
}

// NewErrorLogger creates a new function used to log errors with contextual data. It uses the same
// structure as `Logger` except that the level is fixed to `error` and the error is set on the
// log event.
func (e Event) NewErrorLogger(logger *zerolog.Logger) ErrorLogger {
	eventLogger := named(logger, e)
	return func(data zerolog.LogObjectMarshaler, err error, tags ...string) {
		event := eventLogger.Error().Stack().Err(errors.WithStack(err))

		if data != nil {
			dict := zerolog.Dict()
			data.MarshalZerologObject(dict)
			event.Dict(string(Data), dict)
		}

		if len(tags) > 0 {
			event.Strs(string(Tags), tags)
		}

		event.Msg("")
	}
}

// named returns a new logger with the event name field 'n' set to the specified event.
func named(logger *zerolog.Logger, e Event) *zerolog.Logger {
	l := logger.With().Str(string(Name), e.String()).Logger()
	return &l
}
