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
	"os"

	"github.com/oysterpack/guasto/pkg/eventlog"
	"github.com/rs/zerolog"
)

// DefaultPath is the crash log file used when Open is given an empty path.
const DefaultPath = "event.log"

// sentinel is the first entry written when the file is created
const sentinel = "file created"

const component = "crashlog"

// Diagnostic events emitted by the crash log about itself.
const (
	// FileCreated signals the crash log file did not exist and was created.
	FileCreated eventlog.Event = "crash_log_created"
	// EntryLogged signals an entry was appended to the crash log file.
	EntryLogged eventlog.Event = "crash_log_entry"
	// FileRemoved signals the crash log file was deleted.
	FileRemoved eventlog.Event = "crash_log_removed"
	// Aborted signals the process is terminating with the logged event as the crash message.
	Aborted eventlog.Event = "crash_log_abort"
	// FatalFailure signals the crash log file itself could not be created, written, or deleted.
	FatalFailure eventlog.Event = "crash_log_fatal"
)

// File is an explicit handle on one crash log file.
// It is opened once via Open and holds the underlying file until Close or Remove,
// reopening on demand afterwards.
//
// File is not safe for concurrent use.
type File struct {
	path string
	file *os.File

	logger  *zerolog.Logger
	exit    func(code int)
	onFatal func(err error)

	logCreated eventlog.Logger
	logEntry   eventlog.Logger
	logRemoved eventlog.Logger
	logAbort   eventlog.Logger
	logFatal   eventlog.ErrorLogger
}

// Option configures a File.
type Option func(f *File)

// WithLogger sets the logger the crash log derives its diagnostic event loggers from.
// Pass a logger built via eventlog.New so diagnostic events are stamped with event ULIDs.
// Default: eventlog.New(os.Stderr).
func WithLogger(logger *zerolog.Logger) Option {
	return func(f *File) {
		f.logger = logger
	}
}

// WithOnFatal replaces the default fail fast strategy applied when the crash log file
// itself cannot be created, written, or deleted. The failure has already been reported
// via a FatalFailure event when the strategy runs. When the strategy returns, the failed
// operation propagates its error instead of terminating the process.
func WithOnFatal(strategy func(err error)) Option {
	return func(f *File) {
		f.onFatal = strategy
	}
}

// WithExit replaces os.Exit for the default fail fast strategy and for Abort.
func WithExit(exit func(code int)) Option {
	return func(f *File) {
		f.exit = exit
	}
}

// Open returns a handle on the crash log file at path, creating the file on first use.
// An empty path selects DefaultPath.
//
// Failing to open the file is fatal: under the default strategy the process exits and
// Open never returns. Under a strategy that continues, Open returns the error.
func Open(path string, opts ...Option) (*File, error) {
	if path == "" {
		path = DefaultPath
	}
	f := &File{
		path: path,
		exit: os.Exit,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		logger := eventlog.New(os.Stderr)
		f.logger = &logger
	}
	logger := eventlog.ForComponent(f.logger, component)
	f.logCreated = FileCreated.NewLogger(logger, zerolog.InfoLevel)
	f.logEntry = EntryLogged.NewLogger(logger, zerolog.DebugLevel)
	f.logRemoved = FileRemoved.NewLogger(logger, zerolog.InfoLevel)
	f.logAbort = Aborted.NewLogger(logger, zerolog.FatalLevel)
	f.logFatal = FatalFailure.NewErrorLogger(logger)

	if err := f.ensureOpen(); err != nil {
		return nil, f.fatal(err, "")
	}
	return f, nil
}

// Path returns the crash log file path.
func (f *File) Path() string {
	return f.path
}

// Append writes one entry line to the crash log, creating the file (sentinel first)
// if it does not exist. It is the propagating primitive underneath Log, Abort, and
// Check: I/O failures are returned, never escalated.
func (f *File) Append(line string) error {
	if err := f.ensureOpen(); err != nil {
		return err
	}
	if _, err := f.file.WriteString(line + "\n"); err != nil {
		return err
	}
	f.logEntry(entryDiag(line), "crash log entry appended")
	return nil
}

// Close releases the underlying file handle. The crash log stays usable: the handle
// reopens on the next append.
func (f *File) Close() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

// Remove deletes the crash log file. Removing a file that does not exist is a no-op.
// Failing to delete an existing file is fatal, like any other crash log I/O failure.
// The file is recreated (sentinel first) on the next append.
func (f *File) Remove() error {
	if f.file != nil {
		if err := f.Close(); err != nil {
			return f.fatal(err, "")
		}
	}
	err := os.Remove(f.path)
	switch {
	case err == nil:
		f.logRemoved(pathDiag(f.path), "crash log removed")
		return nil
	case os.IsNotExist(err):
		return nil
	default:
		return f.fatal(err, "")
	}
}

// ensureOpen opens the underlying file, creating it and writing the sentinel entry
// when it does not exist. Existence is derived once per open, not per log call.
// Cross process races on creation remain unaddressed.
func (f *File) ensureOpen() error {
	if f.file != nil {
		return nil
	}
	_, err := os.Stat(f.path)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	f.file = file
	if !exists {
		if _, err := file.WriteString(sentinel + "\n"); err != nil {
			return err
		}
		f.logCreated(pathDiag(f.path), "crash log created")
	}
	return nil
}

// fatal reports a crash log I/O failure via a FatalFailure event carrying both the
// failure and the event that was being logged, then applies the abort strategy.
// It only returns when the strategy chooses to continue.
func (f *File) fatal(err error, event string) error {
	f.logFatal(fatalDiag{path: f.path, event: event}, err)
	if f.onFatal != nil {
		f.onFatal(err)
		return err
	}
	f.exit(1)
	return err
}

// abort reports the crash via an Aborted event and terminates the process.
func (f *File) abort(data zerolog.LogObjectMarshaler, msg string) {
	f.logAbort(data, msg)
	f.exit(1)
	// unreachable unless the exit func was replaced and returned
	panic(msg)
}

type pathDiag string

func (p pathDiag) MarshalZerologObject(e *zerolog.Event) {
	e.Str("path", string(p))
}

type entryDiag string

func (l entryDiag) MarshalZerologObject(e *zerolog.Event) {
	e.Str("entry", string(l))
}

type stackDiag string

func (s stackDiag) MarshalZerologObject(e *zerolog.Event) {
	e.Str("stack", string(s))
}

// fatalDiag carries the context for a FatalFailure event. The event being logged when
// the I/O failure hit is included so the triggering context is never lost.
type fatalDiag struct {
	path  string
	event string
}

func (d fatalDiag) MarshalZerologObject(e *zerolog.Event) {
	e.Str("path", d.path)
	if d.event != "" {
		e.Str("event", d.event)
	}
}
