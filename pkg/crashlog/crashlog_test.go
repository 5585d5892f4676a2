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

package crashlog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oysterpack/guasto/pkg/crashlog"
	"github.com/oysterpack/guasto/pkg/eventlog"
	"github.com/oysterpack/guasto/pkg/logtest"
)

// openTestLog opens a crash log in a temp dir with captured diagnostics and an exit
// seam that fails the test, i.e., the test does not expect the process to die.
func openTestLog(t *testing.T) (*crashlog.File, *logtest.SyncLog) {
	t.Helper()
	logger, log := logtest.NewLogger()
	f, err := crashlog.Open(
		filepath.Join(t.TempDir(), "event.log"),
		crashlog.WithLogger(logger),
		crashlog.WithExit(func(code int) {
			t.Fatalf("*** the process would have exited: code %d", code)
		}),
	)
	if err != nil {
		t.Fatalf("*** failed to open the crash log: %v", err)
	}
	return f, log
}

func fileLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("*** failed to read the crash log file: %v", err)
	}
	content := string(data)
	if !strings.HasSuffix(content, "\n") {
		t.Fatalf("*** every crash log entry should be newline terminated: %q", content)
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

func diagnostics(t *testing.T, log *logtest.SyncLog, name eventlog.Event) []logtest.LogEvent {
	t.Helper()
	events, err := log.Events()
	if err != nil {
		t.Fatalf("*** failed to parse diagnostic events: %v", err)
	}
	var named []logtest.LogEvent
	for _, event := range events {
		if event.Event == name.String() {
			named = append(named, event)
		}
	}
	return named
}

func TestOpen(t *testing.T) {
	t.Parallel()

	// When a crash log is opened on a file that does not exist
	f, log := openTestLog(t)

	// Then the file is created holding exactly the sentinel entry
	lines := fileLines(t, f.Path())
	if len(lines) != 1 || lines[0] != "file created" {
		t.Errorf("*** a new crash log should hold exactly the sentinel entry: %q", lines)
	}

	// And a FileCreated diagnostic is emitted
	created := diagnostics(t, log, crashlog.FileCreated)
	switch {
	case len(created) != 1:
		t.Fatalf("*** exactly one FileCreated event should have been emitted: %d", len(created))
	case created[0].Component != "crashlog":
		t.Errorf("*** component did not match: %q", created[0].Component)
	case created[0].Data["path"] != f.Path():
		t.Errorf("*** path did not match: %q", created[0].Data["path"])
	case created[0].EventID == "":
		t.Error("*** diagnostic events should be stamped with an event ULID")
	}
}

func TestOpen_ExistingFile(t *testing.T) {
	t.Parallel()

	// Given a crash log file that already exists
	path := filepath.Join(t.TempDir(), "event.log")
	if err := os.WriteFile(path, []byte("previous crash\n"), 0644); err != nil {
		t.Fatal(err)
	}

	logger, log := logtest.NewLogger()
	f, err := crashlog.Open(path, crashlog.WithLogger(logger))
	if err != nil {
		t.Fatalf("*** failed to open the crash log: %v", err)
	}

	// Then no sentinel is written
	lines := fileLines(t, path)
	if len(lines) != 1 || lines[0] != "previous crash" {
		t.Errorf("*** opening an existing file should not write to it: %q", lines)
	}
	if created := diagnostics(t, log, crashlog.FileCreated); len(created) != 0 {
		t.Errorf("*** no FileCreated event should have been emitted: %d", len(created))
	}

	// And new entries append after the existing content
	crashlog.Log(f, "next crash")
	lines = fileLines(t, path)
	if len(lines) != 2 || lines[1] != "next crash" {
		t.Errorf("*** the entry should append after the existing content: %q", lines)
	}
}

func TestOpen_DefaultPath(t *testing.T) {
	// no t.Parallel - the test changes the working directory
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	}()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	logger, _ := logtest.NewLogger()
	f, err := crashlog.Open("", crashlog.WithLogger(logger))
	if err != nil {
		t.Fatalf("*** failed to open the crash log: %v", err)
	}
	if f.Path() != crashlog.DefaultPath {
		t.Errorf("*** an empty path should select the default: %q", f.Path())
	}
	if _, err := os.Stat(crashlog.DefaultPath); err != nil {
		t.Errorf("*** event.log should have been created: %v", err)
	}
}

func TestOpen_Fails(t *testing.T) {
	t.Parallel()

	// Given a path whose directory does not exist
	path := filepath.Join(t.TempDir(), "missing", "event.log")

	// And a strategy that continues instead of exiting
	var failure error
	logger, log := logtest.NewLogger()
	f, err := crashlog.Open(path,
		crashlog.WithLogger(logger),
		crashlog.WithOnFatal(func(err error) {
			failure = err
		}),
	)

	switch {
	case f != nil:
		t.Error("*** no handle should be returned when the open fails")
	case err == nil:
		t.Error("*** the open failure should propagate when the strategy continues")
	case failure != err:
		t.Error("*** the strategy should have been handed the open failure")
	}

	// And a FatalFailure diagnostic is emitted
	fatal := diagnostics(t, log, crashlog.FatalFailure)
	switch {
	case len(fatal) != 1:
		t.Fatalf("*** exactly one FatalFailure event should have been emitted: %d", len(fatal))
	case fatal[0].Level != "error":
		t.Errorf("*** level did not match: %q", fatal[0].Level)
	case fatal[0].ErrorMessage == "":
		t.Error("*** the I/O failure should be on the event")
	case fatal[0].Data["path"] != path:
		t.Errorf("*** path did not match: %q", fatal[0].Data["path"])
	case fatal[0].Data["event"] != "":
		t.Errorf("*** no event was being logged: %q", fatal[0].Data["event"])
	case len(fatal[0].Stack) == 0:
		t.Error("*** the failure stack should be on the event")
	}
}

func TestFile_Append(t *testing.T) {
	t.Parallel()

	f, log := openTestLog(t)

	// Append is the propagating primitive - no escalation on success either
	if err := f.Append("raw entry"); err != nil {
		t.Fatalf("*** append failed: %v", err)
	}
	lines := fileLines(t, f.Path())
	if len(lines) != 2 || lines[1] != "raw entry" {
		t.Errorf("*** the entry should follow the sentinel: %q", lines)
	}

	entries := diagnostics(t, log, crashlog.EntryLogged)
	switch {
	case len(entries) != 1:
		t.Fatalf("*** exactly one EntryLogged event should have been emitted: %d", len(entries))
	case entries[0].Level != "debug":
		t.Errorf("*** entries should be logged at debug level: %q", entries[0].Level)
	case entries[0].Data["entry"] != "raw entry":
		t.Errorf("*** entry text did not match: %q", entries[0].Data["entry"])
	case entries[0].EventID == "":
		t.Error("*** diagnostic events should be stamped with an event ULID")
	}
}

func TestFile_Close(t *testing.T) {
	t.Parallel()

	f, _ := openTestLog(t)
	if err := f.Close(); err != nil {
		t.Fatalf("*** close failed: %v", err)
	}
	// closing again is a no-op
	if err := f.Close(); err != nil {
		t.Fatalf("*** closing a closed handle failed: %v", err)
	}

	// the handle reopens on the next append, without a second sentinel
	crashlog.Log(f, "after close")
	lines := fileLines(t, f.Path())
	if len(lines) != 2 || lines[0] != "file created" || lines[1] != "after close" {
		t.Errorf("*** the reopened log should append after the sentinel: %q", lines)
	}
}

func TestFile_Remove(t *testing.T) {
	t.Parallel()

	f, log := openTestLog(t)
	crashlog.Log(f, "first failure")

	// When the crash log is removed
	if err := f.Remove(); err != nil {
		t.Fatalf("*** remove failed: %v", err)
	}
	if _, err := os.Stat(f.Path()); !os.IsNotExist(err) {
		t.Errorf("*** the file should be gone: %v", err)
	}
	if removed := diagnostics(t, log, crashlog.FileRemoved); len(removed) != 1 {
		t.Errorf("*** exactly one FileRemoved event should have been emitted: %d", len(removed))
	}

	// And removing a file that does not exist is a no-op
	if err := f.Remove(); err != nil {
		t.Errorf("*** removing a missing file should be a no-op: %v", err)
	}

	// And the next entry recreates the file - sentinel first
	crashlog.Log(f, "second failure")
	lines := fileLines(t, f.Path())
	switch {
	case len(lines) != 2:
		t.Fatalf("*** the recreated log should hold the sentinel plus the new entry: %q", lines)
	case lines[0] != "file created":
		t.Errorf("*** the sentinel should be recreated first: %q", lines[0])
	case lines[1] != "second failure":
		t.Errorf("*** the new entry should follow the sentinel: %q", lines[1])
	}
	if created := diagnostics(t, log, crashlog.FileCreated); len(created) != 2 {
		t.Errorf("*** the recreate should emit a second FileCreated event: %d", len(created))
	}
}
