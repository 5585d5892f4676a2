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

// Package logtest is used to support testing against captured log output.
package logtest

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/oysterpack/guasto/pkg/eventlog"
	"github.com/rs/zerolog"
)

// SyncLog is used to to provide a concurrency safe read/write log.
//
// Use Case: used when inspecting logs in unit tests that have multiple go routines writing to the log concurrently
type SyncLog struct {
	sync.Mutex
	buf *bytes.Buffer
}

func NewSyncLog() *SyncLog {
	return &SyncLog{
		buf: new(bytes.Buffer),
	}
}

func (l *SyncLog) Write(data []byte) (int, error) {
	l.Lock()
	defer l.Unlock()
	return l.buf.Write(data)
}

func (l *SyncLog) Read(p []byte) (n int, err error) {
	l.Lock()
	defer l.Unlock()
	return l.buf.Read(p)
}

func (l *SyncLog) String() string {
	l.Lock()
	defer l.Unlock()
	return l.buf.String()
}

func (l *SyncLog) Bytes() []byte {
	l.Lock()
	defer l.Unlock()
	return l.buf.Bytes()
}

// Events unmarshals each captured log line as a LogEvent, in write order.
func (l *SyncLog) Events() ([]LogEvent, error) {
	var events []LogEvent
	for _, line := range strings.Split(strings.TrimSpace(l.String()), "\n") {
		if line == "" {
			continue
		}
		var event LogEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// NewLogger constructs a logger whose output can be inspected while testing.
func NewLogger() (*zerolog.Logger, *SyncLog) {
	log := NewSyncLog()
	logger := eventlog.New(log)
	return &logger, log
}

// LogEvent is used to unmarshal zerolog JSON log events
type LogEvent struct {
	Level        string            `json:"l"`
	Timestamp    int64             `json:"t"`
	Message      string            `json:"m"`
	Event        string            `json:"n"`
	Component    string            `json:"c"`
	EventID      string            `json:"z"`
	ErrorMessage string            `json:"e"`
	Tags         []string          `json:"g"`
	Stack        []Stackframe      `json:"s"`
	Data         map[string]string `json:"d"`
}

// Time converts the log event UNIX time into a time.Time
func (e *LogEvent) Time() time.Time {
	return time.Unix(e.Timestamp, 0)
}

// Stackframe represents a stack frame that is logged.
type Stackframe struct {
	Func   string `json:"func"`
	Line   string `json:"line"`
	Source string `json:"source"`
}
