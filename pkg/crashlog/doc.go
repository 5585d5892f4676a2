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

/*
Package crashlog provides an append-only crash log file for recording unrecoverable
failures before the process dies.

The file holds one event display-string per line, in write order. It is created on
demand, with a "file created" sentinel as its first entry. Log appends the event and
returns it, so the failure site keeps its control flow. Abort and Check record the
event and then terminate the process. The crash log reports on itself via structured
zerolog events, which are kept separate from the file.

Failing to create or write the crash log is itself fatal under the default fail fast
strategy - a process must not keep running with a crash log it cannot write. Embedders
that prefer graceful degradation can replace the strategy via WithOnFatal.

A File is not safe for concurrent use: concurrent writers may interleave lines.
*/
package crashlog
