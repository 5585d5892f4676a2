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
Package dynerr standardizes how functions return and dispatch dynamically typed errors.

Error is a type erased carrier that owns a single concrete error cause and is assigned a
unique instance ID when the cause is wrapped.
Result is used as the return value for functions that produce either a value or an Error.
Match recovers the concrete error type at runtime and dispatches it to guarded handler arms,
declared in order via On.
*/
package dynerr
