// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package engine renames a template package and everything that refers to it.

	+-------------+
	|   Locate    |
	| (Packages/) |
	+------+------+
	       |
	+------+------+
	|    Plan     |
	|   (pure)    |
	+------+------+
	       |
	+------+------+
	|    Apply    |
	|  (writes)   |
	+-------------+

🎯 Purpose:
- Find the single package directory whose name carries every source token
- Rewrite the tokens inside every included text file of the project
- Rename files and folders under the package, then the package itself
- Optionally give the moved package fresh identifiers, updating references project wide

🔄 Flow:
 1. Locate lists the immediate children of the packages directory
 2. Plan walks the project once and computes every edit and move up front
 3. Apply writes content first, then moves deepest-first, then regenerates

⚡ Failure model:
Apply stops at the first failed write or move and returns the partial
Result with the error. Nothing already applied is rolled back, so a failed
run can leave a tree that is part renamed. Re-running is safe: Locate finds
a package that already carries the destination tokens and the content pass
is a no-op on text without source tokens.

🔍 Example:

	eng, err := engine.New(engine.Options{Config: cfg})
	if err != nil {
		return err
	}
	result, err := eng.Run(ctx)
*/
package engine
