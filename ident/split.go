/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package ident

// Split cuts s on every occurrence of sep that sits exactly at nesting
// depth `depth`, where depth increases on push and decreases on pop.
// It is the leaf utility behind generic-argument and parameter-list
// separation: a comma inside a nested bracket group is never a split
// point at depth 0.
//
// Empty input yields a nil slice. Unbalanced push/pop characters are not
// validated; input is produced by the encoder or hand-authored test
// identifiers and is caller-trusted.
func Split(s string, push, pop, sep byte, depth int) []string {
	if s == "" {
		return nil
	}

	var out []string
	level := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case push:
			level++
		case pop:
			level--
		case sep:
			if level == depth {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}
