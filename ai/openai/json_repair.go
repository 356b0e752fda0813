// Copyright 2026 Lorekeep Systems
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


package openai

import "strings"

// repairJSON fixes the malformations small local models produce most
// often in their routing and analysis replies: object keys missing
// their opening quote (`, type":` for `, "type":`) and trailing commas
// before a closing brace or bracket.
func repairJSON(s string) string {
	return stripTrailingCommas(requoteKeys(s))
}

// requoteKeys inserts the opening quote before keys written as
// `key":` after a `{` or `,`.
func requoteKeys(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+16)

	for i := 0; i < len(in); {
		ch := in[i]
		out = append(out, ch)
		i++
		if ch != '{' && ch != ',' {
			continue
		}

		for i < len(in) && isSpace(in[i]) {
			out = append(out, in[i])
			i++
		}
		if i >= len(in) || !isLetter(in[i]) {
			continue
		}

		start := i
		for i < len(in) && (isLetter(in[i]) || in[i] == '_' || in[i] == ' ') {
			i++
		}
		if i+1 < len(in) && in[i] == '"' && in[i+1] == ':' {
			// The closing quote is already in place at in[i]
			out = append(out, '"')
			out = append(out, []rune(strings.TrimSpace(string(in[start:i])))...)
		} else {
			out = append(out, in[start:i]...)
		}
	}

	return string(out)
}

// stripTrailingCommas drops a comma whose next non-space character
// closes the surrounding object or array. Commas inside string values
// are left alone.
func stripTrailingCommas(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in))
	inString := false

	for i := 0; i < len(in); i++ {
		ch := in[i]

		if inString {
			out = append(out, ch)
			if ch == '\\' && i+1 < len(in) {
				i++
				out = append(out, in[i])
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case ',':
			j := i + 1
			for j < len(in) && isSpace(in[j]) {
				j++
			}
			if j < len(in) && (in[j] == '}' || in[j] == ']') {
				continue
			}
		}
		out = append(out, ch)
	}

	return string(out)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
