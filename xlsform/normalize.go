// Copyright 2025 The Samply Community
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

package xlsform

import "strings"

var lineBreaks = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")

var labelReplacer = strings.NewReplacer("$", "#", `"`, "", "\r\n", " ", "\n", " ", "\r", " ")

// cleanLabel makes label text safe for interpolation into the generated
// script: `$` would start a global macro and `"` would end a string.
func cleanLabel(label string) string {
	return strings.TrimSpace(labelReplacer.Replace(label))
}

// cleanVariableName strips dots and line breaks and lower-cases the name the
// way the data export names the variable.
func cleanVariableName(name string) string {
	name = strings.ReplaceAll(lineBreaks.Replace(name), ".", "")
	return strings.ToLower(strings.TrimSpace(name))
}

// cleanChoiceName maps the first `-` to `_` as value label names surface
// with an underscore downstream.
func cleanChoiceName(name string) string {
	return strings.Replace(strings.TrimSpace(lineBreaks.Replace(name)), "-", "_", 1)
}

func cleanListName(name string) string {
	return strings.Join(strings.Fields(name), "")
}

// cleanTypeTokens joins the spaced structure types XLSForm accepts, like
// `begin repeat` or `end group`, into their underscore form.
func cleanTypeTokens(tokens []string) []string {
	if len(tokens) < 2 {
		return tokens
	}
	marker := strings.ToLower(tokens[0])
	structure := strings.ToLower(tokens[1])
	if (marker != "begin" && marker != "end") || (structure != "group" && structure != "repeat") {
		return tokens
	}
	return append([]string{marker + "_" + structure}, tokens[2:]...)
}
