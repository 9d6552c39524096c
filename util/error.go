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

package util

import (
	"errors"
	"strings"
	"text/template"

	"github.com/samply/hfcgen/schema"
)

type warning struct {
	Kind     string
	Message  string
	Question string
	List     string
}

func describeWarning(err error) warning {
	var unknownList *schema.UnknownChoiceListWarning
	var emptyInstrument *schema.EmptyInstrumentWarning
	switch {
	case errors.As(err, &unknownList):
		return warning{
			Kind:     "unknown choice list",
			Message:  err.Error(),
			Question: unknownList.Question,
			List:     unknownList.List,
		}
	case errors.As(err, &emptyInstrument):
		return warning{Kind: "empty instrument", Message: err.Error()}
	default:
		return warning{Kind: "other", Message: err.Error()}
	}
}

var warningTemplate, _ = template.New("warnings").
	Funcs(template.FuncMap{"indent": IndentExceptFirstLine}).
	Parse(`{{ define "warning" -}}
Kind        : {{ .Kind }}
{{ with .Question -}}
Question    : {{ . }}
{{ end -}}
{{ with .List -}}
List        : {{ . }}
{{ end -}}
Message     : {{ indent 14 .Message }}
{{ end -}}

{{ range $index, $warning := . -}}
{{ if $index }}---
{{ end -}}
{{ template "warning" $warning -}}
{{ end -}}
`)

// FmtWarnings formats the non-fatal findings of an analysis, one block per
// warning separated by `---` lines.
func FmtWarnings(warnings []error) string {
	described := make([]warning, len(warnings))
	for i, w := range warnings {
		described[i] = describeWarning(w)
	}

	builder := strings.Builder{}
	err := warningTemplate.Execute(&builder, described)
	if err != nil {
		return err.Error()
	}

	return builder.String()
}

func Indent(spaces int, v string) string {
	pad := strings.Repeat(" ", spaces)
	return pad + IndentExceptFirstLine(spaces, v)
}

func IndentExceptFirstLine(spaces int, v string) string {
	pad := strings.Repeat(" ", spaces)
	return strings.ReplaceAll(v, "\n", "\n"+pad)
}
