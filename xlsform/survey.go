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

import (
	"regexp"
	"strings"
)

var preloadPattern = regexp.MustCompile(`^pulldata`)

// Question is one named row of the survey sheet.
type Question struct {
	// Name is the variable name: lower-cased and without dots.
	Name    string
	RawType string
	// TypeTokens is RawType split on whitespace. The first token is the base
	// type, for select questions the second one names the choice list.
	TypeTokens []string
	// Label is the default label, WorkingLabel the label used in the
	// generated script (`labelStata` if the form provides one).
	Label        string
	WorkingLabel string
	Calculation  string
	// Order is the 1-based position among the named rows of the sheet.
	Order int
}

func (q *Question) BaseType() string {
	if len(q.TypeTokens) == 0 {
		return ""
	}
	return q.TypeTokens[0]
}

// ChoiceList returns the name of the choice list referenced by a select
// question or the empty string.
func (q *Question) ChoiceList() string {
	switch q.BaseType() {
	case "select_one", "select_multiple":
		if len(q.TypeTokens) > 1 {
			return q.TypeTokens[1]
		}
	}
	return ""
}

func (q *Question) IsNote() bool {
	return q.RawType == "note"
}

// IsPreloaded reports whether the value is pulled from preloaded data rather
// than collected.
func (q *Question) IsPreloaded() bool {
	return preloadPattern.MatchString(q.Calculation)
}

// LoadSurvey reads the survey sheet. Rows without a name are skipped.
func LoadSurvey(r SheetReader) ([]Question, error) {
	sheet, err := r.Sheet(SurveySheet)
	if err != nil {
		return nil, err
	}

	typeCol := sheet.Column("type")
	if typeCol < 0 {
		return nil, &SchemaError{Sheet: SurveySheet, Column: "type"}
	}
	nameCol := sheet.Column("name")
	if nameCol < 0 {
		return nil, &SchemaError{Sheet: SurveySheet, Column: "name"}
	}
	labelCol := sheet.labelColumn()
	workingCol := sheet.Column("labelStata")
	if labelCol >= 0 {
		workingCol = labelCol
	}
	calculationCol := sheet.Column("calculation")

	questions := make([]Question, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if cell(row, nameCol) == "" {
			continue
		}
		tokens := cleanTypeTokens(strings.Fields(cell(row, typeCol)))
		label := cleanLabel(cell(row, labelCol))
		working := cleanLabel(cell(row, workingCol))
		if working == "" {
			working = label
		}
		questions = append(questions, Question{
			Name:         cleanVariableName(cell(row, nameCol)),
			RawType:      strings.Join(tokens, " "),
			TypeTokens:   tokens,
			Label:        label,
			WorkingLabel: working,
			Calculation:  cell(row, calculationCol),
			Order:        len(questions) + 1,
		})
	}
	return questions, nil
}
