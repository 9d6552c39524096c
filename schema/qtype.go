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

package schema

import (
	"fmt"

	"github.com/samply/hfcgen/xlsform"
)

// QuestionType is the semantic type of a question which decides the checks
// run on its variable.
type QuestionType int

const (
	NotRelevant QuestionType = iota
	String
	SelectOne
	SelectMultiple
	Numeric
	Date
	Datetime
	GeoPoint
)

// ScoredTypes are the question types that enter the variable catalog, in
// the order the checks are emitted.
var ScoredTypes = []QuestionType{String, SelectOne, SelectMultiple, Numeric, Date, Datetime}

var questionTypeNames = map[QuestionType]string{
	NotRelevant:    "not_relevant",
	String:         "string",
	SelectOne:      "select_one",
	SelectMultiple: "select_multiple",
	Numeric:        "numeric",
	Date:           "date",
	Datetime:       "datetime",
	GeoPoint:       "geopoint",
}

func (t QuestionType) String() string {
	if name, ok := questionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("QuestionType(%d)", int(t))
}

func (t QuestionType) MarshalText() ([]byte, error) {
	if _, ok := questionTypeNames[t]; !ok {
		return nil, fmt.Errorf("unknown question type %d", int(t))
	}
	return []byte(t.String()), nil
}

// Types without collected data or without a check of their own. They match
// either the base type or the whole type (`text audit`).
var notRelevantTypes = map[string]bool{
	"begin_group":  true,
	"end_group":    true,
	"begin_repeat": true,
	"end_repeat":   true,
	"text audit":   true,
	"deviceid":     true,
	"image":        true,
}

type classificationRule struct {
	matches func(q *xlsform.Question) bool
	qtype   QuestionType
}

func baseTypeIn(types ...string) func(q *xlsform.Question) bool {
	return func(q *xlsform.Question) bool {
		for _, t := range types {
			if q.BaseType() == t {
				return true
			}
		}
		return false
	}
}

func isNotRelevant(q *xlsform.Question) bool {
	return notRelevantTypes[q.BaseType()] || notRelevantTypes[q.RawType] || q.IsNote() || q.IsPreloaded()
}

// The first matching rule wins. The not-relevant rule comes first because it
// overrides every other type, including the numeric fallback.
var classificationRules = []classificationRule{
	{isNotRelevant, NotRelevant},
	{baseTypeIn("text"), String},
	{baseTypeIn("select_one"), SelectOne},
	{baseTypeIn("select_multiple"), SelectMultiple},
	{baseTypeIn("date", "today"), Date},
	{baseTypeIn("start", "end", "submissiondate"), Datetime},
	{baseTypeIn("geopoint"), GeoPoint},
	{func(q *xlsform.Question) bool { return q.BaseType() != "" }, Numeric},
}

// Classify returns the question type of q. Questions without any type are
// not relevant.
func Classify(q xlsform.Question) QuestionType {
	for _, rule := range classificationRules {
		if rule.matches(&q) {
			return rule.qtype
		}
	}
	return NotRelevant
}
