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
	"strings"

	"github.com/samply/hfcgen/xlsform"
)

// RepeatGroup is a matched begin_repeat/end_repeat pair. Its interval
// [BeginOrder, EndOrder] includes both marker rows.
type RepeatGroup struct {
	// Index is 1-based in order of the begin_repeat rows.
	Index      int
	BeginOrder int
	EndOrder   int
	// DatasetName is the working label of the begin_repeat row, or its name
	// if that label is empty.
	DatasetName string
	// FirstVariable is the name of the begin_repeat row.
	FirstVariable string
}

func (g RepeatGroup) Contains(order int) bool {
	return g.BeginOrder <= order && order <= g.EndOrder
}

// ResolveRepeatGroups pairs the begin_repeat and end_repeat rows of the
// questions, which have to be sorted by order.
//
// Begin markers are processed from last to first. Each takes the nearest
// end marker after it that is not yet taken by a later begin marker. This is
// bracket matching, so the resulting intervals are disjoint or nested.
// A group may not be named like the survey dataset, its data would be
// checked as part of the survey.
func ResolveRepeatGroups(questions []xlsform.Question) ([]RepeatGroup, error) {
	var begins, ends []*xlsform.Question
	for i := range questions {
		switch questions[i].BaseType() {
		case "begin_repeat":
			begins = append(begins, &questions[i])
		case "end_repeat":
			ends = append(ends, &questions[i])
		}
	}

	if len(begins) != len(ends) {
		return nil, &MalformedRepeatStructureError{
			Begins: len(begins),
			Ends:   len(ends),
			Reason: "unbalanced begin_repeat and end_repeat rows",
		}
	}

	groups := make([]RepeatGroup, len(begins))
	consumed := make([]bool, len(ends))
	for i := len(begins) - 1; i >= 0; i-- {
		begin := begins[i]
		match := -1
		for j := len(ends) - 1; j >= 0; j-- {
			if !consumed[j] && ends[j].Order > begin.Order {
				match = j
			}
		}
		if match < 0 {
			return nil, &MalformedRepeatStructureError{
				Begins: len(begins),
				Ends:   len(ends),
				Order:  begin.Order,
				Reason: "no end_repeat follows the begin_repeat",
			}
		}
		consumed[match] = true

		datasetName := begin.WorkingLabel
		if datasetName == "" {
			datasetName = begin.Name
		}
		if strings.EqualFold(datasetName, SurveyDataset) {
			return nil, &MalformedRepeatStructureError{
				Begins: len(begins),
				Ends:   len(ends),
				Order:  begin.Order,
				Reason: "repeat group named like the survey dataset",
			}
		}
		groups[i] = RepeatGroup{
			Index:         i + 1,
			BeginOrder:    begin.Order,
			EndOrder:      ends[match].Order,
			DatasetName:   datasetName,
			FirstVariable: begin.Name,
		}
	}
	return groups, nil
}

// GroupOf returns the innermost group containing order. For nested groups
// that is the one with the highest index.
func GroupOf(groups []RepeatGroup, order int) (RepeatGroup, bool) {
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i].Contains(order) {
			return groups[i], true
		}
	}
	return RepeatGroup{}, false
}
