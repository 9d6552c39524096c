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

import "fmt"

// MalformedRepeatStructureError reports begin_repeat and end_repeat rows that
// do not pair up.
type MalformedRepeatStructureError struct {
	Begins, Ends int
	// Order of the offending begin_repeat row, 0 if the counts differ.
	Order  int
	Reason string
}

func (e *MalformedRepeatStructureError) Error() string {
	if e.Order > 0 {
		return fmt.Sprintf("malformed repeat groups (%d begin_repeat, %d end_repeat): %s at question %d",
			e.Begins, e.Ends, e.Reason, e.Order)
	}
	return fmt.Sprintf("malformed repeat groups (%d begin_repeat, %d end_repeat): %s",
		e.Begins, e.Ends, e.Reason)
}

// EmptyInstrumentWarning reports a survey sheet without any named question.
// The analysis still succeeds with an empty catalog.
type EmptyInstrumentWarning struct{}

func (w *EmptyInstrumentWarning) Error() string {
	return "the survey sheet has no named questions, no checks will be generated"
}

// UnknownChoiceListWarning reports a select question whose choice list has no
// coded entries. Its variable is checked without value labels.
type UnknownChoiceListWarning struct {
	Question string
	List     string
}

func (w *UnknownChoiceListWarning) Error() string {
	return fmt.Sprintf("question `%s` refers to choice list `%s` which has no numeric codes", w.Question, w.List)
}
