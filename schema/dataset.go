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

import "github.com/samply/hfcgen/xlsform"

// SurveyDataset is the name and reference of the top-level dataset.
const SurveyDataset = "survey"

// Dataset is a table of the collected data: the survey itself or one repeat
// group.
type Dataset struct {
	Name string
	// Reference names the file or table the data is read from.
	Reference string
	// Group is nil for the survey dataset.
	Group *RepeatGroup
}

func (d Dataset) IsSurvey() bool {
	return d.Group == nil
}

// AssignDatasets returns the dataset name of every question, in the order of
// questions, and all datasets with the survey first and the repeat groups
// following by index.
func AssignDatasets(questions []xlsform.Question, groups []RepeatGroup) ([]string, []Dataset) {
	datasets := make([]Dataset, 0, len(groups)+1)
	datasets = append(datasets, Dataset{Name: SurveyDataset, Reference: SurveyDataset})
	for i := range groups {
		datasets = append(datasets, Dataset{
			Name:      groups[i].DatasetName,
			Reference: groups[i].DatasetName,
			Group:     &groups[i],
		})
	}

	assigned := make([]string, len(questions))
	for i, q := range questions {
		if group, ok := GroupOf(groups, q.Order); ok {
			assigned[i] = group.DatasetName
		} else {
			assigned[i] = SurveyDataset
		}
	}
	return assigned, datasets
}
