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

// Package schema analyzes the questions of an XLSForm: it classifies them,
// resolves their repeat groups and builds the catalog of variables to check
// per dataset.
package schema

import (
	"fmt"

	"github.com/samply/hfcgen/xlsform"
	"go.uber.org/zap"
)

// AnalyzedQuestion is a question with its derived type and dataset.
type AnalyzedQuestion struct {
	xlsform.Question
	Type    QuestionType
	Dataset string
}

// Analysis is the result of analyzing a form. It is never modified after
// Analyze returns.
type Analysis struct {
	Questions []AnalyzedQuestion
	Choices   *xlsform.ChoiceLists
	Groups    []RepeatGroup
	Datasets  []Dataset
	Catalog   *VariableCatalog
	// Warnings are non-fatal findings like *EmptyInstrumentWarning.
	Warnings []error
}

// Dataset returns the dataset with the given name.
func (a *Analysis) Dataset(name string) (Dataset, bool) {
	for _, dataset := range a.Datasets {
		if dataset.Name == name {
			return dataset, true
		}
	}
	return Dataset{}, false
}

// Analyze runs the analysis pass over form. A nil logger discards all
// output. The form is not modified.
func Analyze(form *xlsform.Form, logger *zap.Logger) (*Analysis, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	questions := make([]xlsform.Question, len(form.Questions))
	copy(questions, form.Questions)

	var warnings []error
	if len(questions) == 0 {
		warning := &EmptyInstrumentWarning{}
		logger.Warn(warning.Error())
		warnings = append(warnings, warning)
	}

	groups, err := ResolveRepeatGroups(questions)
	if err != nil {
		return nil, fmt.Errorf("resolving repeat groups: %w", err)
	}
	logger.Debug("Resolved repeat groups", zap.Int("groups", len(groups)))

	assigned, datasets := AssignDatasets(questions, groups)

	analyzed := make([]AnalyzedQuestion, len(questions))
	for i, q := range questions {
		analyzed[i] = AnalyzedQuestion{
			Question: q,
			Type:     Classify(q),
			Dataset:  assigned[i],
		}
	}

	choices := form.Choices
	if choices == nil {
		choices = xlsform.NewChoiceLists(nil)
	}
	for _, q := range analyzed {
		if q.Type != SelectOne && q.Type != SelectMultiple {
			continue
		}
		if _, ok := choices.Lookup(q.ChoiceList()); !ok {
			warning := &UnknownChoiceListWarning{Question: q.Name, List: q.ChoiceList()}
			logger.Warn("Choice list without codes",
				zap.String("question", q.Name),
				zap.String("list", q.ChoiceList()))
			warnings = append(warnings, warning)
		}
	}

	catalog := BuildCatalog(datasets, analyzed)
	for _, name := range catalog.Datasets() {
		logger.Debug("Cataloged dataset",
			zap.String("dataset", name),
			zap.Int("variables", catalog.Count(name)))
	}

	return &Analysis{
		Questions: analyzed,
		Choices:   choices,
		Groups:    groups,
		Datasets:  datasets,
		Catalog:   catalog,
		Warnings:  warnings,
	}, nil
}
