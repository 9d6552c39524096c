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

// VariableCatalog lists the variable names per dataset and question type.
// Only the scored types are kept; the names are in question order.
type VariableCatalog struct {
	datasets  []string
	variables map[string]map[QuestionType][]string
}

// BuildCatalog builds the catalog of the given datasets from the analyzed
// questions, which have to be sorted by order. Questions of datasets not
// listed are ignored.
func BuildCatalog(datasets []Dataset, questions []AnalyzedQuestion) *VariableCatalog {
	c := &VariableCatalog{
		datasets:  make([]string, 0, len(datasets)),
		variables: make(map[string]map[QuestionType][]string, len(datasets)),
	}
	for _, dataset := range datasets {
		if _, ok := c.variables[dataset.Name]; ok {
			continue
		}
		c.datasets = append(c.datasets, dataset.Name)
		c.variables[dataset.Name] = make(map[QuestionType][]string, len(ScoredTypes))
	}

	for _, q := range questions {
		if !isScored(q.Type) {
			continue
		}
		byType, ok := c.variables[q.Dataset]
		if !ok {
			continue
		}
		byType[q.Type] = append(byType[q.Type], q.Name)
	}
	return c
}

func isScored(t QuestionType) bool {
	for _, scored := range ScoredTypes {
		if t == scored {
			return true
		}
	}
	return false
}

// Datasets returns the dataset names in dependency order.
func (c *VariableCatalog) Datasets() []string {
	return c.datasets
}

// Variables returns the variable names of the given dataset and type. An
// empty result means no check of that kind is emitted for the dataset.
func (c *VariableCatalog) Variables(dataset string, t QuestionType) []string {
	return c.variables[dataset][t]
}

// HasNumeric reports whether the dataset has numeric variables, which gates
// the outlier checks.
func (c *VariableCatalog) HasNumeric(dataset string) bool {
	return len(c.Variables(dataset, Numeric)) > 0
}

// Count returns the number of variables of the dataset over all types.
func (c *VariableCatalog) Count(dataset string) int {
	var n int
	for _, names := range c.variables[dataset] {
		n += len(names)
	}
	return n
}

// Len returns the number of variables over all datasets.
func (c *VariableCatalog) Len() int {
	var n int
	for _, dataset := range c.datasets {
		n += c.Count(dataset)
	}
	return n
}
