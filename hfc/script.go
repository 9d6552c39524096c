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

// Package hfc assembles the Stata do-file running the high-frequency checks
// of an analyzed form.
package hfc

import (
	_ "embed"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/samply/hfcgen/data"
	"github.com/samply/hfcgen/schema"
	"github.com/samply/hfcgen/xlsform"
)

//go:embed checks.do.tmpl
var scriptTemplate string

// Excel limits sheet names to 31 characters.
const maxSheetName = 31

var funcMap = template.FuncMap{
	"vars": func(names []string) string {
		return strings.Join(names, " ")
	},
	"sheet": sheetName,
	"quote": func(s string) string {
		return "`\"" + s + "\"'"
	},
}

var tmpl = template.Must(template.New("script").Funcs(funcMap).Parse(scriptTemplate))

func sheetName(prefix, dataset string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', '?', '*', '[', ']', ':', '\'':
			return '_'
		}
		return r
	}, prefix+"_"+dataset)
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return name
}

// Options control a single rendering of the script.
type Options struct {
	Params       data.Params
	Version      string
	GenerationID string
	GeneratedAt  time.Time
	// OnDataset is called after the section of each dataset is written.
	OnDataset func(schema.Dataset)
}

type labelAssignment struct {
	Variable string
	List     string
}

type section struct {
	Name      string
	Reference string
	Survey    bool
	// IDs identify the observations of the dataset in exported lists.
	IDs []string

	String         []string
	SelectOne      []string
	SelectMultiple []string
	Numeric        []string
	Date           []string
	Datetime       []string
	All            []string
	// HasNumeric gates the outlier checks.
	HasNumeric     bool

	ValueLabels []labelAssignment
}

type header struct {
	Params       data.Params
	Version      string
	GenerationID string
	GeneratedAt  string
	Results      string
	Log          string
	ValueLabels  []*xlsform.ChoiceList
}

// ResultsFile returns the workbook the script exports its findings to,
// placed next to the script.
func ResultsFile(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + "_results.xlsx"
}

func newHeader(analysis *schema.Analysis, opts Options) header {
	base := strings.TrimSuffix(opts.Params.Output, filepath.Ext(opts.Params.Output))
	return header{
		Params:       opts.Params,
		Version:      opts.Version,
		GenerationID: opts.GenerationID,
		GeneratedAt:  opts.GeneratedAt.Format(time.RFC3339),
		Results:      ResultsFile(opts.Params.Output),
		Log:          base + ".log",
		ValueLabels:  analysis.Choices.Lists(),
	}
}

func newSection(analysis *schema.Analysis, dataset schema.Dataset, params data.Params) section {
	catalog := analysis.Catalog
	s := section{
		Name:           dataset.Name,
		Reference:      dataset.Reference,
		Survey:         dataset.IsSurvey(),
		String:         catalog.Variables(dataset.Name, schema.String),
		SelectOne:      catalog.Variables(dataset.Name, schema.SelectOne),
		SelectMultiple: catalog.Variables(dataset.Name, schema.SelectMultiple),
		Numeric:        catalog.Variables(dataset.Name, schema.Numeric),
		Date:           catalog.Variables(dataset.Name, schema.Date),
		Datetime:       catalog.Variables(dataset.Name, schema.Datetime),
		HasNumeric:     catalog.HasNumeric(dataset.Name),
	}
	if s.Survey {
		s.IDs = params.UniqueIDs
	} else {
		s.IDs = []string{"key", "parent_key"}
		s.Reference = params.DatasetPrefix + dataset.Reference
	}
	for _, qt := range schema.ScoredTypes {
		s.All = append(s.All, catalog.Variables(dataset.Name, qt)...)
	}

	for _, q := range analysis.Questions {
		if q.Dataset != dataset.Name || q.Type != schema.SelectOne {
			continue
		}
		if _, ok := analysis.Choices.Lookup(q.ChoiceList()); ok {
			s.ValueLabels = append(s.ValueLabels, labelAssignment{Variable: q.Name, List: q.ChoiceList()})
		}
	}
	return s
}

// Render writes the check script of analysis to w. Datasets are written in
// dependency order, the survey first.
func Render(w io.Writer, analysis *schema.Analysis, opts Options) error {
	if err := tmpl.ExecuteTemplate(w, "header", newHeader(analysis, opts)); err != nil {
		return fmt.Errorf("error while rendering the script header: %w", err)
	}

	seen := make(map[string]bool, len(analysis.Datasets))
	for _, dataset := range analysis.Datasets {
		if seen[dataset.Name] {
			continue
		}
		seen[dataset.Name] = true

		if err := tmpl.ExecuteTemplate(w, "dataset", newSection(analysis, dataset, opts.Params)); err != nil {
			return fmt.Errorf("error while rendering the checks of dataset `%s`: %w", dataset.Name, err)
		}
		if opts.OnDataset != nil {
			opts.OnDataset(dataset)
		}
	}

	if err := tmpl.ExecuteTemplate(w, "footer", opts.Params); err != nil {
		return fmt.Errorf("error while rendering the script footer: %w", err)
	}
	return nil
}
