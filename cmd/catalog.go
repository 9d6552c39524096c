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

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/samply/hfcgen/schema"
	"github.com/samply/hfcgen/xlsform"
	"github.com/spf13/cobra"
)

var catalogFormats = []string{"yaml", "json"}
var catalogFormat string

type catalogChecks struct {
	Type      schema.QuestionType `yaml:"type" json:"type"`
	Variables []string            `yaml:"variables" json:"variables"`
}

type catalogDataset struct {
	Name          string          `yaml:"name" json:"name"`
	Reference     string          `yaml:"reference" json:"reference"`
	FirstVariable string          `yaml:"firstVariable,omitempty" json:"firstVariable,omitempty"`
	Checks        []catalogChecks `yaml:"checks" json:"checks"`
}

type catalogDocument struct {
	Datasets []catalogDataset `yaml:"datasets" json:"datasets"`
	Warnings []string         `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

func newCatalogDocument(analysis *schema.Analysis) catalogDocument {
	doc := catalogDocument{Datasets: make([]catalogDataset, 0, len(analysis.Catalog.Datasets()))}
	for _, name := range analysis.Catalog.Datasets() {
		dataset, _ := analysis.Dataset(name)
		entry := catalogDataset{
			Name:      name,
			Reference: dataset.Reference,
			Checks:    []catalogChecks{},
		}
		if dataset.Group != nil {
			entry.FirstVariable = dataset.Group.FirstVariable
		}
		for _, t := range schema.ScoredTypes {
			if variables := analysis.Catalog.Variables(name, t); len(variables) > 0 {
				entry.Checks = append(entry.Checks, catalogChecks{Type: t, Variables: variables})
			}
		}
		doc.Datasets = append(doc.Datasets, entry)
	}
	for _, warning := range analysis.Warnings {
		doc.Warnings = append(doc.Warnings, warning.Error())
	}
	return doc
}

func writeCatalog(w io.Writer, analysis *schema.Analysis, format string) error {
	var out []byte
	var err error
	switch format {
	case "yaml":
		out, err = yaml.Marshal(newCatalogDocument(analysis))
	case "json":
		out, err = json.MarshalIndent(newCatalogDocument(analysis), "", "  ")
		out = append(out, '\n')
	default:
		return fmt.Errorf("unknown format `%s`, use one of %v", format, catalogFormats)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

var catalogCmd = &cobra.Command{
	Use:   "catalog [xlsform]",
	Short: "Print the Variable Catalog of a Form",
	Long: `Analyzes the given XLSForm and prints the variables that are checked,
grouped by dataset and question type, without generating a script.`,
	Args: cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"xlsx"}, cobra.ShellCompDirectiveFilterFileExt
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := xlsform.LoadFile(args[0])
		if err != nil {
			return err
		}

		analysis, err := schema.Analyze(form, logger)
		if err != nil {
			return err
		}

		return writeCatalog(cmd.OutOrStdout(), analysis, catalogFormat)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().StringVar(&catalogFormat, "format", "yaml", "output format: yaml or json")
	_ = catalogCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return catalogFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
