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
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samply/hfcgen/data"
	"github.com/samply/hfcgen/hfc"
	"github.com/samply/hfcgen/schema"
	"github.com/samply/hfcgen/util"
	"github.com/samply/hfcgen/xlsform"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"
)

var flagParams data.Params
var paramsFile string
var uniqueIDs string
var force bool

// defaultParams derives the parameters that default to the name of the form.
func defaultParams(formPath string) data.Params {
	base := strings.TrimSuffix(formPath, filepath.Ext(formPath))
	return data.Params{
		Instrument: filepath.Base(base),
		Output:     base + "_hfc.do",
	}
}

// resolveParams merges the parameters in order of precedence: flags, the
// params file, the environment and the defaults derived from the form.
func resolveParams(formPath string) (data.Params, error) {
	params := flagParams
	if uniqueIDs != "" {
		ids, err := util.ReadVariableList(uniqueIDs)
		if err != nil {
			return data.Params{}, err
		}
		params.UniqueIDs = ids
	}

	if paramsFile != "" {
		fileParams, err := data.ReadParamsFile(paramsFile)
		if err != nil {
			return data.Params{}, err
		}
		params.Merge(*fileParams)
	}
	params.Merge(data.ParamsFromEnv())
	params.Merge(defaultParams(formPath))

	if err := params.Validate(); err != nil {
		return data.Params{}, fmt.Errorf("invalid parameters:\n%w", err)
	}
	return params, nil
}

// newDatasetProgress returns a progress bar over the dataset sections of the
// script together with its wait function. Without progress both are no-ops.
func newDatasetProgress(w io.Writer, datasets int) (func(schema.Dataset), func()) {
	if noProgress {
		return nil, func() {}
	}

	progress := mpb.New(mpb.WithOutput(w))
	bar := progress.AddBar(int64(datasets),
		mpb.BarRemoveOnComplete(),
		mpb.PrependDecorators(
			decor.Name("generate", decor.WC{W: 9, C: decor.DindentRight}),
			decor.OnComplete(decor.CountersNoUnit("%d / %d", decor.WC{W: 4}), "done"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)
	return func(schema.Dataset) { bar.Increment() }, func() {
		// a failed rendering leaves the bar incomplete
		if !bar.Completed() {
			bar.Abort(true)
		}
		progress.Wait()
	}
}

func uniqueDatasets(analysis *schema.Analysis) int {
	return len(analysis.Catalog.Datasets())
}

func generate(cmd *cobra.Command, formPath string) error {
	start := time.Now()

	params, err := resolveParams(formPath)
	if err != nil {
		return err
	}
	logger.Debug("Resolved parameters",
		zap.String("instrument", params.Instrument),
		zap.String("output", params.Output),
		zap.Strings("uniqueIds", params.UniqueIDs))

	form, err := xlsform.LoadFile(formPath)
	if err != nil {
		return err
	}

	analysis, err := schema.Analyze(form, logger)
	if err != nil {
		return err
	}

	generationID, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	onDataset, wait := newDatasetProgress(cmd.ErrOrStderr(), uniqueDatasets(analysis))
	script := bytes.Buffer{}
	err = hfc.Render(&script, analysis, hfc.Options{
		Params:       params,
		Version:      cmd.Root().Version,
		GenerationID: generationID.String(),
		GeneratedAt:  start,
		OnDataset:    onDataset,
	})
	wait()
	if err != nil {
		return err
	}

	output, err := util.CreateOutputFile(params.Output, force)
	if err != nil {
		return err
	}
	n, err := script.WriteTo(output)
	if err = errors.Join(err, output.Close()); err != nil {
		return fmt.Errorf("error while writing the script %s: %w", params.Output, err)
	}
	logger.Info("Generated check script",
		zap.String("output", params.Output),
		zap.String("generationId", generationID.String()),
		zap.Int("datasets", uniqueDatasets(analysis)),
		zap.Int("variables", analysis.Catalog.Len()))

	stats := util.GenerationStats{
		GenerationID:  generationID.String(),
		Questions:     len(analysis.Questions),
		RepeatGroups:  len(analysis.Groups),
		ScriptBytes:   n,
		TotalDuration: time.Since(start),
		Warnings:      analysis.Warnings,
	}
	for _, dataset := range analysis.Catalog.Datasets() {
		stats.VariablesPerDataset = append(stats.VariablesPerDataset, analysis.Catalog.Count(dataset))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n\n", params.Output)
	fmt.Fprint(cmd.OutOrStdout(), stats.String())
	return nil
}

var generateCmd = &cobra.Command{
	Use:   "generate [xlsform]",
	Short: "Generate a Check Script",
	Long: `Reads the survey and choices sheets of the given XLSForm and writes a
Stata do-file with high-frequency checks for the survey dataset and every
repeat group.

Parameters are taken from the flags, a YAML params file, HFCGEN_* environment
variables (also read from a .env file) and defaults derived from the form, in
that order of precedence.

Example:

  hfcgen generate household.xlsx --enum-id enumerator --unique-id hhid`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return generate(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&paramsFile, "params", "", "YAML file with parameter defaults")
	generateCmd.Flags().StringVarP(&flagParams.Output, "output", "o", "", "the do-file to write (default <xlsform>_hfc.do)")
	generateCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing output file")
	generateCmd.Flags().StringVar(&flagParams.Instrument, "instrument", "", "name of the instrument (default: the xlsform file name)")
	generateCmd.Flags().StringVar(&flagParams.WorkingDir, "working-dir", "", "directory the script changes to before loading data")
	generateCmd.Flags().StringVar(&flagParams.EnumeratorID, "enum-id", "", "variable identifying the enumerator")
	generateCmd.Flags().StringVar(&uniqueIDs, "unique-id", "", "variables identifying a submission, comma separated or @file")
	generateCmd.Flags().StringVar(&flagParams.SuccessCondition, "success", "", "Stata condition selecting successful interviews")
	generateCmd.Flags().StringVar(&flagParams.RespondentName, "respondent-name", "", "variable holding the respondent name")
	generateCmd.Flags().StringVar(&flagParams.Corrections, "corrections", "", "workbook with corrections to apply")
	generateCmd.Flags().StringVar(&flagParams.EnumeratorComments, "enum-comments", "", "variable holding enumerator comments")
	generateCmd.Flags().StringVar(&flagParams.GraphicsDir, "graphics-dir", "", "directory for exported graphs")
	generateCmd.Flags().StringVar(&flagParams.DatasetPrefix, "dataset-prefix", "", "prefix of the repeat group data files")
}
