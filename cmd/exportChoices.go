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
	"errors"
	"fmt"

	"github.com/samply/hfcgen/fhir"
	"github.com/samply/hfcgen/util"
	"github.com/samply/hfcgen/xlsform"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var choicesOutput string
var choicesInstrument string

var exportChoicesCmd = &cobra.Command{
	Use:   "export-choices [xlsform]",
	Short: "Export Choice Lists as FHIR® CodeSystems",
	Long: `Reads the coded choice lists of the given XLSForm and writes them as a
collection Bundle of FHIR® CodeSystem resources, one per list.

Every CodeSystem gets a random urn:uuid URL. Without an output file the
Bundle is written to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lists, err := xlsform.LoadChoicesFile(args[0])
		if err != nil {
			return err
		}

		bundle, err := fhir.CreateCodeSystemBundle(lists, choicesInstrument)
		if err != nil {
			return err
		}

		bundleBytes, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return err
		}
		bundleBytes = append(bundleBytes, '\n')

		if choicesOutput == "" {
			_, err = cmd.OutOrStdout().Write(bundleBytes)
			return err
		}

		output, err := util.CreateOutputFile(choicesOutput, force)
		if err != nil {
			return err
		}
		_, err = output.Write(bundleBytes)
		if err = errors.Join(err, output.Close()); err != nil {
			return fmt.Errorf("error while writing the Bundle %s: %w", choicesOutput, err)
		}
		logger.Info("Exported choice lists",
			zap.String("output", choicesOutput),
			zap.Int("lists", lists.Len()))
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d choice lists to %s\n", lists.Len(), choicesOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportChoicesCmd)

	exportChoicesCmd.Flags().StringVarP(&choicesOutput, "output", "o", "", "the file to write the Bundle to")
	exportChoicesCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing output file")
	exportChoicesCmd.Flags().StringVar(&choicesInstrument, "instrument", "", "name of the instrument, prefixes the CodeSystem titles")
}
