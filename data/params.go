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

// Package data holds the parameters of a generated check script.
package data

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Params are the parameters of the generated check script. They are passed
// into the script verbatim.
type Params struct {
	Instrument         string   `yaml:"instrument"`
	Output             string   `yaml:"output"`
	WorkingDir         string   `yaml:"workingDir"`
	EnumeratorID       string   `yaml:"enumeratorId"`
	SuccessCondition   string   `yaml:"successCondition"`
	UniqueIDs          []string `yaml:"uniqueIds"`
	RespondentName     string   `yaml:"respondentName"`
	Corrections        string   `yaml:"corrections"`
	EnumeratorComments string   `yaml:"enumeratorComments"`
	GraphicsDir        string   `yaml:"graphicsDir"`
	// DatasetPrefix is prepended to the references of repeat group datasets,
	// like `household-` for exports named `household-members.dta`.
	DatasetPrefix string `yaml:"datasetPrefix"`
}

// Environment variables read by ParamsFromEnv.
const (
	EnvWorkingDir         = "HFCGEN_WORKING_DIR"
	EnvEnumeratorID       = "HFCGEN_ENUM_ID"
	EnvSuccessCondition   = "HFCGEN_SUCCESS_CONDITION"
	EnvUniqueIDs          = "HFCGEN_UNIQUE_ID"
	EnvRespondentName     = "HFCGEN_RESPONDENT_NAME"
	EnvCorrections        = "HFCGEN_CORRECTIONS"
	EnvEnumeratorComments = "HFCGEN_ENUM_COMMENTS"
	EnvGraphicsDir        = "HFCGEN_GRAPHICS_DIR"
	EnvDatasetPrefix      = "HFCGEN_DATASET_PREFIX"
)

// ReadParamsFile reads params from a YAML file.
func ReadParamsFile(filename string) (*Params, error) {
	file, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	params := Params{}

	err = yaml.Unmarshal(file, &params)
	if err != nil {
		return nil, fmt.Errorf("error while parsing params file %s: %w", filename, err)
	}
	return &params, nil
}

// ParamsFromEnv reads the parameters that are usually shared between
// projects from the environment. Unique ids are separated by spaces.
func ParamsFromEnv() Params {
	return Params{
		WorkingDir:         strings.TrimSpace(os.Getenv(EnvWorkingDir)),
		EnumeratorID:       strings.TrimSpace(os.Getenv(EnvEnumeratorID)),
		SuccessCondition:   strings.TrimSpace(os.Getenv(EnvSuccessCondition)),
		UniqueIDs:          strings.Fields(os.Getenv(EnvUniqueIDs)),
		RespondentName:     strings.TrimSpace(os.Getenv(EnvRespondentName)),
		Corrections:        strings.TrimSpace(os.Getenv(EnvCorrections)),
		EnumeratorComments: strings.TrimSpace(os.Getenv(EnvEnumeratorComments)),
		GraphicsDir:        strings.TrimSpace(os.Getenv(EnvGraphicsDir)),
		DatasetPrefix:      strings.TrimSpace(os.Getenv(EnvDatasetPrefix)),
	}
}

// Merge fills every empty field of p with the value of defaults.
func (p *Params) Merge(defaults Params) {
	fill := func(field *string, value string) {
		if *field == "" {
			*field = value
		}
	}
	fill(&p.Instrument, defaults.Instrument)
	fill(&p.Output, defaults.Output)
	fill(&p.WorkingDir, defaults.WorkingDir)
	fill(&p.EnumeratorID, defaults.EnumeratorID)
	fill(&p.SuccessCondition, defaults.SuccessCondition)
	fill(&p.RespondentName, defaults.RespondentName)
	fill(&p.Corrections, defaults.Corrections)
	fill(&p.EnumeratorComments, defaults.EnumeratorComments)
	fill(&p.GraphicsDir, defaults.GraphicsDir)
	fill(&p.DatasetPrefix, defaults.DatasetPrefix)
	if len(p.UniqueIDs) == 0 {
		p.UniqueIDs = defaults.UniqueIDs
	}
}

// Validate checks that all parameters without a usable default are set.
func (p *Params) Validate() error {
	var errs []error
	if p.Instrument == "" {
		errs = append(errs, errors.New("missing instrument"))
	}
	if p.Output == "" {
		errs = append(errs, errors.New("missing output file"))
	}
	if p.EnumeratorID == "" {
		errs = append(errs, errors.New("missing enumerator id variable"))
	}
	if len(p.UniqueIDs) == 0 {
		errs = append(errs, errors.New("missing unique id variables"))
	}
	return errors.Join(errs...)
}
