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

package xlsform

import (
	"errors"
	"fmt"
)

// Form is the normalized content of an XLSForm workbook.
type Form struct {
	Questions []Question
	Choices   *ChoiceLists
}

// Load reads both sheets from r. The choices sheet is read first so that a
// workbook lacking both sheets reports the choices sheet.
func Load(r SheetReader) (*Form, error) {
	choices, err := LoadChoices(r)
	if err != nil {
		return nil, fmt.Errorf("loading the choices sheet: %w", err)
	}
	questions, err := LoadSurvey(r)
	if err != nil {
		return nil, fmt.Errorf("loading the survey sheet: %w", err)
	}
	return &Form{Questions: questions, Choices: choices}, nil
}

// readFile opens the workbook at path, hands it to load and closes it again.
// A failed close is reported like a failed load.
func readFile[T any](path string, load func(SheetReader) (*T, error)) (result *T, err error) {
	workbook, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, workbook.Close())
		if err != nil {
			result = nil
		}
	}()
	return load(workbook)
}

// LoadFile opens the workbook at path, loads both sheets and closes it again.
func LoadFile(path string) (*Form, error) {
	return readFile(path, Load)
}

// LoadChoicesFile loads only the choices sheet of the workbook at path.
func LoadChoicesFile(path string) (*ChoiceLists, error) {
	return readFile(path, func(r SheetReader) (*ChoiceLists, error) {
		choices, err := LoadChoices(r)
		if err != nil {
			return nil, fmt.Errorf("loading the choices sheet: %w", err)
		}
		return choices, nil
	})
}
