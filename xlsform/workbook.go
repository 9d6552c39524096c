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

// Package xlsform reads the "survey" and "choices" sheets of a SurveyCTO
// XLSForm workbook into normalized question and choice tables.
package xlsform

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	SurveySheet  = "survey"
	ChoicesSheet = "choices"
)

// Sheet is a worksheet given as a header row and data rows. Every data row
// has exactly len(Columns) cells, blank cells being empty strings.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Column returns the index of the column with the given name or -1. Column
// names are compared case-insensitively and without surrounding spaces.
func (s *Sheet) Column(name string) int {
	for i, column := range s.Columns {
		if strings.EqualFold(strings.TrimSpace(column), name) {
			return i
		}
	}
	return -1
}

// labelColumn returns the index of the default label column. A plain `label`
// column wins over language specific ones like `label::English`, of which an
// English one is preferred over the first one found.
func (s *Sheet) labelColumn() int {
	if idx := s.Column("label"); idx >= 0 {
		return idx
	}
	first := -1
	for i, column := range s.Columns {
		lang, ok := labelLanguage(column)
		if !ok {
			continue
		}
		if strings.EqualFold(lang, "english") || strings.EqualFold(lang, "en") {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}

func labelLanguage(column string) (string, bool) {
	column = strings.TrimSpace(column)
	if len(column) < len("label:") || !strings.EqualFold(column[:len("label:")], "label:") {
		return "", false
	}
	return strings.TrimLeft(column[len("label:"):], ":"), true
}

// cell returns the trimmed value at idx or the empty string if idx is -1.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// A SheetReader returns the named sheet of a workbook. A missing sheet is
// reported as *SchemaError.
type SheetReader interface {
	Sheet(name string) (*Sheet, error)
}

// StaticSheets is a SheetReader over sheets already held in memory, keyed by
// sheet name.
type StaticSheets map[string]*Sheet

func (s StaticSheets) Sheet(name string) (*Sheet, error) {
	for sheetName, sheet := range s {
		if strings.EqualFold(sheetName, name) {
			return sheet, nil
		}
	}
	return nil, &SchemaError{Sheet: name}
}

// Workbook is a SheetReader over an XLSX file. It has to be closed after use.
type Workbook struct {
	path string
	file *excelize.File
}

// OpenWorkbook opens the XLSX file at path.
func OpenWorkbook(path string) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the workbook %s: %w", path, err)
	}
	return &Workbook{path: path, file: file}, nil
}

// Sheet reads the sheet with the given name, matched case-insensitively. The
// first row is taken as header.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	var sheetName string
	for _, candidate := range w.file.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(candidate), name) {
			sheetName = candidate
			break
		}
	}
	if sheetName == "" {
		return nil, &SchemaError{Sheet: name}
	}

	rows, err := w.file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet `%s` of %s: %w", sheetName, w.path, err)
	}

	sheet := &Sheet{Name: name}
	if len(rows) == 0 {
		return sheet, nil
	}
	sheet.Columns = rows[0]
	sheet.Rows = make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, len(sheet.Columns))
		copy(padded, row)
		sheet.Rows = append(sheet.Rows, padded)
	}
	return sheet, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}
