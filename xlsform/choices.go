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
	"regexp"
	"strconv"
)

// Only value-coded lists are kept. Choice names like `oui` belong to
// alternate labeling schemes that the checks do not support.
var codePattern = regexp.MustCompile(`^[0-9]+$`)

// ChoiceEntry is one coded option of a choice list.
type ChoiceEntry struct {
	ListName string
	Code     int
	Label    string
	// Order is the 1-based data row of the entry in the choices sheet.
	Order int
}

// ChoiceList is a named list of options with unique codes.
type ChoiceList struct {
	Name    string
	Entries []ChoiceEntry
}

// Label returns the label of the option with the given code.
func (l *ChoiceList) Label(code int) (string, bool) {
	for _, entry := range l.Entries {
		if entry.Code == code {
			return entry.Label, true
		}
	}
	return "", false
}

// ChoiceLists holds all entries of a choices sheet grouped by list name.
type ChoiceLists struct {
	entries []ChoiceEntry
	lists   []*ChoiceList
	byName  map[string]*ChoiceList
}

// NewChoiceLists groups entries by list name in order of first appearance.
// Repeated codes within a list keep the first occurrence. Entries without a
// list name are kept in Entries but belong to no list.
func NewChoiceLists(entries []ChoiceEntry) *ChoiceLists {
	c := &ChoiceLists{
		entries: entries,
		byName:  make(map[string]*ChoiceList),
	}
	for _, entry := range entries {
		if entry.ListName == "" {
			continue
		}
		list, ok := c.byName[entry.ListName]
		if !ok {
			list = &ChoiceList{Name: entry.ListName}
			c.byName[entry.ListName] = list
			c.lists = append(c.lists, list)
		}
		if _, dup := list.Label(entry.Code); dup {
			continue
		}
		list.Entries = append(list.Entries, entry)
	}
	return c
}

// Entries returns all loaded entries in sheet order, including repeated codes.
func (c *ChoiceLists) Entries() []ChoiceEntry {
	return c.entries
}

// Lists returns the choice lists in order of first appearance.
func (c *ChoiceLists) Lists() []*ChoiceList {
	return c.lists
}

func (c *ChoiceLists) Lookup(name string) (*ChoiceList, bool) {
	list, ok := c.byName[name]
	return list, ok
}

func (c *ChoiceLists) Len() int {
	return len(c.lists)
}

// LoadChoices reads the choices sheet. Rows whose name is not a plain
// non-negative integer are skipped.
func LoadChoices(r SheetReader) (*ChoiceLists, error) {
	sheet, err := r.Sheet(ChoicesSheet)
	if err != nil {
		return nil, err
	}

	listCol := sheet.Column("list_name")
	if listCol < 0 {
		listCol = sheet.Column("listname")
	}
	if listCol < 0 {
		return nil, &SchemaError{Sheet: ChoicesSheet, Column: "list_name"}
	}
	nameCol := sheet.Column("name")
	if nameCol < 0 {
		return nil, &SchemaError{Sheet: ChoicesSheet, Column: "name"}
	}
	labelCol := sheet.labelColumn()
	if labelCol < 0 {
		return nil, &SchemaError{Sheet: ChoicesSheet, Column: "label"}
	}

	entries := make([]ChoiceEntry, 0, len(sheet.Rows))
	for i, row := range sheet.Rows {
		if isBlank(row) {
			continue
		}
		name := cleanChoiceName(cell(row, nameCol))
		if !codePattern.MatchString(name) {
			continue
		}
		code, err := strconv.Atoi(name)
		if err != nil {
			// out of int range
			continue
		}
		entries = append(entries, ChoiceEntry{
			ListName: cleanListName(cell(row, listCol)),
			Code:     code,
			Label:    cleanLabel(cell(row, labelCol)),
			Order:    i + 1,
		})
	}
	return NewChoiceLists(entries), nil
}
