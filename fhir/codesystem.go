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

// Package fhir exports the choice lists of a form as FHIR CodeSystem
// resources.
package fhir

import (
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	fm "github.com/samply/golang-fhir-models/fhir-models/fhir"
	"github.com/samply/hfcgen/xlsform"
)

// RandomURL returns a fresh `urn:uuid:` URL.
func RandomURL() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return "urn:uuid:" + id.String(), nil
}

// CreateCodeSystem converts one choice list into a complete CodeSystem. The
// codes are the decimal choice codes, the displays the cleaned labels.
func CreateCodeSystem(list *xlsform.ChoiceList, url string, title string) fm.CodeSystem {
	name := list.Name
	count := len(list.Entries)
	codeSystem := fm.CodeSystem{
		Url:     &url,
		Name:    &name,
		Status:  fm.PublicationStatusDraft,
		Content: fm.CodeSystemContentModeComplete,
		Count:   &count,
		Concept: make([]fm.CodeSystemConcept, 0, count),
	}
	if title != "" {
		codeSystem.Title = &title
	}
	for _, entry := range list.Entries {
		codeSystem.Concept = append(codeSystem.Concept, createConcept(entry))
	}
	return codeSystem
}

func createConcept(entry xlsform.ChoiceEntry) fm.CodeSystemConcept {
	concept := fm.CodeSystemConcept{Code: strconv.Itoa(entry.Code)}
	if entry.Label != "" {
		label := entry.Label
		concept.Display = &label
	}
	return concept
}

// CreateCodeSystemBundle creates a collection Bundle with one CodeSystem per
// choice list, in order of first appearance. Every CodeSystem gets a random
// `urn:uuid:` URL which is also its full URL in the Bundle. The instrument,
// if given, prefixes the CodeSystem titles.
func CreateCodeSystemBundle(lists *xlsform.ChoiceLists, instrument string) (*fm.Bundle, error) {
	bundle := &fm.Bundle{
		Type:  fm.BundleTypeCollection,
		Entry: make([]fm.BundleEntry, 0, lists.Len()),
	}
	for _, list := range lists.Lists() {
		url, err := RandomURL()
		if err != nil {
			return nil, err
		}

		var title string
		if instrument != "" {
			title = instrument + " " + list.Name
		}

		codeSystemBytes, err := json.Marshal(CreateCodeSystem(list, url, title))
		if err != nil {
			return nil, err
		}

		bundle.Entry = append(bundle.Entry, createBundleEntry(url, codeSystemBytes))
	}
	return bundle, nil
}

func createBundleEntry(url string, resource []byte) fm.BundleEntry {
	return fm.BundleEntry{
		FullUrl:  &url,
		Resource: resource,
	}
}
