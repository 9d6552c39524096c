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

package util

import (
	"errors"
	"testing"

	"github.com/samply/hfcgen/schema"
	"github.com/stretchr/testify/assert"
)

func TestFmtWarnings(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", FmtWarnings(nil))
	})

	t.Run("EmptyInstrument", func(t *testing.T) {
		assert.Equal(t, `Kind        : empty instrument
Message     : the survey sheet has no named questions, no checks will be generated
`, FmtWarnings([]error{&schema.EmptyInstrumentWarning{}}))
	})

	t.Run("UnknownChoiceList", func(t *testing.T) {
		warning := &schema.UnknownChoiceListWarning{Question: "district", List: "districts"}

		assert.Equal(t, `Kind        : unknown choice list
Question    : district
List        : districts
Message     : question `+"`district`"+` refers to choice list `+"`districts`"+` which has no numeric codes
`, FmtWarnings([]error{warning}))
	})

	t.Run("TwoWarnings", func(t *testing.T) {
		assert.Equal(t, `Kind        : other
Message     : first
---
Kind        : other
Message     : second
`, FmtWarnings([]error{errors.New("first"), errors.New("second")}))
	})

	t.Run("MultilineMessage", func(t *testing.T) {
		assert.Equal(t, `Kind        : other
Message     : line one
              line two
`, FmtWarnings([]error{errors.New("line one\nline two")}))
	})
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", Indent(2, "a\nb"))
	assert.Equal(t, "a\n  b", IndentExceptFirstLine(2, "a\nb"))
}
