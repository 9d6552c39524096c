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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samply/hfcgen/data"
	"github.com/samply/hfcgen/util"
	"github.com/samply/hfcgen/xlsform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readScript(t *testing.T, path string) string {
	t.Helper()
	script, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(script)
}

func TestGenerateCmd(t *testing.T) {
	t.Run("writes the script next to the form", func(t *testing.T) {
		clearEnv(t)
		path := writeHouseholdForm(t)

		out, err := executeCommand(t, "generate", path, "--enum-id", "enum", "--unique-id", "hhid", "--no-progress")
		require.NoError(t, err)

		output := strings.TrimSuffix(path, ".xlsx") + "_hfc.do"
		assert.Contains(t, out, "Wrote "+output+"\n")
		assert.Contains(t, out, "Repeat Groups	[total]			1\n")
		assert.Contains(t, out, "Datasets	[total]			2\n")

		script := readScript(t, output)
		assert.Contains(t, script, "* High-frequency checks for household\n")
		assert.Contains(t, script, `use "survey.dta", clear`)
		assert.Contains(t, script, `use "members.dta", clear`)
		assert.Contains(t, script, `label define yesno 1 "Yes", modify`)
		assert.Contains(t, script, "label values consent yesno\n")
		assert.Contains(t, script, `hfc_outliers age, dataset("survey")`)
		assert.Contains(t, script, `hfc_outliers member_age, dataset("members")`)
		assert.NotContains(t, script, "thanks")
	})

	t.Run("dataset prefix and explicit output", func(t *testing.T) {
		clearEnv(t)
		path := writeHouseholdForm(t)
		output := filepath.Join(t.TempDir(), "checks.do")

		_, err := executeCommand(t, "generate", path, "-o", output, "--enum-id", "enum",
			"--unique-id", "hhid", "--dataset-prefix", "household-", "--no-progress")
		require.NoError(t, err)

		script := readScript(t, output)
		assert.Contains(t, script, `use "survey.dta", clear`)
		assert.Contains(t, script, `use "household-members.dta", clear`)
	})

	t.Run("with progress", func(t *testing.T) {
		clearEnv(t)
		path := writeHouseholdForm(t)
		output := filepath.Join(t.TempDir(), "checks.do")

		_, err := executeCommand(t, "generate", path, "-o", output, "--enum-id", "enum", "--unique-id", "hhid")

		assert.NoError(t, err)
	})

	t.Run("existing output", func(t *testing.T) {
		clearEnv(t)
		path := writeHouseholdForm(t)
		output := filepath.Join(t.TempDir(), "checks.do")
		require.NoError(t, os.WriteFile(output, []byte("old"), 0644))

		_, err := executeCommand(t, "generate", path, "-o", output, "--enum-id", "enum", "--unique-id", "hhid", "--no-progress")
		assert.ErrorIs(t, err, util.ErrOutputExists)
		assert.Equal(t, "old", readScript(t, output))

		_, err = executeCommand(t, "generate", path, "-o", output, "--enum-id", "enum", "--unique-id", "hhid", "--no-progress", "--force")
		require.NoError(t, err)
		assert.Contains(t, readScript(t, output), "log close hfc")
	})

	t.Run("missing parameters", func(t *testing.T) {
		clearEnv(t)
		path := writeHouseholdForm(t)

		_, err := executeCommand(t, "generate", path, "--no-progress")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing enumerator id variable")
		assert.Contains(t, err.Error(), "missing unique id variables")
	})

	t.Run("malformed repeat groups", func(t *testing.T) {
		clearEnv(t)
		path := writeForm(t, t.TempDir(), map[string][][]string{
			"survey": {
				{"type", "name", "label"},
				{"begin_repeat", "members", "members"},
				{"text", "member_name", "Name"},
			},
			"choices": householdChoices,
		})
		output := filepath.Join(t.TempDir(), "checks.do")

		_, err := executeCommand(t, "generate", path, "-o", output, "--enum-id", "enum", "--unique-id", "hhid", "--no-progress")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "resolving repeat groups")
		assert.NoFileExists(t, output)
	})

	t.Run("missing choices sheet", func(t *testing.T) {
		clearEnv(t)
		path := writeForm(t, t.TempDir(), map[string][][]string{"survey": householdSurvey})

		_, err := executeCommand(t, "generate", path, "--enum-id", "enum", "--unique-id", "hhid", "--no-progress")

		var schemaErr *xlsform.SchemaError
		assert.ErrorAs(t, err, &schemaErr)
	})
}

func TestResolveParams(t *testing.T) {
	t.Run("precedence", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(data.EnvGraphicsDir, "graphs-from-env")
		t.Setenv(data.EnvEnumeratorID, "enum-from-env")
		paramsPath := filepath.Join(t.TempDir(), "params.yml")
		require.NoError(t, os.WriteFile(paramsPath, []byte(`
enumeratorId: enum-from-file
uniqueIds: [hhid, visit]
respondentName: resp-from-file
`), 0644))

		resetFlags()
		t.Cleanup(resetFlags)
		paramsFile = paramsPath
		flagParams.RespondentName = "resp-from-flag"

		params, err := resolveParams(filepath.Join("forms", "household.xlsx"))
		require.NoError(t, err)

		assert.Equal(t, "household", params.Instrument)
		assert.Equal(t, filepath.Join("forms", "household_hfc.do"), params.Output)
		assert.Equal(t, "enum-from-file", params.EnumeratorID)
		assert.Equal(t, []string{"hhid", "visit"}, params.UniqueIDs)
		assert.Equal(t, "resp-from-flag", params.RespondentName)
		assert.Equal(t, "graphs-from-env", params.GraphicsDir)
	})

	t.Run("unique ids from file", func(t *testing.T) {
		clearEnv(t)
		idsPath := filepath.Join(t.TempDir(), "ids.txt")
		require.NoError(t, os.WriteFile(idsPath, []byte("hhid\nvisit\n"), 0644))

		resetFlags()
		t.Cleanup(resetFlags)
		uniqueIDs = "@" + idsPath
		flagParams.EnumeratorID = "enum"

		params, err := resolveParams("household.xlsx")
		require.NoError(t, err)
		assert.Equal(t, []string{"hhid", "visit"}, params.UniqueIDs)
	})

	t.Run("missing params file", func(t *testing.T) {
		clearEnv(t)
		resetFlags()
		t.Cleanup(resetFlags)
		paramsFile = filepath.Join(t.TempDir(), "missing.yml")

		_, err := resolveParams("household.xlsx")
		assert.Error(t, err)
	})
}
