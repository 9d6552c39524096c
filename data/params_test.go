package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParamsFile(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "params.yml")
		require.NoError(t, os.WriteFile(filename, []byte(`instrument: forms/household.xlsx
output: hfc/household_checks.do
workingDir: /projects/household
enumeratorId: enum_id
successCondition: consent == 1
uniqueIds: [hhid, visit]
respondentName: resp_name
corrections: hfc/corrections.xlsx
enumeratorComments: enum_comments
graphicsDir: hfc/graphs
datasetPrefix: household-
`), 0644))

		params, err := ReadParamsFile(filename)
		require.NoError(t, err)

		assert.Equal(t, Params{
			Instrument:         "forms/household.xlsx",
			Output:             "hfc/household_checks.do",
			WorkingDir:         "/projects/household",
			EnumeratorID:       "enum_id",
			SuccessCondition:   "consent == 1",
			UniqueIDs:          []string{"hhid", "visit"},
			RespondentName:     "resp_name",
			Corrections:        "hfc/corrections.xlsx",
			EnumeratorComments: "enum_comments",
			GraphicsDir:        "hfc/graphs",
			DatasetPrefix:      "household-",
		}, *params)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadParamsFile(filepath.Join(t.TempDir(), "missing.yml"))
		assert.Error(t, err)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "params.yml")
		require.NoError(t, os.WriteFile(filename, []byte("uniqueIds: {a: [}"), 0644))

		_, err := ReadParamsFile(filename)
		assert.ErrorContains(t, err, "params.yml")
	})
}

func TestParamsFromEnv(t *testing.T) {
	t.Setenv(EnvEnumeratorID, " enum_id ")
	t.Setenv(EnvUniqueIDs, "hhid  visit")
	t.Setenv(EnvGraphicsDir, "")

	params := ParamsFromEnv()

	assert.Equal(t, "enum_id", params.EnumeratorID)
	assert.Equal(t, []string{"hhid", "visit"}, params.UniqueIDs)
	assert.Empty(t, params.GraphicsDir)
}

func TestParams_Merge(t *testing.T) {
	params := Params{EnumeratorID: "flag_enum"}
	params.Merge(Params{EnumeratorID: "file_enum", UniqueIDs: []string{"hhid"}, Output: "checks.do"})
	params.Merge(Params{Output: "env.do", WorkingDir: "/env"})

	assert.Equal(t, "flag_enum", params.EnumeratorID)
	assert.Equal(t, []string{"hhid"}, params.UniqueIDs)
	assert.Equal(t, "checks.do", params.Output)
	assert.Equal(t, "/env", params.WorkingDir)
}

func TestParams_Validate(t *testing.T) {
	params := Params{}
	err := params.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing instrument")
	assert.Contains(t, err.Error(), "missing unique id variables")

	params = Params{Instrument: "a.xlsx", Output: "a.do", EnumeratorID: "enum", UniqueIDs: []string{"id"}}
	assert.NoError(t, params.Validate())
}
