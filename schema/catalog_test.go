package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func analyzed(name string, qt QuestionType, dataset string) AnalyzedQuestion {
	q := AnalyzedQuestion{Type: qt, Dataset: dataset}
	q.Name = name
	return q
}

func TestBuildCatalog(t *testing.T) {
	datasets := []Dataset{{Name: "survey"}, {Name: "members"}}
	qs := []AnalyzedQuestion{
		analyzed("starttime", Datetime, "survey"),
		analyzed("age", Numeric, "members"),
		analyzed("gps", GeoPoint, "survey"),
		analyzed("intro", NotRelevant, "survey"),
		analyzed("name", String, "members"),
		analyzed("hhsize", Numeric, "survey"),
		analyzed("income", Numeric, "survey"),
		analyzed("orphan", Numeric, "unknown"),
	}

	catalog := BuildCatalog(datasets, qs)

	want := map[string]map[QuestionType][]string{
		"survey": {
			Datetime: {"starttime"},
			Numeric:  {"hhsize", "income"},
		},
		"members": {
			Numeric: {"age"},
			String:  {"name"},
		},
	}
	if diff := cmp.Diff(want, catalog.variables); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"survey", "members"}, catalog.Datasets())
	assert.True(t, catalog.HasNumeric("members"))
	assert.Empty(t, catalog.Variables("members", Date))
	assert.Empty(t, catalog.Variables("unknown", Numeric))
	assert.Equal(t, 3, catalog.Count("survey"))
	assert.Equal(t, 5, catalog.Len())
}

func TestBuildCatalog_DuplicateDatasetNames(t *testing.T) {
	datasets := []Dataset{{Name: "survey"}, {Name: "roster"}, {Name: "roster"}}
	catalog := BuildCatalog(datasets, []AnalyzedQuestion{analyzed("a", String, "roster")})

	assert.Equal(t, []string{"survey", "roster"}, catalog.Datasets())
	assert.Equal(t, []string{"a"}, catalog.Variables("roster", String))
}

func TestBuildCatalog_NoNumeric(t *testing.T) {
	catalog := BuildCatalog([]Dataset{{Name: "survey"}}, []AnalyzedQuestion{analyzed("q", String, "survey")})

	assert.False(t, catalog.HasNumeric("survey"))
}
