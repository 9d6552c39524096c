package schema

import (
	"strings"

	"github.com/samply/hfcgen/xlsform"
)

// questionRow is a survey row as type and name.
type questionRow struct {
	typ, name string
}

// questions builds questions the way the survey loader does, with orders
// starting at 1.
func questions(rows ...questionRow) []xlsform.Question {
	qs := make([]xlsform.Question, len(rows))
	for i, row := range rows {
		tokens := strings.Fields(row.typ)
		qs[i] = xlsform.Question{
			Name:         row.name,
			RawType:      strings.Join(tokens, " "),
			TypeTokens:   tokens,
			WorkingLabel: row.name,
			Order:        i + 1,
		}
	}
	return qs
}
