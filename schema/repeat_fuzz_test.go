package schema

import (
	"testing"
)

func FuzzResolveRepeatGroups(f *testing.F) {
	f.Add([]byte("(()())"))
	f.Add([]byte("(x(y)z)"))
	f.Add([]byte(")("))

	f.Fuzz(func(t *testing.T, markers []byte) {
		rows := make([]questionRow, len(markers))
		for i, m := range markers {
			switch m {
			case '(':
				rows[i] = questionRow{"begin_repeat", "b"}
			case ')':
				rows[i] = questionRow{"end_repeat", "e"}
			default:
				rows[i] = questionRow{"text", "t"}
			}
		}

		groups, err := ResolveRepeatGroups(questions(rows...))
		if err != nil {
			return
		}

		for i, a := range groups {
			if a.BeginOrder >= a.EndOrder {
				t.Fatalf("group %d begins at %d after its end %d", a.Index, a.BeginOrder, a.EndOrder)
			}
			for _, b := range groups[i+1:] {
				disjoint := a.EndOrder < b.BeginOrder || b.EndOrder < a.BeginOrder
				nested := (a.BeginOrder < b.BeginOrder && b.EndOrder < a.EndOrder) ||
					(b.BeginOrder < a.BeginOrder && a.EndOrder < b.EndOrder)
				if !disjoint && !nested {
					t.Fatalf("groups %d and %d cross", a.Index, b.Index)
				}
			}
		}
	})
}
