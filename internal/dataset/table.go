package dataset

import "slices"

// TableRow is one display row of a conjugation table.
type TableRow struct {
	Label       string
	Value       string
	Highlighted bool
}

type rowGroup struct {
	label string
	keys  []string
}

var rowGroups = []rowGroup{
	{label: "je / j'", keys: []string{"je", JElided}},
	{label: "tu", keys: []string{"tu"}},
	{label: "il / elle / on", keys: []string{"il", "elle", "on"}},
	{label: "nous", keys: []string{"nous"}},
	{label: "vous", keys: []string{"vous"}},
	{label: "ils / elles", keys: []string{"ils", "elles"}},
}

// TableRows derives the grouped display rows for a conjugation table. A group
// is shown only when one of its keys has a form; the je / j' row always shows
// je's form. The row containing pronoun is highlighted.
func TableRows(conj Conjugations, pronoun string) []TableRow {
	rows := make([]TableRow, 0, len(rowGroups))
	for _, g := range rowGroups {
		key, ok := activeKey(conj, g.keys)
		if !ok {
			continue
		}
		value, _ := ResolveForm(conj, key)
		rows = append(rows, TableRow{
			Label:       g.label,
			Value:       value,
			Highlighted: slices.Contains(g.keys, pronoun),
		})
	}
	return rows
}

func activeKey(conj Conjugations, keys []string) (string, bool) {
	for _, k := range keys {
		if conj[LookupPronoun(k)] != "" {
			return k, true
		}
	}
	return "", false
}
