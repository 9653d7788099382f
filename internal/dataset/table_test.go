package dataset

import "testing"

func TestTableRows_Full(t *testing.T) {
	conj := Conjugations{
		"je": "ai", "tu": "as", "il": "a", "elle": "a", "on": "a",
		"nous": "avons", "vous": "avez", "ils": "ont", "elles": "ont",
	}

	rows := TableRows(conj, "j'")
	wantLabels := []string{"je / j'", "tu", "il / elle / on", "nous", "vous", "ils / elles"}
	wantValues := []string{"ai", "as", "a", "avons", "avez", "ont"}
	if len(rows) != len(wantLabels) {
		t.Fatalf("got %d rows, want %d", len(rows), len(wantLabels))
	}
	for i, r := range rows {
		if r.Label != wantLabels[i] || r.Value != wantValues[i] {
			t.Errorf("row %d = %q/%q, want %q/%q", i, r.Label, r.Value, wantLabels[i], wantValues[i])
		}
		if r.Highlighted != (i == 0) {
			t.Errorf("row %d highlighted = %v", i, r.Highlighted)
		}
	}
}

func TestTableRows_Highlight(t *testing.T) {
	conj := Conjugations{"je": "parle", "il": "parle", "elles": "parlent"}

	tests := []struct {
		pronoun   string
		wantLabel string
	}{
		{"je", "je / j'"},
		{"on", "il / elle / on"},
		{"elle", "il / elle / on"},
		{"elles", "ils / elles"},
	}
	for _, tt := range tests {
		var got []string
		for _, r := range TableRows(conj, tt.pronoun) {
			if r.Highlighted {
				got = append(got, r.Label)
			}
		}
		if len(got) != 1 || got[0] != tt.wantLabel {
			t.Errorf("TableRows(%q) highlighted %v, want [%s]", tt.pronoun, got, tt.wantLabel)
		}
	}
}

func TestTableRows_OmitsEmptyGroups(t *testing.T) {
	conj := Conjugations{"je": "finis", "on": "finit", "vous": ""}

	rows := TableRows(conj, "vous")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}
	if rows[0].Label != "je / j'" || rows[1].Label != "il / elle / on" {
		t.Errorf("labels = %q, %q", rows[0].Label, rows[1].Label)
	}
	if rows[1].Value != "finit" {
		t.Errorf("il / elle / on value = %q, want finit", rows[1].Value)
	}
	for _, r := range rows {
		if r.Highlighted {
			t.Errorf("row %q highlighted for a pronoun with no form", r.Label)
		}
	}
}
