package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig defines how a workbook is laid out.
type ImportConfig struct {
	QuestionsSheet    string // sheet with one question per row
	ConjugationsSheet string // sheet with one verb/tense table per row
	StartRow          int    // first data row (1-based); rows above are headers
}

// DefaultImportConfig returns the default workbook layout.
//
// questions:    sentence | verb | tense | group | tier | pronoun
// conjugations: tier | tier label | verb | tense | je | tu | il | elle | on | nous | vous | ils | elles
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		QuestionsSheet:    "questions",
		ConjugationsSheet: "conjugations",
		StartRow:          2,
	}
}

// ImportResult holds the outcome of a workbook import.
type ImportResult struct {
	TotalProcessed int
	Tables         int
	Questions      int
	Skipped        int
	Errors         []string
}

// ImportWorkbook builds a Dataset from an .xlsx workbook. Malformed rows are
// skipped and reported in the result rather than failing the import.
func ImportWorkbook(path string, cfg ImportConfig) (*Dataset, *ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if cfg.StartRow < 1 {
		cfg.StartRow = 1
	}

	ds := &Dataset{Tiers: make(map[string]Tier), Questions: []Question{}}
	result := &ImportResult{}

	conjRows, err := f.GetRows(cfg.ConjugationsSheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", cfg.ConjugationsSheet, err)
	}
	for i, row := range conjRows {
		if i < cfg.StartRow-1 || blank(row) {
			continue
		}
		result.TotalProcessed++
		if err := importConjugationRow(ds, row); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: %v", cfg.ConjugationsSheet, i+1, err))
			continue
		}
		result.Tables++
	}

	questionRows, err := f.GetRows(cfg.QuestionsSheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", cfg.QuestionsSheet, err)
	}
	for i, row := range questionRows {
		if i < cfg.StartRow-1 || blank(row) {
			continue
		}
		result.TotalProcessed++
		q, err := questionFromRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: %v", cfg.QuestionsSheet, i+1, err))
			continue
		}
		ds.Questions = append(ds.Questions, q)
		result.Questions++
	}

	return ds, result, nil
}

func importConjugationRow(ds *Dataset, row []string) error {
	tierKey, label, verb, tense := cell(row, 0), cell(row, 1), cell(row, 2), cell(row, 3)
	switch {
	case tierKey == "":
		return fmt.Errorf("missing tier")
	case verb == "":
		return fmt.Errorf("missing verb")
	case tense == "":
		return fmt.Errorf("missing tense")
	}

	conj := make(Conjugations)
	for i, p := range Pronouns {
		if form := cell(row, 4+i); form != "" {
			conj[p] = form
		}
	}
	if len(conj) == 0 {
		return fmt.Errorf("no conjugated forms for %s (%s)", verb, tense)
	}

	tier, ok := ds.Tiers[tierKey]
	if !ok {
		tier = Tier{Label: tierKey, Verbs: make(map[string]Verb)}
	}
	if label != "" {
		tier.Label = label
	}
	if tier.Verbs[verb] == nil {
		tier.Verbs[verb] = make(Verb)
	}
	tier.Verbs[verb][tense] = conj
	ds.Tiers[tierKey] = tier
	return nil
}

func questionFromRow(row []string) (Question, error) {
	q := Question{
		Sentence: cell(row, 0),
		Verb:     cell(row, 1),
		Tense:    cell(row, 2),
		Group:    cell(row, 3),
		Tier:     cell(row, 4),
		Pronoun:  cell(row, 5),
	}
	switch {
	case q.Verb == "":
		return q, fmt.Errorf("missing verb")
	case q.Tense == "":
		return q, fmt.Errorf("missing tense")
	case q.Tier == "":
		return q, fmt.Errorf("missing tier")
	case q.Pronoun == "":
		return q, fmt.Errorf("missing pronoun")
	}
	return q, nil
}

// cell returns the trimmed value at index i; GetRows drops trailing empty cells.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
