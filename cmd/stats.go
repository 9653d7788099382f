package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/abhisek/conjugo/internal/dataset"
	"github.com/abhisek/conjugo/internal/mastery"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mastery scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		verb, _ := cmd.Flags().GetString("verb")
		all, _ := cmd.Flags().GetBool("all")

		ds, err := loadDataset()
		if err != nil {
			return err
		}
		st, closeStore, err := openMasteryStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		entries, err := st.List(cmd.Context(), mastery.KeyPrefix)
		if err != nil {
			return fmt.Errorf("list scores: %w", err)
		}

		writeStats(cmd.OutOrStdout(), ds, entries, verb, all)
		return nil
	},
}

func init() {
	statsCmd.Flags().String("verb", "", "Only show forms of this verb")
	statsCmd.Flags().Bool("all", false, "Include forms that were never practiced")
}

// formID is the (verb, tense, pronoun) identity a score is stored under.
type formID struct {
	Verb, Tense, Pronoun string
}

// datasetForms returns the distinct forms asked by ds, sorted.
func datasetForms(ds *dataset.Dataset) []formID {
	seen := make(map[formID]bool)
	var forms []formID
	for _, q := range ds.Questions {
		f := formID{Verb: q.Verb, Tense: q.Tense, Pronoun: q.Pronoun}
		if seen[f] {
			continue
		}
		seen[f] = true
		forms = append(forms, f)
	}
	sort.Slice(forms, func(i, j int) bool {
		a, b := forms[i], forms[j]
		if a.Verb != b.Verb {
			return a.Verb < b.Verb
		}
		if a.Tense != b.Tense {
			return a.Tense < b.Tense
		}
		return a.Pronoun < b.Pronoun
	})
	return forms
}

type statsTotals struct {
	Forms     int // forms listed
	Practiced int // forms with a stored score
	Mastered  int // forms at the maximum score
	Orphans   int // stored keys that match no form of the dataset
}

// writeStats prints one row per dataset form. Stored keys are matched by
// rebuilding them from the dataset since verbs and tenses may contain the
// key separator.
func writeStats(out io.Writer, ds *dataset.Dataset, entries []mastery.Entry, verb string, all bool) statsTotals {
	scores := make(map[string]int, len(entries))
	for _, e := range entries {
		scores[e.Key] = e.Score
	}

	var totals statsTotals
	known := make(map[string]bool)

	fmt.Fprintf(out, "%-16s  %-12s  %-8s  %s\n", "Verbe", "Temps", "Pronom", "Maîtrise")
	fmt.Fprintln(out, strings.Repeat("─", 50))

	for _, f := range datasetForms(ds) {
		key := mastery.Key(f.Verb, f.Tense, f.Pronoun)
		known[key] = true
		if verb != "" && f.Verb != verb {
			continue
		}
		score, ok := scores[key]
		if !ok && !all {
			continue
		}
		score = mastery.Clamp(score)

		totals.Forms++
		if ok {
			totals.Practiced++
		}
		if mastery.IsMastered(score) {
			totals.Mastered++
		}
		fmt.Fprintf(out, "%-16s  %-12s  %-8s  %s\n", f.Verb, f.Tense, f.Pronoun, mastery.Dots(score))
	}

	for key := range scores {
		if !known[key] {
			totals.Orphans++
		}
	}

	fmt.Fprintf(out, "\n%d formes · %d pratiquées · %d maîtrisées\n",
		totals.Forms, totals.Practiced, totals.Mastered)
	if totals.Orphans > 0 && verb == "" {
		fmt.Fprintf(out, "%d scores ne correspondent à aucune question de ce jeu de données\n", totals.Orphans)
	}
	return totals
}
