package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/conjugo/internal/dataset"
	"github.com/spf13/cobra"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Validate or build dataset files",
}

var datasetValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a dataset against the schema and its own tables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.Load(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d questions, %d tiers, %d tenses, %d groups\n",
			len(ds.Questions), len(ds.Tiers), len(ds.Tenses()), len(ds.Groups()))

		problems := ds.Check()
		for _, p := range problems {
			fmt.Fprintf(out, "  question %d (%s %s %s): %v\n",
				p.Index, p.Question.Verb, p.Question.Tense, p.Question.Pronoun, p.Err)
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d question(s) cannot be resolved", len(problems))
		}
		fmt.Fprintln(out, "OK")
		return nil
	},
}

var datasetImportCmd = &cobra.Command{
	Use:   "import <workbook.xlsx>",
	Short: "Convert a spreadsheet into a dataset JSON file",
	Long: `Convert an .xlsx workbook into a dataset JSON file.

The "questions" sheet has the columns sentence, verb, tense, group, tier,
pronoun. The "conjugations" sheet has tier, tier label, verb, tense, then
one column per pronoun: je, tu, il, elle, on, nous, vous, ils, elles.
The first row of each sheet is a header.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := dataset.DefaultImportConfig()
		cfg.QuestionsSheet, _ = cmd.Flags().GetString("questions-sheet")
		cfg.ConjugationsSheet, _ = cmd.Flags().GetString("conjugations-sheet")
		cfg.StartRow, _ = cmd.Flags().GetInt("start-row")

		ds, result, err := dataset.ImportWorkbook(args[0], cfg)
		if err != nil {
			return err
		}

		errOut := cmd.ErrOrStderr()
		for _, e := range result.Errors {
			fmt.Fprintln(errOut, "skipped:", e)
		}
		fmt.Fprintf(errOut, "%d rows: %d tables, %d questions, %d skipped\n",
			result.TotalProcessed, result.Tables, result.Questions, result.Skipped)

		data, err := json.MarshalIndent(ds, "", "  ")
		if err != nil {
			return fmt.Errorf("encode dataset: %w", err)
		}
		if err := dataset.Validate(data); err != nil {
			return err
		}
		for _, p := range ds.Check() {
			fmt.Fprintf(errOut, "warning: question %d: %v\n", p.Index, p.Err)
		}

		if path, _ := cmd.Flags().GetString("output"); path != "" {
			if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			logger().Info("dataset imported", "source", args[0], "output", path, "questions", result.Questions)
			return nil
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	def := dataset.DefaultImportConfig()
	datasetImportCmd.Flags().StringP("output", "o", "", "Output JSON path (default: stdout)")
	datasetImportCmd.Flags().String("questions-sheet", def.QuestionsSheet, "Name of the questions sheet")
	datasetImportCmd.Flags().String("conjugations-sheet", def.ConjugationsSheet, "Name of the conjugations sheet")
	datasetImportCmd.Flags().Int("start-row", def.StartRow, "First data row (1-based)")

	datasetCmd.AddCommand(datasetValidateCmd)
	datasetCmd.AddCommand(datasetImportCmd)
}
