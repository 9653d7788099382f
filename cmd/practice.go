package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/conjugo/internal/dataset"
	"github.com/abhisek/conjugo/internal/deck"
	"github.com/abhisek/conjugo/internal/mastery"
	"github.com/abhisek/conjugo/internal/session"
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Drill in line mode, without the full-screen interface",
	Long: `Run a drill session on plain stdin/stdout.

Type the missing verb form and press Enter. Type :reset to clear the
mastery score of the current form, :quit to stop.`,
	RunE: runPractice,
}

func init() {
	practiceCmd.Flags().StringSlice("tense", nil, "Tenses to include (default: all)")
	practiceCmd.Flags().StringSlice("group", nil, "Verb groups to include (default: all)")
	practiceCmd.Flags().StringSlice("tier", nil, "Tiers to include (default: all)")
}

func runPractice(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset()
	if err != nil {
		return err
	}

	st, closeStore, err := openMasteryStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	sel := deck.All(ds)
	if v, _ := cmd.Flags().GetStringSlice("tense"); len(v) > 0 {
		sel.Tenses = v
	}
	if v, _ := cmd.Flags().GetStringSlice("group"); len(v) > 0 {
		sel.Groups = v
	}
	if v, _ := cmd.Flags().GetStringSlice("tier"); len(v) > 0 {
		sel.Tiers = v
	}

	c := newController(ds, st)
	return practiceLoop(cmd.Context(), c, sel, cmd.InOrStdin(), cmd.OutOrStdout())
}

const (
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiDim   = "\033[2m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// practiceLoop drives c from line input until the deck runs out, the input
// closes or the user types :quit.
func practiceLoop(ctx context.Context, c *session.Controller, sel deck.Selection, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	if err := c.Start(ctx, sel); err != nil && !errors.Is(err, dataset.ErrLookup) {
		if errors.Is(err, deck.ErrEmptySelection) {
			fmt.Fprintln(out, colorize(session.SeverityError, session.MsgEmptySelection))
		}
		return err
	}
	printQuestion(ctx, out, c)

	for {
		if err := ctx.Err(); err != nil {
			c.Restart()
			return err
		}

		if c.Phase() == session.PhaseAdvanceable {
			fmt.Fprint(out, ansiDim+"(Entrée pour continuer) "+ansiReset)
		} else {
			fmt.Fprintf(out, "%s > ", c.CheckLabel())
		}
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(entrée fermée)")
			c.Restart()
			return scanner.Err()
		}
		line := scanner.Text()

		switch strings.TrimSpace(line) {
		case ":quit":
			c.Restart()
			fmt.Fprintln(out, "Session interrompue.")
			return nil
		case ":reset":
			ok := confirm(scanner, out, fmt.Sprintf("Réinitialiser la maîtrise de %s ?", c.Label()))
			if err := c.ResetMastery(ctx, ok); err != nil {
				return err
			}
			if ok {
				printFeedback(out, c)
			}
			continue
		}

		before := c.Summary().Questions
		err := c.Enter(ctx, line)
		switch {
		case errors.Is(err, session.ErrDeckExhausted):
			fmt.Fprintf(out, "\n%s── %s ──%s\n", ansiBold, session.MsgSessionOver, ansiReset)
			fmt.Fprintln(out, c.LastSummary().String())
			return nil
		case errors.Is(err, session.ErrInvalidAction):
			continue
		}

		if c.Summary().Questions != before {
			printQuestion(ctx, out, c)
			continue
		}
		printFeedback(out, c)
		if c.TableVisible() {
			printTable(out, c.Table())
		}
	}
}

func printQuestion(ctx context.Context, out io.Writer, c *session.Controller) {
	done := c.InitialDeckSize() - c.Remaining()
	fmt.Fprintf(out, "\n── Question %d/%d ──\n", done, c.InitialDeckSize())
	fmt.Fprintln(out, ansiBold+c.Sentence()+ansiReset)
	fmt.Fprintf(out, "%s  %s\n", c.Label(), mastery.Dots(c.MasteryDots(ctx)))
	if c.MasteredFastPath() {
		fmt.Fprintf(out, "→ %s\n", c.InputValue())
	}
	printFeedback(out, c)
}

func printFeedback(out io.Writer, c *session.Controller) {
	fb := c.Feedback()
	if fb.Text == "" {
		return
	}
	fmt.Fprintln(out, colorize(fb.Severity, fb.Text))
}

func printTable(out io.Writer, rows []dataset.TableRow) {
	for _, r := range rows {
		marker := "  "
		if r.Highlighted {
			marker = "▸ "
		}
		fmt.Fprintf(out, "%s%-16s %s\n", marker, r.Label, r.Value)
	}
}

func colorize(sev session.Severity, text string) string {
	switch sev {
	case session.SeveritySuccess:
		return ansiGreen + text + ansiReset
	case session.SeverityError:
		return ansiRed + text + ansiReset
	default:
		return ansiDim + text + ansiReset
	}
}
