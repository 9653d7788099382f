package cmd

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/abhisek/conjugo/internal/mastery"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset mastery scores",
	Long: `Delete stored mastery scores.

Reset a single form with --verb, --tense and --pronoun, or every score
with --all. Asks for confirmation unless --yes is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verb, _ := cmd.Flags().GetString("verb")
		tense, _ := cmd.Flags().GetString("tense")
		pronoun, _ := cmd.Flags().GetString("pronoun")
		all, _ := cmd.Flags().GetBool("all")
		yes, _ := cmd.Flags().GetBool("yes")

		target, err := resetTarget(verb, tense, pronoun, all)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !yes {
			in := bufio.NewScanner(cmd.InOrStdin())
			if !confirm(in, out, target.question()) {
				fmt.Fprintln(out, "Annulé.")
				return nil
			}
		}

		st, closeStore, err := openMasteryStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cmd.Context()
		var n int64
		if target.all {
			n, err = st.DeleteAll(ctx, mastery.KeyPrefix)
		} else {
			var ok bool
			if _, ok, err = st.Get(ctx, target.key); err == nil && ok {
				err = st.Delete(ctx, target.key)
				n = 1
			}
		}
		if err != nil {
			return fmt.Errorf("reset: %w", err)
		}

		logger().Info("mastery reset", "key", target.key, "all", target.all, "deleted", n)
		fmt.Fprintf(out, "%d score(s) supprimé(s).\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().String("verb", "", "Verb of the form to reset")
	resetCmd.Flags().String("tense", "", "Tense of the form to reset")
	resetCmd.Flags().String("pronoun", "", "Pronoun of the form to reset")
	resetCmd.Flags().Bool("all", false, "Reset every stored score")
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

type resetSpec struct {
	all bool
	key string
}

func (r resetSpec) question() string {
	if r.all {
		return "Supprimer tous les scores de maîtrise ?"
	}
	return fmt.Sprintf("Supprimer le score %s ?", r.key)
}

var errResetTarget = errors.New("use --all, or --verb with --tense and --pronoun")

func resetTarget(verb, tense, pronoun string, all bool) (resetSpec, error) {
	single := verb != "" || tense != "" || pronoun != ""
	switch {
	case all && single:
		return resetSpec{}, fmt.Errorf("--all cannot be combined with --verb, --tense or --pronoun")
	case all:
		return resetSpec{all: true}, nil
	case verb == "" || tense == "" || pronoun == "":
		return resetSpec{}, errResetTarget
	}
	return resetSpec{key: mastery.Key(verb, tense, pronoun)}, nil
}
