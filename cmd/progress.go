package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/conjugo/internal/mastery"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Export or import mastery scores",
	Long: `Move mastery scores in and out of conjugo as a flat JSON object of
string values, e.g. {"mastery_parler_present_tu": "3"}.`,
}

var progressExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all stored scores as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, closeStore, err := openMasteryStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		var n int
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			n, err = exportProgressTo(cmd.Context(), st, f)
			if err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		} else {
			n, err = exportProgress(cmd.Context(), st, cmd.OutOrStdout())
			if err != nil {
				return err
			}
		}
		logger().Info("progress exported", "entries", n)
		return nil
	},
}

var progressImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load scores from a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		st, closeStore, err := openMasteryStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		imported, skipped, err := importProgress(cmd.Context(), st, f)
		if err != nil {
			return err
		}
		logger().Info("progress imported", "imported", imported, "skipped", skipped)
		fmt.Fprintf(cmd.OutOrStdout(), "%d score(s) importé(s), %d ignoré(s).\n", imported, skipped)
		return nil
	},
}

func init() {
	progressExportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")

	progressCmd.AddCommand(progressExportCmd)
	progressCmd.AddCommand(progressImportCmd)
}

// exportProgress writes every mastery entry of c as a JSON object of string
// scores and returns how many were written.
func exportProgress(ctx context.Context, c mastery.Catalog, w io.Writer) (int, error) {
	entries, err := c.List(ctx, mastery.KeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("list scores: %w", err)
	}

	obj := make(map[string]string, len(entries))
	for _, e := range entries {
		obj[e.Key] = strconv.Itoa(e.Score)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(obj); err != nil {
		return 0, fmt.Errorf("encode: %w", err)
	}
	return len(entries), nil
}

// exportProgressTo exports into w and closes it. A close error is returned
// when the export itself succeeded.
func exportProgressTo(ctx context.Context, c mastery.Catalog, w io.WriteCloser) (n int, err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()
	return exportProgress(ctx, c, w)
}

// importProgress reads a JSON object of scores and stores the mastery_
// entries. Values may be strings or numbers; they are parsed leniently and
// clamped. Other keys and unparseable values are skipped.
func importProgress(ctx context.Context, s mastery.Store, r io.Reader) (imported, skipped int, err error) {
	var obj map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&obj); err != nil {
		return 0, 0, fmt.Errorf("decode: %w", err)
	}

	for key, raw := range obj {
		if !strings.HasPrefix(key, mastery.KeyPrefix) {
			skipped++
			continue
		}
		score, ok := parseRawScore(raw)
		if !ok {
			logger().Warn("skipping unparseable score", "key", key, "value", string(raw))
			skipped++
			continue
		}
		if err := s.Set(ctx, key, score); err != nil {
			return imported, skipped, fmt.Errorf("store %s: %w", key, err)
		}
		imported++
	}
	return imported, skipped, nil
}

func parseRawScore(raw json.RawMessage) (int, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return mastery.ParseScore(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		// Out of float range, e.g. 1e400.
		if strings.HasPrefix(n.String(), "-") {
			return mastery.MinScore, true
		}
		return mastery.MaxScore, true
	}
	return mastery.ParseScore(strconv.FormatFloat(math.Trunc(f), 'f', 0, 64))
}
