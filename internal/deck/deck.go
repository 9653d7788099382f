// Package deck builds the filtered, shuffled question sequence for a drill
// session.
package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/abhisek/conjugo/internal/dataset"
)

// ErrEmptySelection is matched by every *EmptySelectionError.
var ErrEmptySelection = errors.New("no question matches the selection")

// Selection is the user's filter choice. A question is kept when its tense,
// group and tier are each in the corresponding set.
type Selection struct {
	Tenses []string
	Groups []string
	Tiers  []string
}

// EmptySelectionError is returned when no question matches a Selection.
type EmptySelectionError struct {
	Selection Selection
}

func (e *EmptySelectionError) Error() string {
	return fmt.Sprintf("%v (tenses=%s groups=%s tiers=%s)", ErrEmptySelection,
		strings.Join(e.Selection.Tenses, ","),
		strings.Join(e.Selection.Groups, ","),
		strings.Join(e.Selection.Tiers, ","))
}

func (e *EmptySelectionError) Is(target error) bool { return target == ErrEmptySelection }

// Matches reports whether q passes the selection filter.
func (s Selection) Matches(q dataset.Question) bool {
	return slices.Contains(s.Tenses, q.Tense) &&
		slices.Contains(s.Groups, q.Group) &&
		slices.Contains(s.Tiers, q.Tier)
}

// All returns a Selection with every tense, group and tier of ds checked.
func All(ds *dataset.Dataset) Selection {
	return Selection{
		Tenses: ds.Tenses(),
		Groups: ds.Groups(),
		Tiers:  ds.TierKeys(),
	}
}

// Build filters questions by sel and returns them in uniformly random order.
// The input slice is never modified. A nil rng uses the global source.
func Build(questions []dataset.Question, sel Selection, rng *rand.Rand) ([]dataset.Question, error) {
	var out []dataset.Question
	for _, q := range questions {
		if sel.Matches(q) {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, &EmptySelectionError{Selection: sel}
	}
	Shuffle(out, rng)
	return out, nil
}

// Shuffle permutes qs in place with Fisher-Yates.
func Shuffle(qs []dataset.Question, rng *rand.Rand) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(qs) - 1; i > 0; i-- {
		j := intN(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}
