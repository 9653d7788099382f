package dataset

import (
	"errors"
	"fmt"
	"sort"
)

// JElided is the elided first-person pronoun. It has no entry of its own in
// conjugation tables; lookups go through je.
const JElided = "j'"

// Pronouns lists the canonical pronoun keys of a conjugation table.
var Pronouns = []string{"je", "tu", "il", "elle", "on", "nous", "vous", "ils", "elles"}

// Conjugations maps a pronoun key to its conjugated form for one verb and tense.
type Conjugations map[string]string

// Verb maps a tense to its conjugations.
type Verb map[string]Conjugations

// Tier is a named bucket of verbs.
type Tier struct {
	Label string          `json:"label"`
	Verbs map[string]Verb `json:"verbs"`
}

// Question is a single fill-in-the-blank item.
type Question struct {
	Sentence string `json:"s"`
	Verb     string `json:"v"`
	Tense    string `json:"t"`
	Group    string `json:"g"`
	Tier     string `json:"tier"`
	Pronoun  string `json:"p"`
}

// Dataset is the immutable drill configuration: tiers of conjugation tables
// plus the flat list of questions that reference them.
type Dataset struct {
	Tiers     map[string]Tier `json:"tiers"`
	Questions []Question      `json:"questions"`
}

// ErrLookup is matched by every *LookupError.
var ErrLookup = errors.New("conjugation not found")

// LookupError reports a tier, verb, tense or pronoun missing from the tables.
type LookupError struct {
	Tier    string
	Verb    string
	Tense   string
	Pronoun string
	Missing string // which level was missing: "tier", "verb", "tense" or "pronoun"
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("conjugation not found: %s %q missing (tier=%q verb=%q tense=%q pronoun=%q)",
		e.Missing, e.value(), e.Tier, e.Verb, e.Tense, e.Pronoun)
}

func (e *LookupError) Is(target error) bool { return target == ErrLookup }

func (e *LookupError) value() string {
	switch e.Missing {
	case "tier":
		return e.Tier
	case "verb":
		return e.Verb
	case "tense":
		return e.Tense
	default:
		return e.Pronoun
	}
}

// LookupPronoun returns the table key used for pronoun: je for j', the
// pronoun itself otherwise.
func LookupPronoun(pronoun string) string {
	if pronoun == JElided {
		return "je"
	}
	return pronoun
}

// ResolveForm returns the conjugated form for pronoun, substituting je for j'.
// It is the only lookup used for pre-filling, validation and tables, so all
// three always agree.
func ResolveForm(conj Conjugations, pronoun string) (string, error) {
	key := LookupPronoun(pronoun)
	form, ok := conj[key]
	if !ok {
		return "", &LookupError{Pronoun: pronoun, Missing: "pronoun"}
	}
	return form, nil
}

// Conjugations returns the table for a verb and tense within a tier.
func (d *Dataset) Conjugations(tier, verb, tense string) (Conjugations, error) {
	t, ok := d.Tiers[tier]
	if !ok {
		return nil, &LookupError{Tier: tier, Verb: verb, Tense: tense, Missing: "tier"}
	}
	v, ok := t.Verbs[verb]
	if !ok {
		return nil, &LookupError{Tier: tier, Verb: verb, Tense: tense, Missing: "verb"}
	}
	c, ok := v[tense]
	if !ok {
		return nil, &LookupError{Tier: tier, Verb: verb, Tense: tense, Missing: "tense"}
	}
	return c, nil
}

// ExpectedForm returns the answer for q.
func (d *Dataset) ExpectedForm(q Question) (string, error) {
	conj, err := d.Conjugations(q.Tier, q.Verb, q.Tense)
	if err != nil {
		return "", err
	}
	form, err := ResolveForm(conj, q.Pronoun)
	if err != nil {
		var le *LookupError
		if errors.As(err, &le) {
			le.Tier, le.Verb, le.Tense = q.Tier, q.Verb, q.Tense
		}
		return "", err
	}
	return form, nil
}

// Tenses returns the distinct tenses used by questions, sorted.
func (d *Dataset) Tenses() []string {
	return d.distinct(func(q Question) string { return q.Tense })
}

// Groups returns the distinct verb groups used by questions, sorted.
func (d *Dataset) Groups() []string {
	return d.distinct(func(q Question) string { return q.Group })
}

// TierKeys returns the tier keys, sorted.
func (d *Dataset) TierKeys() []string {
	keys := make([]string, 0, len(d.Tiers))
	for k := range d.Tiers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TierLabel returns the display label of a tier, falling back to its key.
func (d *Dataset) TierLabel(key string) string {
	if t, ok := d.Tiers[key]; ok && t.Label != "" {
		return t.Label
	}
	return key
}

func (d *Dataset) distinct(field func(Question) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range d.Questions {
		v := field(q)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Problem is a referential inconsistency found by Check.
type Problem struct {
	Index    int // question index
	Question Question
	Err      error
}

// Check resolves every question against the tables and returns the ones that
// would fail at drill time. A clean dataset returns nil.
func (d *Dataset) Check() []Problem {
	var problems []Problem
	for i, q := range d.Questions {
		if _, err := d.ExpectedForm(q); err != nil {
			problems = append(problems, Problem{Index: i, Question: q, Err: err})
		}
	}
	return problems
}
