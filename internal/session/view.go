package session

import (
	"context"
	"fmt"

	"github.com/abhisek/conjugo/internal/dataset"
	"github.com/abhisek/conjugo/internal/mastery"
)

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Mode returns the current correction mode.
func (c *Controller) Mode() Mode { return c.mode }

// MasteredFastPath reports whether the current question was served pre-filled.
func (c *Controller) MasteredFastPath() bool { return c.masteredFastPath }

// Current returns the active question, or nil when idle.
func (c *Controller) Current() *dataset.Question { return c.current }

// SessionID identifies the running session in logs. Empty before Start.
func (c *Controller) SessionID() string { return c.id }

// Sentence returns the current sentence text.
func (c *Controller) Sentence() string {
	if c.current == nil {
		return ""
	}
	return c.current.Sentence
}

// Label returns the "verb (tense, pronoun)" line.
func (c *Controller) Label() string {
	if c.current == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s, %s)", c.current.Verb, c.current.Tense, c.current.Pronoun)
}

// Feedback returns the current feedback message.
func (c *Controller) Feedback() Feedback { return c.feedback }

// InputValue is what the answer box should hold: empty, the pre-filled
// mastered form, or the accepted answer.
func (c *Controller) InputValue() string { return c.input }

// CheckVisible reports whether the check action is offered.
func (c *Controller) CheckVisible() bool {
	return c.phase == PhaseAwaitingAnswer || c.phase == PhaseCorrecting
}

// NextVisible reports whether the next action is offered.
func (c *Controller) NextVisible() bool { return c.phase == PhaseAdvanceable }

// CheckLabel returns the check button caption.
func (c *Controller) CheckLabel() string {
	if c.mode == ModeCorrectionRequired {
		return LabelCorrect
	}
	return LabelCheck
}

// Progress returns the fraction of the deck already drawn, in [0, 1].
func (c *Controller) Progress() float64 {
	if c.initialDeckSize == 0 {
		return 0
	}
	return float64(c.initialDeckSize-len(c.deck)) / float64(c.initialDeckSize)
}

// Remaining returns the number of questions left in the deck.
func (c *Controller) Remaining() int { return len(c.deck) }

// InitialDeckSize returns the deck size captured at Start.
func (c *Controller) InitialDeckSize() int { return c.initialDeckSize }

// MasteryDots returns the current question's score as a filled-dot count.
// Read errors are logged and count as zero.
func (c *Controller) MasteryDots(ctx context.Context) int {
	if c.current == nil {
		return 0
	}
	score, err := mastery.Score(ctx, c.store, c.key())
	if err != nil {
		c.log().Error("read mastery", "key", c.key(), "error", err)
		return mastery.MinScore
	}
	return score
}

// TableVisible reports whether the conjugation table should be shown.
func (c *Controller) TableVisible() bool { return c.tableVisible }

// Table returns the conjugation table rows for the current question, or nil
// when there is no question or its table is missing.
func (c *Controller) Table() []dataset.TableRow {
	if c.current == nil {
		return nil
	}
	conj, err := c.ds.Conjugations(c.current.Tier, c.current.Verb, c.current.Tense)
	if err != nil {
		return nil
	}
	return dataset.TableRows(conj, c.current.Pronoun)
}

// Summary returns the counters of the running session.
func (c *Controller) Summary() Summary { return c.summary }

// LastSummary returns the counters of the most recently finished session.
func (c *Controller) LastSummary() Summary { return c.last }
