// Package session implements the drill session controller: it owns the
// deck, the current question and its answer state, and reads and writes
// mastery scores through a mastery.Store.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/conjugo/internal/dataset"
	"github.com/abhisek/conjugo/internal/deck"
	"github.com/abhisek/conjugo/internal/mastery"
)

var (
	// ErrDeckExhausted is returned by Advance when no question is left. It
	// ends the session; it is not a failure.
	ErrDeckExhausted = errors.New("deck exhausted")

	// ErrInvalidAction is returned when an operation is not allowed in the
	// current phase. The controller state is left untouched.
	ErrInvalidAction = errors.New("invalid action")
)

// Controller drives one drill session at a time.
type Controller struct {
	ds     *dataset.Dataset
	store  mastery.Store
	logger *slog.Logger
	locale language.Tag
	rng    *rand.Rand

	id              string
	deck            []dataset.Question
	initialDeckSize int

	current          *dataset.Question
	expected         string
	phase            Phase
	mode             Mode
	masteredFastPath bool
	missed           bool
	feedback         Feedback
	input            string
	tableVisible     bool

	summary Summary
	last    Summary
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithLocale sets the language used to lowercase answers.
func WithLocale(tag language.Tag) Option {
	return func(c *Controller) { c.locale = tag }
}

// WithRand sets the random source used to shuffle decks.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// New creates an idle controller over ds, persisting scores to store.
func New(ds *dataset.Dataset, store mastery.Store, opts ...Option) *Controller {
	c := &Controller{
		ds:     ds,
		store:  store,
		logger: slog.Default(),
		locale: language.French,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Start builds a deck from sel and shows its first question. On an empty
// selection the *deck.EmptySelectionError is returned and nothing changes.
func (c *Controller) Start(ctx context.Context, sel deck.Selection) error {
	d, err := deck.Build(c.ds.Questions, sel, c.rng)
	if err != nil {
		c.log().Info("session not started", "error", err)
		return err
	}

	c.clearSession()
	c.id = uuid.NewString()
	c.deck = d
	c.initialDeckSize = len(d)
	c.log().Info("session started",
		"questions", c.initialDeckSize,
		"tenses", sel.Tenses,
		"groups", sel.Groups,
		"tiers", sel.Tiers)

	return c.Advance(ctx)
}

// Advance moves to the next question. When the deck is empty it ends the
// session, returns the controller to idle and returns ErrDeckExhausted.
func (c *Controller) Advance(ctx context.Context) error {
	if c.phase == PhaseIdle && c.deck == nil {
		c.log().Warn("advance without a session", "error", ErrInvalidAction)
		return ErrInvalidAction
	}
	if len(c.deck) == 0 {
		c.log().Info("session finished",
			"questions", c.summary.Questions,
			"first_try", c.summary.FirstTry,
			"corrected", c.summary.Corrected,
			"mastered", c.summary.Mastered)
		c.last = c.summary
		c.clearSession()
		return ErrDeckExhausted
	}

	q := c.deck[len(c.deck)-1]
	c.deck = c.deck[:len(c.deck)-1]
	c.summary.Questions++

	c.current = &q
	c.mode = ModeStandard
	c.missed = false
	c.tableVisible = false
	c.feedback = Feedback{}
	c.input = ""

	score, err := mastery.Score(ctx, c.store, c.key())
	if err != nil {
		c.log().Error("read mastery", "key", c.key(), "error", err)
	}
	c.masteredFastPath = mastery.IsMastered(score)

	c.expected, err = c.ds.ExpectedForm(q)
	if err != nil {
		c.log().Error("conjugation lookup failed", "question", c.Label(), "error", err)
		c.masteredFastPath = false
		c.summary.Unavailable++
		c.feedback = Feedback{Text: fmt.Sprintf(msgMissing, c.Label()), Severity: SeverityError}
		c.phase = PhaseAdvanceable
		return err
	}

	if c.masteredFastPath {
		c.summary.Mastered++
		c.input = c.expected
		c.feedback = Feedback{Text: MsgMastered, Severity: SeveritySuccess}
		c.phase = PhaseAdvanceable
	} else {
		c.phase = PhaseAwaitingAnswer
	}

	c.log().Debug("question served",
		"key", c.key(),
		"score", score,
		"fast_path", c.masteredFastPath,
		"remaining", len(c.deck))
	return nil
}

// Submit checks raw against the current question's expected form. It
// reports whether the answer was correct. Outside AwaitingAnswer and
// Correcting it returns ErrInvalidAction.
func (c *Controller) Submit(ctx context.Context, raw string) (bool, error) {
	if c.current == nil || (c.phase != PhaseAwaitingAnswer && c.phase != PhaseCorrecting) {
		c.log().Warn("submit ignored", "phase", c.phase.String(), "error", ErrInvalidAction)
		return false, ErrInvalidAction
	}

	answer := c.normalize(raw)
	expected := c.normalize(c.expected)
	key := c.key()
	fromCorrecting := c.mode == ModeCorrectionRequired

	c.tableVisible = true

	if answer == expected {
		c.input = raw
		if fromCorrecting {
			c.feedback = Feedback{Text: MsgCorrected, Severity: SeveritySuccess}
		} else {
			c.feedback = Feedback{Text: MsgCorrect, Severity: SeveritySuccess}
			c.reward(ctx, key)
		}
		if c.missed {
			c.summary.Corrected++
		} else {
			c.summary.FirstTry++
		}
		c.mode = ModeStandard
		c.phase = PhaseAdvanceable
		c.log().Debug("answer accepted", "key", key, "correcting", fromCorrecting)
		return true, nil
	}

	c.feedback = Feedback{Text: fmt.Sprintf(msgIncorrect, expected), Severity: SeverityError}
	if err := c.store.Set(ctx, key, mastery.Penalty()); err != nil {
		c.log().Error("persist penalty", "key", key, "error", err)
	}
	c.input = ""
	c.missed = true
	c.summary.Misses++
	c.mode = ModeCorrectionRequired
	c.phase = PhaseCorrecting
	c.log().Debug("answer rejected", "key", key, "correcting", fromCorrecting)
	return false, nil
}

func (c *Controller) reward(ctx context.Context, key string) {
	score, err := mastery.Score(ctx, c.store, key)
	if err != nil {
		c.log().Error("read mastery", "key", key, "error", err)
		return
	}
	next, changed := mastery.Reward(score)
	if !changed {
		return
	}
	if err := c.store.Set(ctx, key, next); err != nil {
		c.log().Error("persist reward", "key", key, "error", err)
	}
}

// Enter is the Enter-key action: advance when the current question is
// mastered or already answered, check the answer otherwise.
func (c *Controller) Enter(ctx context.Context, raw string) error {
	if c.masteredFastPath || c.phase == PhaseAdvanceable {
		return c.Advance(ctx)
	}
	_, err := c.Submit(ctx, raw)
	return err
}

// ResetMastery deletes the stored score of the current question when
// confirmed. The deck and question are not affected.
func (c *Controller) ResetMastery(ctx context.Context, confirmed bool) error {
	if c.current == nil {
		c.log().Warn("reset ignored", "error", ErrInvalidAction)
		return ErrInvalidAction
	}
	if !confirmed {
		return nil
	}
	key := c.key()
	if err := c.store.Delete(ctx, key); err != nil {
		c.log().Error("delete mastery", "key", key, "error", err)
	}
	c.feedback = Feedback{Text: MsgMasteryReset, Severity: SeverityNeutral}
	c.log().Info("mastery reset", "key", key)
	return nil
}

// Restart abandons the running session and returns to idle.
func (c *Controller) Restart() {
	if c.current != nil {
		c.log().Info("session abandoned", "remaining", len(c.deck))
	}
	c.clearSession()
}

func (c *Controller) clearSession() {
	c.deck = nil
	c.initialDeckSize = 0
	c.current = nil
	c.expected = ""
	c.phase = PhaseIdle
	c.mode = ModeStandard
	c.masteredFastPath = false
	c.missed = false
	c.feedback = Feedback{}
	c.input = ""
	c.tableVisible = false
	c.summary = Summary{}
}

func (c *Controller) normalize(s string) string {
	return cases.Lower(c.locale).String(strings.TrimSpace(s))
}

func (c *Controller) key() string {
	if c.current == nil {
		return ""
	}
	return mastery.Key(c.current.Verb, c.current.Tense, c.current.Pronoun)
}

func (c *Controller) log() *slog.Logger {
	if c.id == "" {
		return c.logger
	}
	return c.logger.With("session_id", c.id)
}
