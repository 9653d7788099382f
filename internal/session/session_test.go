package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/abhisek/conjugo/internal/dataset"
	"github.com/abhisek/conjugo/internal/deck"
	"github.com/abhisek/conjugo/internal/logging"
	"github.com/abhisek/conjugo/internal/mastery"
)

var (
	qParlerTu  = dataset.Question{Sentence: "Tu ___ trop vite.", Verb: "parler", Tense: "present", Group: "1er", Tier: "t1", Pronoun: "tu"}
	qAvoirJ    = dataset.Question{Sentence: "J'___ faim.", Verb: "avoir", Tense: "present", Group: "3e", Tier: "t1", Pronoun: "j'"}
	qEtreVous  = dataset.Question{Sentence: "Vous ___ prêts.", Verb: "être", Tense: "present", Group: "3e", Tier: "t1", Pronoun: "vous"}
	qMissingTn = dataset.Question{Sentence: "Il ___.", Verb: "parler", Tense: "passe", Group: "1er", Tier: "t1", Pronoun: "il"}
)

func testTiers() map[string]dataset.Tier {
	return map[string]dataset.Tier{
		"t1": {
			Label: "Essentiels",
			Verbs: map[string]dataset.Verb{
				"parler": {"present": dataset.Conjugations{
					"je": "parle", "tu": "parles", "il": "parle", "elle": "parle", "on": "parle",
					"nous": "parlons", "vous": "parlez", "ils": "parlent", "elles": "parlent",
				}},
				"avoir": {"present": dataset.Conjugations{
					"je": "ai", "tu": "as", "il": "a", "nous": "avons", "vous": "avez", "ils": "ont",
				}},
				"être": {"present": dataset.Conjugations{
					"je": "suis", "tu": "es", "il": "est", "nous": "sommes", "vous": "Êtes", "ils": "sont",
				}},
			},
		},
	}
}

// countingStore wraps a MemoryStore and counts writes.
type countingStore struct {
	*mastery.MemoryStore
	sets    int
	deletes int
	fail    bool
	failGet bool
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: mastery.NewMemoryStore()}
}

var errStore = errors.New("store unavailable")

func (s *countingStore) Get(ctx context.Context, key string) (int, bool, error) {
	if s.fail || s.failGet {
		return 0, false, errStore
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *countingStore) Set(ctx context.Context, key string, v int) error {
	s.sets++
	if s.fail {
		return errStore
	}
	return s.MemoryStore.Set(ctx, key, v)
}

func (s *countingStore) Delete(ctx context.Context, key string) error {
	s.deletes++
	if s.fail {
		return errStore
	}
	return s.MemoryStore.Delete(ctx, key)
}

func newTestController(t *testing.T, store mastery.Store, questions ...dataset.Question) (*Controller, *dataset.Dataset) {
	t.Helper()
	ds := &dataset.Dataset{Tiers: testTiers(), Questions: questions}
	c := New(ds, store,
		WithLogger(logging.Discard()),
		WithRand(rand.New(rand.NewPCG(1, 1))),
	)
	return c, ds
}

func start(t *testing.T, c *Controller, ds *dataset.Dataset) {
	t.Helper()
	if err := c.Start(context.Background(), deck.All(ds)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
}

func stored(t *testing.T, s mastery.Store, q dataset.Question) (int, bool) {
	t.Helper()
	v, ok, err := s.Get(context.Background(), mastery.Key(q.Verb, q.Tense, q.Pronoun))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	return v, ok
}

func TestSubmit_CorrectAnswerRewards(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qParlerTu)
	start(t, c, ds)

	if c.Phase() != PhaseAwaitingAnswer || !c.CheckVisible() || c.NextVisible() {
		t.Fatalf("after Start: phase = %v, check = %v, next = %v", c.Phase(), c.CheckVisible(), c.NextVisible())
	}
	if c.TableVisible() {
		t.Error("table visible before any check")
	}

	ok, err := c.Submit(context.Background(), "Parles ")
	if err != nil || !ok {
		t.Fatalf("Submit(\"Parles \") = %v, %v; want true, nil", ok, err)
	}
	if fb := c.Feedback(); fb.Text != MsgCorrect || fb.Severity != SeveritySuccess {
		t.Errorf("Feedback() = %+v", fb)
	}
	if v, _ := stored(t, store, qParlerTu); v != 1 {
		t.Errorf("score = %d, want 1", v)
	}
	if c.Phase() != PhaseAdvanceable || !c.NextVisible() || c.CheckVisible() {
		t.Errorf("phase = %v, next = %v, check = %v", c.Phase(), c.NextVisible(), c.CheckVisible())
	}
	if !c.TableVisible() {
		t.Error("table hidden after a check")
	}
	if got := c.MasteryDots(context.Background()); got != 1 {
		t.Errorf("MasteryDots() = %d, want 1", got)
	}
}

func TestSubmit_WrongAnswerRevealsAndPenalises(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qParlerTu)
	ctx := context.Background()
	_ = store.Set(ctx, mastery.Key("parler", "present", "tu"), 4)
	start(t, c, ds)

	ok, err := c.Submit(ctx, "parle")
	if err != nil || ok {
		t.Fatalf("Submit(\"parle\") = %v, %v; want false, nil", ok, err)
	}
	fb := c.Feedback()
	if fb.Severity != SeverityError || !strings.Contains(fb.Text, "parles") {
		t.Errorf("Feedback() = %+v, want error revealing parles", fb)
	}
	if want := "Incorrect. C'était : parles. Tapez la réponse pour continuer."; fb.Text != want {
		t.Errorf("Feedback().Text = %q, want %q", fb.Text, want)
	}
	if v, ok := stored(t, store, qParlerTu); !ok || v != 0 {
		t.Errorf("score = %d (present %v), want 0", v, ok)
	}
	if c.Phase() != PhaseCorrecting || c.Mode() != ModeCorrectionRequired {
		t.Errorf("phase = %v, mode = %v", c.Phase(), c.Mode())
	}
	if c.InputValue() != "" {
		t.Errorf("InputValue() = %q, want cleared", c.InputValue())
	}
	if c.CheckLabel() != LabelCorrect {
		t.Errorf("CheckLabel() = %q, want %q", c.CheckLabel(), LabelCorrect)
	}
	if !c.TableVisible() {
		t.Error("table hidden after a miss")
	}
}

func TestSubmit_CorrectionDoesNotReward(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qParlerTu)
	ctx := context.Background()
	start(t, c, ds)

	if _, err := c.Submit(ctx, "parlez"); err != nil {
		t.Fatal(err)
	}
	ok, err := c.Submit(ctx, "parles")
	if err != nil || !ok {
		t.Fatalf("Submit() = %v, %v", ok, err)
	}
	if c.Feedback().Text != MsgCorrected {
		t.Errorf("Feedback() = %q, want %q", c.Feedback().Text, MsgCorrected)
	}
	if v, _ := stored(t, store, qParlerTu); v != 0 {
		t.Errorf("score = %d, want 0 after a correction", v)
	}
	if c.Mode() != ModeStandard || c.Phase() != PhaseAdvanceable {
		t.Errorf("mode = %v, phase = %v", c.Mode(), c.Phase())
	}
	if c.CheckLabel() != LabelCheck {
		t.Errorf("CheckLabel() = %q", c.CheckLabel())
	}
	if s := c.Summary(); s.Corrected != 1 || s.FirstTry != 0 || s.Misses != 1 {
		t.Errorf("Summary() = %+v", s)
	}
}

func TestSubmit_RepeatedMissesWriteZeroEachTime(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qParlerTu)
	ctx := context.Background()
	start(t, c, ds)

	for i := range 3 {
		if _, err := c.Submit(ctx, "nope"); err != nil {
			t.Fatal(err)
		}
		if store.sets != i+1 {
			t.Errorf("after miss %d: %d writes, want %d", i+1, store.sets, i+1)
		}
		if c.Phase() != PhaseCorrecting {
			t.Errorf("phase = %v, want correcting", c.Phase())
		}
	}
}

func TestSubmit_RewardCapsAtMax(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qParlerTu, qParlerTu)
	ctx := context.Background()
	key := mastery.Key("parler", "present", "tu")
	_ = store.Set(ctx, key, 4)
	store.sets = 0
	start(t, c, ds)

	if _, err := c.Submit(ctx, "parles"); err != nil {
		t.Fatal(err)
	}
	if v, _ := stored(t, store, qParlerTu); v != 5 {
		t.Fatalf("score = %d, want 5", v)
	}
	// The second copy is now served on the fast path; nothing more is written.
	if err := c.Advance(ctx); err != nil {
		t.Fatal(err)
	}
	if !c.MasteredFastPath() {
		t.Fatal("expected fast path at score 5")
	}
	if store.sets != 1 {
		t.Errorf("writes = %d, want 1", store.sets)
	}
}

func TestAdvance_MasteredFastPath(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qParlerTu)
	ctx := context.Background()
	_ = store.Set(ctx, mastery.Key("parler", "present", "tu"), 5)
	start(t, c, ds)

	if !c.MasteredFastPath() {
		t.Fatal("MasteredFastPath() = false, want true")
	}
	if c.InputValue() != "parles" {
		t.Errorf("InputValue() = %q, want parles", c.InputValue())
	}
	if c.Phase() != PhaseAdvanceable || c.CheckVisible() || !c.NextVisible() {
		t.Errorf("phase = %v, check = %v, next = %v", c.Phase(), c.CheckVisible(), c.NextVisible())
	}
	if fb := c.Feedback(); fb.Text != MsgMastered || fb.Severity != SeveritySuccess {
		t.Errorf("Feedback() = %+v", fb)
	}
	if _, err := c.Submit(ctx, "parles"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Submit() on fast path error = %v, want ErrInvalidAction", err)
	}

	if err := c.Enter(ctx, c.InputValue()); !errors.Is(err, ErrDeckExhausted) {
		t.Errorf("Enter() error = %v, want ErrDeckExhausted", err)
	}
	if s := c.LastSummary(); s.Mastered != 1 || s.Questions != 1 {
		t.Errorf("LastSummary() = %+v", s)
	}
}

func TestAdvance_ResetsQuestionState(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qParlerTu, qEtreVous)
	ctx := context.Background()
	start(t, c, ds)

	if _, err := c.Submit(ctx, "wrong"); err != nil {
		t.Fatal(err)
	}
	first := *c.Current()
	if _, err := c.Submit(ctx, mustExpected(t, ds, first)); err != nil {
		t.Fatal(err)
	}
	if err := c.Advance(ctx); err != nil {
		t.Fatal(err)
	}

	if *c.Current() == first {
		t.Fatal("Advance() served the same question")
	}
	if c.Mode() != ModeStandard || c.TableVisible() || c.Feedback().Text != "" || c.InputValue() != "" {
		t.Errorf("state not reset: mode=%v table=%v feedback=%q input=%q",
			c.Mode(), c.TableVisible(), c.Feedback().Text, c.InputValue())
	}
}

func mustExpected(t *testing.T, ds *dataset.Dataset, q dataset.Question) string {
	t.Helper()
	form, err := ds.ExpectedForm(q)
	if err != nil {
		t.Fatal(err)
	}
	return form
}

func TestStart_EmptySelectionLeavesStateUntouched(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qParlerTu, qAvoirJ, qEtreVous)
	ctx := context.Background()
	start(t, c, ds)
	if _, err := c.Submit(ctx, "x"); err != nil {
		t.Fatal(err)
	}

	before := struct {
		q        dataset.Question
		phase    Phase
		mode     Mode
		remain   int
		progress float64
		id       string
	}{*c.Current(), c.Phase(), c.Mode(), c.Remaining(), c.Progress(), c.SessionID()}

	err := c.Start(ctx, deck.Selection{Tenses: []string{"futur"}, Groups: []string{"1er"}, Tiers: []string{"t1"}})
	if !errors.Is(err, deck.ErrEmptySelection) {
		t.Fatalf("Start() error = %v, want ErrEmptySelection", err)
	}

	after := struct {
		q        dataset.Question
		phase    Phase
		mode     Mode
		remain   int
		progress float64
		id       string
	}{*c.Current(), c.Phase(), c.Mode(), c.Remaining(), c.Progress(), c.SessionID()}
	if before != after {
		t.Errorf("state changed: before %+v, after %+v", before, after)
	}
}

func TestStart_EmptySelectionFromIdle(t *testing.T) {
	c, _ := newTestController(t, newCountingStore(), qParlerTu)
	err := c.Start(context.Background(), deck.Selection{})
	var ese *deck.EmptySelectionError
	if !errors.As(err, &ese) {
		t.Fatalf("Start() error = %v, want *EmptySelectionError", err)
	}
	if c.Phase() != PhaseIdle || c.Current() != nil || c.SessionID() != "" {
		t.Errorf("phase = %v, current = %v, id = %q", c.Phase(), c.Current(), c.SessionID())
	}
}

func TestProgress_MonotonicAndReachesOne(t *testing.T) {
	qs := []dataset.Question{qParlerTu, qAvoirJ, qEtreVous, qParlerTu, qAvoirJ}
	c, ds := newTestController(t, newCountingStore(), qs...)
	ctx := context.Background()

	if c.Progress() != 0 {
		t.Errorf("idle Progress() = %v, want 0", c.Progress())
	}
	start(t, c, ds)
	if c.InitialDeckSize() != len(qs) {
		t.Fatalf("InitialDeckSize() = %d, want %d", c.InitialDeckSize(), len(qs))
	}

	prev := c.Progress()
	for c.Remaining() > 0 {
		if err := c.Advance(ctx); err != nil {
			t.Fatalf("Advance() error = %v", err)
		}
		p := c.Progress()
		if p < prev {
			t.Errorf("progress decreased: %v -> %v", prev, p)
		}
		if (c.Remaining() == 0) != (p == 1.0) {
			t.Errorf("remaining = %d but progress = %v", c.Remaining(), p)
		}
		prev = p
	}
	if prev != 1.0 {
		t.Errorf("final progress = %v, want 1", prev)
	}

	if err := c.Advance(ctx); !errors.Is(err, ErrDeckExhausted) {
		t.Fatalf("Advance() on empty deck error = %v, want ErrDeckExhausted", err)
	}
	if c.Phase() != PhaseIdle || c.Current() != nil || c.InitialDeckSize() != 0 {
		t.Errorf("after exhaustion: phase = %v, current = %v, size = %d", c.Phase(), c.Current(), c.InitialDeckSize())
	}
	if c.LastSummary().Questions != len(qs) {
		t.Errorf("LastSummary().Questions = %d, want %d", c.LastSummary().Questions, len(qs))
	}
}

func TestScoreBounds_RandomSequence(t *testing.T) {
	qs := make([]dataset.Question, 60)
	for i := range qs {
		qs[i] = qParlerTu
	}
	store := newCountingStore()
	c, ds := newTestController(t, store, qs...)
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(5, 8))
	start(t, c, ds)

	for {
		before, _ := stored(t, store, qParlerTu)
		if c.Phase() == PhaseAwaitingAnswer {
			answer := "parles"
			if rng.IntN(3) == 0 {
				answer = "parlons"
			}
			ok, err := c.Submit(ctx, answer)
			if err != nil {
				t.Fatal(err)
			}
			after, _ := stored(t, store, qParlerTu)
			if after < mastery.MinScore || after > mastery.MaxScore {
				t.Fatalf("score %d out of bounds", after)
			}
			if ok && after < before {
				t.Fatalf("correct answer decreased score %d -> %d", before, after)
			}
			if !ok && after != 0 {
				t.Fatalf("wrong answer left score at %d", after)
			}
			if !ok {
				if _, err := c.Submit(ctx, "parles"); err != nil {
					t.Fatal(err)
				}
			}
		}
		if err := c.Advance(ctx); errors.Is(err, ErrDeckExhausted) {
			break
		} else if err != nil {
			t.Fatal(err)
		}
	}
}

func TestSubmit_ElidedPronoun(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qAvoirJ)
	start(t, c, ds)

	ok, err := c.Submit(context.Background(), "ai")
	if err != nil || !ok {
		t.Fatalf("Submit(ai) = %v, %v", ok, err)
	}
	v, present, _ := store.MemoryStore.Get(context.Background(), "mastery_avoir_present_j'")
	if !present || v != 1 {
		t.Errorf("mastery_avoir_present_j' = %d (present %v), want 1", v, present)
	}
	if c.Label() != "avoir (present, j')" {
		t.Errorf("Label() = %q", c.Label())
	}

	rows := c.Table()
	if len(rows) == 0 || rows[0].Label != "je / j'" || rows[0].Value != "ai" || !rows[0].Highlighted {
		t.Errorf("Table()[0] = %+v", rows)
	}
}

func TestSubmit_LocaleAwareLowercase(t *testing.T) {
	c, ds := newTestController(t, newCountingStore(), qEtreVous)
	start(t, c, ds)

	ok, err := c.Submit(context.Background(), "  ÊTES")
	if err != nil || !ok {
		t.Errorf("Submit(ÊTES) = %v, %v; want true", ok, err)
	}
}

func TestSubmit_WrongFeedbackIsLowercased(t *testing.T) {
	c, ds := newTestController(t, newCountingStore(), qEtreVous)
	start(t, c, ds)

	if _, err := c.Submit(context.Background(), "sommes"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(c.Feedback().Text, ": êtes.") {
		t.Errorf("Feedback() = %q, want lowercased form", c.Feedback().Text)
	}
}

func TestInvalidActions(t *testing.T) {
	store := newCountingStore()
	c, _ := newTestController(t, store, qParlerTu)
	ctx := context.Background()

	if _, err := c.Submit(ctx, "parles"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Submit() idle error = %v", err)
	}
	if err := c.ResetMastery(ctx, true); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("ResetMastery() idle error = %v", err)
	}
	if err := c.Advance(ctx); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Advance() idle error = %v", err)
	}
	if store.sets != 0 || store.deletes != 0 {
		t.Errorf("store touched: sets=%d deletes=%d", store.sets, store.deletes)
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("phase = %v", c.Phase())
	}
}

func TestSubmit_AfterAnswerIsInvalid(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qParlerTu)
	ctx := context.Background()
	start(t, c, ds)

	if _, err := c.Submit(ctx, "parles"); err != nil {
		t.Fatal(err)
	}
	writes := store.sets
	if _, err := c.Submit(ctx, "parles"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("second Submit() error = %v, want ErrInvalidAction", err)
	}
	if store.sets != writes {
		t.Error("invalid submit wrote to the store")
	}
}

func TestResetMastery(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qParlerTu)
	ctx := context.Background()
	_ = store.Set(ctx, mastery.Key("parler", "present", "tu"), 3)
	start(t, c, ds)

	if err := c.ResetMastery(ctx, false); err != nil {
		t.Fatal(err)
	}
	if v, ok := stored(t, store, qParlerTu); !ok || v != 3 {
		t.Errorf("unconfirmed reset changed score to %d (present %v)", v, ok)
	}

	if err := c.ResetMastery(ctx, true); err != nil {
		t.Fatal(err)
	}
	if _, ok := stored(t, store, qParlerTu); ok {
		t.Error("key still present after reset")
	}
	if got := c.MasteryDots(ctx); got != 0 {
		t.Errorf("MasteryDots() = %d, want 0", got)
	}
	if fb := c.Feedback(); fb.Text != MsgMasteryReset || fb.Severity != SeverityNeutral {
		t.Errorf("Feedback() = %+v", fb)
	}
	if c.Current() == nil || c.Current().Sentence != qParlerTu.Sentence || c.Phase() != PhaseAwaitingAnswer {
		t.Error("reset changed the current question")
	}
}

func TestEnter_Routing(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qParlerTu, qAvoirJ)
	ctx := context.Background()
	start(t, c, ds)

	first := *c.Current()
	if err := c.Enter(ctx, "wrong"); err != nil {
		t.Fatal(err)
	}
	if c.Phase() != PhaseCorrecting {
		t.Fatalf("Enter(wrong) phase = %v, want correcting", c.Phase())
	}
	if err := c.Enter(ctx, mustExpected(t, ds, first)); err != nil {
		t.Fatal(err)
	}
	if c.Phase() != PhaseAdvanceable {
		t.Fatalf("Enter(correct) phase = %v, want advanceable", c.Phase())
	}
	if err := c.Enter(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if *c.Current() == first {
		t.Error("Enter() on an answered question did not advance")
	}
}

func TestAdvance_MissingConjugation(t *testing.T) {
	c, ds := newTestController(t, newCountingStore(), qMissingTn)

	err := c.Start(context.Background(), deck.All(ds))
	if !errors.Is(err, dataset.ErrLookup) {
		t.Fatalf("Start() error = %v, want ErrLookup", err)
	}
	if c.Phase() != PhaseAdvanceable || c.Feedback().Severity != SeverityError {
		t.Errorf("phase = %v, feedback = %+v", c.Phase(), c.Feedback())
	}
	if c.Table() != nil {
		t.Error("Table() should be nil for a missing conjugation")
	}
	if err := c.Enter(context.Background(), ""); !errors.Is(err, ErrDeckExhausted) {
		t.Errorf("Enter() error = %v, want ErrDeckExhausted", err)
	}
}

func TestStoreFailuresAreBestEffort(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qParlerTu)
	ctx := context.Background()
	start(t, c, ds)
	store.fail = true

	if _, err := c.Submit(ctx, "faux"); err != nil {
		t.Fatalf("Submit() error = %v, want nil despite store failure", err)
	}
	if c.Phase() != PhaseCorrecting {
		t.Errorf("phase = %v", c.Phase())
	}
	if ok, err := c.Submit(ctx, "parles"); err != nil || !ok {
		t.Errorf("Submit() = %v, %v", ok, err)
	}
	if err := c.ResetMastery(ctx, true); err != nil {
		t.Errorf("ResetMastery() error = %v", err)
	}
	if got := c.MasteryDots(ctx); got != 0 {
		t.Errorf("MasteryDots() = %d, want 0 on read failure", got)
	}
}

func TestRewardSkipsWriteWhenScoreUnreadable(t *testing.T) {
	store := newCountingStore()
	c, ds := newTestController(t, store, qParlerTu)
	ctx := context.Background()
	key := mastery.Key(qParlerTu.Verb, qParlerTu.Tense, qParlerTu.Pronoun)
	if err := store.Set(ctx, key, 4); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	start(t, c, ds)
	store.failGet = true
	sets := store.sets

	if ok, err := c.Submit(ctx, "parles"); err != nil || !ok {
		t.Fatalf("Submit() = %v, %v", ok, err)
	}
	if store.sets != sets {
		t.Errorf("sets = %d, want %d: no write after a failed read", store.sets, sets)
	}

	store.failGet = false
	if got, _ := stored(t, store, qParlerTu); got != 4 {
		t.Errorf("stored score = %d, want 4", got)
	}
}

func TestRestart(t *testing.T) {
	c, ds := newTestController(t, newCountingStore(), qParlerTu, qAvoirJ)
	start(t, c, ds)

	c.Restart()
	if c.Phase() != PhaseIdle || c.Current() != nil || c.Remaining() != 0 || c.Progress() != 0 {
		t.Errorf("after Restart: phase=%v current=%v remaining=%d progress=%v",
			c.Phase(), c.Current(), c.Remaining(), c.Progress())
	}
	if c.Sentence() != "" || c.Label() != "" || c.Table() != nil {
		t.Error("idle controller should expose empty outputs")
	}

	start(t, c, ds)
	if c.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1 after restart", c.Remaining())
	}
}

func TestTable_HighlightsCurrentPronoun(t *testing.T) {
	c, ds := newTestController(t, newCountingStore(), qParlerTu)
	start(t, c, ds)

	rows := c.Table()
	if len(rows) != 6 {
		t.Fatalf("Table() has %d rows, want 6", len(rows))
	}
	for _, r := range rows {
		if r.Highlighted != (r.Label == "tu") {
			t.Errorf("row %q highlighted = %v", r.Label, r.Highlighted)
		}
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseIdle, "idle"},
		{PhaseAwaitingAnswer, "awaiting_answer"},
		{PhaseCorrecting, "correcting"},
		{PhaseAdvanceable, "advanceable"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestSummaryString(t *testing.T) {
	s := Summary{Questions: 5, FirstTry: 2, Corrected: 1, Mastered: 2}
	want := "5 questions · 2 du premier coup · 1 corrigées · 2 maîtrisées"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	s.Unavailable = 1
	if got := s.String(); got != want+" · 1 indisponibles" {
		t.Errorf("String() with unavailable = %q", got)
	}
}
