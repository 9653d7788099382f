package session

import "fmt"

// Phase is the controller's position in the question lifecycle.
type Phase int

const (
	PhaseIdle           Phase = iota // No active question
	PhaseAwaitingAnswer              // Question shown, check pending
	PhaseCorrecting                  // Wrong answer revealed, must be retyped
	PhaseAdvanceable                 // Answered or mastered, ready for the next question
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingAnswer:
		return "awaiting_answer"
	case PhaseCorrecting:
		return "correcting"
	case PhaseAdvanceable:
		return "advanceable"
	default:
		return "unknown"
	}
}

// Mode records whether the current question is being corrected.
type Mode int

const (
	ModeStandard Mode = iota
	ModeCorrectionRequired
)

func (m Mode) String() string {
	if m == ModeCorrectionRequired {
		return "correction_required"
	}
	return "standard"
}

// Severity colours a feedback message.
type Severity int

const (
	SeverityNeutral Severity = iota
	SeveritySuccess
	SeverityError
)

// Feedback is the message shown under the input.
type Feedback struct {
	Text     string
	Severity Severity
}

// User-facing messages.
const (
	MsgCorrect        = "Correct !"
	MsgCorrected      = "Bien corrigé !"
	MsgMastered       = "Maîtrisé ! (Entrée pour continuer)"
	MsgMasteryReset   = "Maîtrise réinitialisée."
	MsgSessionOver    = "Session terminée !"
	MsgEmptySelection = "Aucune question trouvée pour cette sélection."

	msgIncorrect = "Incorrect. C'était : %s. Tapez la réponse pour continuer."
	msgMissing   = "Conjugaison introuvable pour %s. Entrée pour passer."
)

// Button labels.
const (
	LabelCheck   = "Vérifier"
	LabelCorrect = "Corriger"
)

// Summary counts what happened during a session.
type Summary struct {
	Questions   int // questions drawn from the deck
	FirstTry    int // answered correctly without a miss
	Corrected   int // missed at least once
	Mastered    int // served on the mastered fast path
	Misses      int // wrong submissions, including repeats
	Unavailable int // questions whose conjugation could not be found
}

// String renders the summary as a single French status line.
func (s Summary) String() string {
	line := fmt.Sprintf("%d questions · %d du premier coup · %d corrigées · %d maîtrisées",
		s.Questions, s.FirstTry, s.Corrected, s.Mastered)
	if s.Unavailable > 0 {
		line += fmt.Sprintf(" · %d indisponibles", s.Unavailable)
	}
	return line
}
