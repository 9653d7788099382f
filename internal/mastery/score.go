package mastery

import (
	"strconv"
	"strings"
)

const (
	// MinScore is the score of an item that was never answered or was just missed.
	MinScore = 0

	// MaxScore is the score at which an item counts as mastered.
	MaxScore = 5
)

// Clamp bounds a score to [MinScore, MaxScore].
func Clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// IsMastered reports whether score has reached MaxScore.
func IsMastered(score int) bool {
	return score >= MaxScore
}

// Reward returns the score after a correct answer. The second result is false
// when the score was already at MaxScore and nothing needs to be written.
func Reward(score int) (int, bool) {
	score = Clamp(score)
	if score >= MaxScore {
		return score, false
	}
	return score + 1, true
}

// Penalty returns the score after an incorrect answer. It is always MinScore,
// whatever the previous score was.
func Penalty() int {
	return MinScore
}

// ParseScore converts a stored string value the way a browser parseInt would:
// leading whitespace and an optional sign are accepted, digits are read up to
// the first non-digit, and anything unparsable yields ok == false.
func ParseScore(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Overflow: still a number, just far out of range.
		if strings.HasPrefix(s, "-") {
			return MinScore, true
		}
		return MaxScore, true
	}
	return Clamp(n), true
}

// Dots renders a score as MaxScore dots, filled up to the score.
func Dots(score int) string {
	score = Clamp(score)
	return strings.Repeat("●", score) + strings.Repeat("○", MaxScore-score)
}
