package oracle

import "strings"

// Answer is the closed set of values stored as an observed answer.
type Answer string

const (
	AnswerA Answer = "A"
	AnswerB Answer = "B"
	AnswerC Answer = "C"
	AnswerD Answer = "D"

	// AnswerError marks a response that could not be classified as a
	// single letter, and any transport or service failure.
	AnswerError Answer = "ERROR"

	// AnswerEmpty is the pre-evaluation state.
	AnswerEmpty Answer = ""
)

// Normalize maps raw model output to an Answer. Only an exact single
// letter A-D (after trimming and uppercasing) is accepted; everything
// else, including hedging text and empty output, becomes AnswerError.
func Normalize(raw string) Answer {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch s {
	case "A":
		return AnswerA
	case "B":
		return AnswerB
	case "C":
		return AnswerC
	case "D":
		return AnswerD
	default:
		return AnswerError
	}
}

// Matches reports whether the answer equals the expected ground truth.
// AnswerError and AnswerEmpty never match.
func (a Answer) Matches(expected string) bool {
	switch a {
	case AnswerA, AnswerB, AnswerC, AnswerD:
		return string(a) == strings.ToUpper(strings.TrimSpace(expected))
	default:
		return false
	}
}

func (a Answer) String() string {
	return string(a)
}
