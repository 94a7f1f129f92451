package wizard

import (
	"math/rand"
	"strconv"
	"strings"
)

// Challenge is the arithmetic check gating submission. It is a low-friction
// bot deterrent, not a security boundary.
type Challenge struct {
	OperandA int
	OperandB int
}

// NewChallenge draws two operands uniformly from [1,20].
func NewChallenge() Challenge {
	return Challenge{
		OperandA: rand.Intn(20) + 1,
		OperandB: rand.Intn(20) + 1,
	}
}

// Expected is the answer the challenge accepts.
func (c Challenge) Expected() int { return c.OperandA + c.OperandB }

// CheckAnswer verifies the challenge answer. A wrong or unparseable answer
// draws a fresh challenge; a correct one marks the wizard verified.
func (w *Wizard) CheckAnswer(answer string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || n != w.Challenge.Expected() {
		w.Challenge = NewChallenge()
		return false
	}
	w.Verified = true
	return true
}
