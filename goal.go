package symnmf

import (
	"fmt"
	"strings"

	"github.com/hupe1980/symnmf/errs"
)

// Goal selects the matrix printed by the inspection tool.
type Goal int

const (
	// GoalSym is the similarity matrix W.
	GoalSym Goal = iota
	// GoalDDG is the diagonal degree matrix D.
	GoalDDG
	// GoalNorm is the normalized similarity matrix.
	GoalNorm
	// GoalSymNMF is the factor matrix H.
	GoalSymNMF
)

var goalNames = [...]string{
	GoalSym:    "sym",
	GoalDDG:    "ddg",
	GoalNorm:   "norm",
	GoalSymNMF: "symnmf",
}

func (g Goal) String() string {
	if g < 0 || int(g) >= len(goalNames) {
		return fmt.Sprintf("Unknown(%d)", int(g))
	}
	return goalNames[g]
}

// ParseGoal maps "sym", "ddg", "norm" or "symnmf" to a Goal.
// Matching is exact; anything else is a usage error.
func ParseGoal(s string) (Goal, error) {
	for g, name := range goalNames {
		if s == name {
			return Goal(g), nil
		}
	}
	return 0, errs.Usage("symnmf.ParseGoal", "unknown goal %q, want one of %s", s, strings.Join(goalNames[:], ", "))
}
