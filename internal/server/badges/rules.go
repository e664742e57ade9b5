// Package badges holds the achievement catalogue and the interpreter that
// decides which rules a stats snapshot qualifies for. Rules are plain data;
// adding a badge means adding a Rule, not code.
package badges

import (
	"github.com/dmitrijs2005/aitutor/internal/server/models"
)

// Metric names a number read from a stats snapshot or the evaluation extra.
type Metric string

const (
	MetricLogins  Metric = "logins"
	MetricQuizzes Metric = "quizzes"
	MetricTopics  Metric = "topics"
	MetricGrade   Metric = "grade"
)

// Op is the comparison applied between a metric and a rule threshold.
type Op string

const (
	OpGTE Op = ">="
	OpEQ  Op = "=="
)

// Extra carries event context for rules that do not read stats, such as the
// grade of a quiz that was just submitted.
type Extra struct {
	Grade *float64 `json:"grade,omitempty"`
}

// Rule is one achievement definition.
type Rule struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Metric      Metric
	Op          Op
	Threshold   float64
}

// value reads the rule's metric. ok is false when the metric is absent, for
// example a grade rule evaluated without a grade.
func (r Rule) value(s *models.UserStats, extra *Extra) (v float64, ok bool) {
	switch r.Metric {
	case MetricLogins:
		return float64(s.TotalLogins), true
	case MetricQuizzes:
		return float64(s.QuizzesTaken), true
	case MetricTopics:
		return float64(distinct(s.Topics)), true
	case MetricGrade:
		if extra == nil || extra.Grade == nil {
			return 0, false
		}
		return *extra.Grade, true
	}
	return 0, false
}

// Qualifies reports whether the snapshot satisfies the rule.
func (r Rule) Qualifies(s *models.UserStats, extra *Extra) bool {
	if s == nil {
		s = &models.UserStats{}
	}
	v, ok := r.value(s, extra)
	if !ok {
		return false
	}
	switch r.Op {
	case OpGTE:
		return v >= r.Threshold
	case OpEQ:
		return v == r.Threshold
	}
	return false
}

// Badge builds the persisted badge for this rule.
func (r Rule) Badge(userID string) models.Badge {
	return models.Badge{UserID: userID, Name: r.Name, Description: r.Description, Icon: r.Icon}
}

func distinct(items []string) int {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		seen[it] = struct{}{}
	}
	return len(seen)
}
