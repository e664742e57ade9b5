package badges

import "github.com/dmitrijs2005/aitutor/internal/server/models"

var catalogue = []Rule{
	{ID: "first_login", Name: "Welcome Aboard!", Description: "Thanks for joining AI Tutor!", Icon: "🎉", Metric: MetricLogins, Op: OpGTE, Threshold: 1},
	{ID: "first_quiz", Name: "First Quiz!", Description: "Completed your first quiz.", Icon: "📘", Metric: MetricQuizzes, Op: OpGTE, Threshold: 1},
	{ID: "five_quizzes", Name: "Quiz Master", Description: "Completed 5 quizzes.", Icon: "🥇", Metric: MetricQuizzes, Op: OpGTE, Threshold: 5},
	{ID: "perfect_score", Name: "Perfectionist", Description: "Scored 100% on a quiz.", Icon: "💯", Metric: MetricGrade, Op: OpEQ, Threshold: 100},
	{ID: "three_topics", Name: "Explorer", Description: "Tried 3 different topics.", Icon: "🧭", Metric: MetricTopics, Op: OpGTE, Threshold: 3},
	{ID: "six_topics", Name: "World Traveler", Description: "Tried 6 different topics.", Icon: "🌎", Metric: MetricTopics, Op: OpGTE, Threshold: 6},
	{ID: "twelve_topics", Name: "Star Gazer", Description: "Tried 12 different topics.", Icon: "🔭", Metric: MetricTopics, Op: OpGTE, Threshold: 12},
	{ID: "five_logins", Name: "Habit Builder", Description: "Logged in 5 days.", Icon: "📆", Metric: MetricLogins, Op: OpGTE, Threshold: 5},
}

// Catalogue returns a copy of the built-in rules in evaluation order.
func Catalogue() []Rule {
	out := make([]Rule, len(catalogue))
	copy(out, catalogue)
	return out
}

// Evaluate returns the rules in order that qualify for the snapshot and whose
// names are not in held.
func Evaluate(rules []Rule, s *models.UserStats, extra *Extra, held map[string]struct{}) []Rule {
	var out []Rule
	for _, r := range rules {
		if _, ok := held[r.Name]; ok {
			continue
		}
		if r.Qualifies(s, extra) {
			out = append(out, r)
		}
	}
	return out
}
