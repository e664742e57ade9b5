package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/aitutor/internal/common"
	"github.com/dmitrijs2005/aitutor/internal/server/badges"
)

func (a *App) Usage(ctx context.Context) error {
	n, err := a.api.Usage(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Requests today: %d\n", n)
	return nil
}

// Check spends one request of today's quota, the way a tutor call would.
func (a *App) Check(ctx context.Context) error {
	allowed, err := a.api.CheckUsage(ctx)
	if err != nil {
		return err
	}
	if !allowed {
		fmt.Fprintln(a.out, "Daily limit reached")
		return nil
	}
	fmt.Fprintln(a.out, "Allowed")
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	s, err := a.api.Stats(ctx)
	if err != nil {
		return err
	}
	topics := "-"
	if len(s.Topics) > 0 {
		topics = strings.Join(s.Topics, ", ")
	}
	fmt.Fprintf(a.out, "Logins: %d\nQuizzes: %d\nTopics: %s\n", s.TotalLogins, s.QuizzesTaken, topics)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	msg, err := a.api.RecordLogin(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Topic(ctx context.Context, name string) error {
	updated, err := a.api.RecordTopic(ctx, name)
	if err != nil {
		return err
	}
	if updated {
		fmt.Fprintf(a.out, "Topic %q added\n", name)
	} else {
		fmt.Fprintf(a.out, "Topic %q already explored\n", name)
	}
	return nil
}

func (a *App) Badges(ctx context.Context) error {
	list, err := a.api.Badges(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No badges yet")
		return nil
	}
	for _, b := range list {
		fmt.Fprintf(a.out, "%s %s (%s) - %s\n", b.Icon, b.Name, b.AwardedAt.Format(common.DateLayout), b.Description)
	}
	return nil
}

// Award runs a badge pass. grade accepts "90", "90%" or "4/5"; empty means
// no grade.
func (a *App) Award(ctx context.Context, grade string) error {
	var g *float64
	if grade != "" {
		v, err := badges.ParseGrade(grade)
		if err != nil {
			return err
		}
		g = &v
	}

	names, err := a.api.Award(ctx, g)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(a.out, "No new badges")
		return nil
	}
	fmt.Fprintf(a.out, "New badges: %s\n", strings.Join(names, ", "))
	return nil
}
