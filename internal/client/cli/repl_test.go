package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/aitutor/internal/client/client"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) record(c string) error {
	f.calls = append(f.calls, c)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) SignUp(context.Context) error { return f.record("signup") }
func (f *fakeExec) SignIn(context.Context) error { f.loggedIn = true; return f.record("signin") }
func (f *fakeExec) Usage(context.Context) error { return f.record("usage") }
func (f *fakeExec) Check(context.Context) error { return f.record("check") }
func (f *fakeExec) Stats(context.Context) error { return f.record("stats") }
func (f *fakeExec) Login(context.Context) error { return f.record("login") }
func (f *fakeExec) Badges(context.Context) error { return f.record("badges") }
func (f *fakeExec) Logout(context.Context) error { f.loggedIn = false; return f.record("logout") }
func (f *fakeExec) Topic(_ context.Context, n string) error { return f.record("topic:" + n) }
func (f *fakeExec) Award(_ context.Context, g string) error { return f.record("award:" + g) }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	captureOutput(t)

	input := strings.Join([]string{
		"help",
		"signin",
		"",
		"usage",
		"check",
		"stats",
		"login",
		"topic Ancient History",
		"badges",
		"award 4/5",
		"award",
		"logout",
		"exit",
		"usage",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"signin", "usage", "check", "stats", "login", "topic:Ancient History",
		"badges", "award:4/5", "award:", "logout",
	}, exec.calls)
}

func TestRunREPL_TopicRequiresName(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("topic\nquit\n")))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: topic <name>")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("stats")))

	assert.Equal(t, []string{"stats"}, exec.calls)
}

func TestRunREPL_PrintsErrors(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loggedIn: true, err: client.ErrLimitReached}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("check\nfoo\nexit\n")))

	assert.Contains(t, *out, "Error: daily limit reached, come back tomorrow")
	assert.Contains(t, *out, "Unknown command: foo")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "please signin first", describe(client.ErrNotLoggedIn))
	assert.Equal(t, "server unavailable", describe(fmt.Errorf("%w: dial", client.ErrUnavailable)))
	assert.Equal(t, "boom", describe(errors.New("boom")))
}
