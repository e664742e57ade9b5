package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/aitutor/internal/client/client"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. *App satisfies it.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	Usage(ctx context.Context) error
	Check(ctx context.Context) error
	Stats(ctx context.Context) error
	Login(ctx context.Context) error
	Topic(ctx context.Context, name string) error
	Badges(ctx context.Context) error
	Award(ctx context.Context, grade string) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit". Command
// errors are printed and the loop keeps going.
//
//	Not logged in: help, signup, signin, exit
//	Logged in:     help, usage, check, stats, login, topic <name>, badges,
//	               award [grade], logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tutor %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: usage, check, stats, login, topic <name>, badges, award [grade], logout, exit")
			} else {
				printlnFn("Available commands: signup, signin, exit")
			}

		case "signup":
			cmdErr = a.SignUp(ctx)

		case "signin":
			cmdErr = a.SignIn(ctx)

		case "usage":
			cmdErr = a.Usage(ctx)

		case "check":
			cmdErr = a.Check(ctx)

		case "stats":
			cmdErr = a.Stats(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "topic":
			if len(args) == 0 {
				printlnFn("Usage: topic <name>")
				continue
			}
			cmdErr = a.Topic(ctx, strings.Join(args, " "))

		case "badges":
			cmdErr = a.Badges(ctx)

		case "award":
			cmdErr = a.Award(ctx, strings.Join(args, ""))

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
	}
}

// describe renders an error for the operator.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		return "please signin first"
	case errors.Is(err, client.ErrUnauthorized):
		return "session rejected, please signin again"
	case errors.Is(err, client.ErrLimitReached):
		return "daily limit reached, come back tomorrow"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	default:
		return err.Error()
	}
}
