// Package cli provides tutorctl, an interactive operator client for the
// tutor API.
//
// It wires configuration, the HTTP API client and a read-eval-print loop.
// The session token lives in memory only; logout or exit forgets it.
//
// Commands:
//   - signup / signin (password read without echo)
//   - usage, check: read or spend today's request quota
//   - stats, login, topic <name>: learning stats
//   - badges, award [grade]: list badges or run a badge pass
//   - logout, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
