package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Navigate(ctx context.Context, path string)
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Upload(ctx context.Context, path, description string, public bool) error
	Update(ctx context.Context, id uint, path, description string) error
	Delete(ctx context.Context, id uint) error
	Download(ctx context.Context, id uint, filename string) error
	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Timetable(ctx context.Context) error
	NextDay(ctx context.Context) error
	PrevDay(ctx context.Context) error
	Ping(ctx context.Context) error
}

// command is one REPL binding. Handlers are bound once in newCommandTable;
// the loop only ever looks commands up by name.
type command struct {
	usage     string
	minArgs   int
	anonymous bool // listed in help even when logged out
	run       func(ctx context.Context, args []string, w io.Writer) error
}

// takeID parses args[0] as a file id and hands the remainder to fn.
func takeID(fn func(ctx context.Context, id uint, rest []string) error) func(context.Context, []string, io.Writer) error {
	return func(ctx context.Context, args []string, w io.Writer) error {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Fprintln(w, err)
			return nil
		}
		return fn(ctx, id, args[1:])
	}
}

func newCommandTable(a execIface) map[string]command {
	table := map[string]command{
		"register": {
			usage:     "register",
			anonymous: true,
			run:       func(ctx context.Context, _ []string, _ io.Writer) error { return a.Register(ctx) },
		},
		"login": {
			usage:     "login",
			anonymous: true,
			run:       func(ctx context.Context, _ []string, _ io.Writer) error { return a.Login(ctx) },
		},
		"logout": {
			usage: "logout",
			run:   func(ctx context.Context, _ []string, _ io.Writer) error { return a.Logout(ctx) },
		},
		"ls": {
			usage: "ls",
			run:   func(ctx context.Context, _ []string, _ io.Writer) error { return a.List(ctx) },
		},
		"upload": {
			usage:   "upload <path> [description]",
			minArgs: 1,
			run: func(ctx context.Context, args []string, _ io.Writer) error {
				return a.Upload(ctx, args[0], strings.Join(args[1:], " "), false)
			},
		},
		"public": {
			usage:     "public <path> [description]",
			minArgs:   1,
			anonymous: true,
			run: func(ctx context.Context, args []string, _ io.Writer) error {
				return a.Upload(ctx, args[0], strings.Join(args[1:], " "), true)
			},
		},
		"update": {
			usage:   "update <id> [path] [description]",
			minArgs: 1,
			run: takeID(func(ctx context.Context, id uint, rest []string) error {
				var path, desc string
				if len(rest) > 0 {
					path = rest[0]
				}
				if len(rest) > 1 {
					desc = strings.Join(rest[1:], " ")
				}
				return a.Update(ctx, id, path, desc)
			}),
		},
		"rm": {
			usage:   "rm <id>",
			minArgs: 1,
			run: takeID(func(ctx context.Context, id uint, _ []string) error {
				return a.Delete(ctx, id)
			}),
		},
		"get": {
			usage:   "get <id> [name]",
			minArgs: 1,
			run: takeID(func(ctx context.Context, id uint, rest []string) error {
				var name string
				if len(rest) > 0 {
					name = rest[0]
				}
				return a.Download(ctx, id, name)
			}),
		},
		"profile": {
			usage: "profile",
			run:   func(ctx context.Context, _ []string, _ io.Writer) error { return a.Profile(ctx) },
		},
		"editprofile": {
			usage: "editprofile",
			run:   func(ctx context.Context, _ []string, _ io.Writer) error { return a.UpdateProfile(ctx) },
		},
		"passwd": {
			usage: "passwd",
			run:   func(ctx context.Context, _ []string, _ io.Writer) error { return a.ChangePassword(ctx) },
		},
		"timetable": {
			usage: "timetable",
			run:   func(ctx context.Context, _ []string, _ io.Writer) error { return a.Timetable(ctx) },
		},
		"next": {
			usage: "next",
			run:   func(ctx context.Context, _ []string, _ io.Writer) error { return a.NextDay(ctx) },
		},
		"prev": {
			usage: "prev",
			run:   func(ctx context.Context, _ []string, _ io.Writer) error { return a.PrevDay(ctx) },
		},
		"go": {
			usage:     "go <path>",
			minArgs:   1,
			anonymous: true,
			run: func(ctx context.Context, args []string, _ io.Writer) error {
				a.Navigate(ctx, args[0])
				return nil
			},
		},
		"ping": {
			usage:     "ping",
			anonymous: true,
			run: func(ctx context.Context, _ []string, w io.Writer) error {
				if err := a.Ping(ctx); err != nil {
					fmt.Fprintln(w, "Server unavailable:", err)
				} else {
					fmt.Fprintln(w, "Server is up.")
				}
				return nil
			},
		},
	}

	// Aliases resolve to the same bound handler.
	table["home"] = table["ls"]
	table["l"] = table["ls"]
	table["list"] = table["ls"]
	table["delete"] = table["rm"]
	table["download"] = table["get"]
	return table
}

func printHelp(w io.Writer, table map[string]command, loggedIn bool) {
	names := make([]string, 0, len(table))
	seen := map[string]bool{}
	for _, c := range table {
		if c.usage == "" || seen[c.usage] {
			continue
		}
		if !loggedIn && !c.anonymous {
			continue
		}
		seen[c.usage] = true
		names = append(names, strings.Fields(c.usage)[0])
	}
	sort.Strings(names)
	fmt.Fprintln(w, "Available commands:", strings.Join(append(names, "exit"), ", "))
}

// runREPL reads a line, parses the first token as the command, and dispatches
// through the binding table. Unknown commands are reported back to the user.
// The loop exits on scanner EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print their
// own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	table := newCommandTable(a)

	for {
		fmt.Fprintf(w, "cvault %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		name := parts[0]
		args := parts[1:]

		switch name {
		case "help":
			printHelp(w, table, a.isLoggedIn(ctx))
			continue
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		}

		cmd, ok := table[name]
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if len(args) < cmd.minArgs {
			fmt.Fprintln(w, "Usage:", cmd.usage)
			continue
		}
		_ = cmd.run(ctx, args, w)
	}
}
