package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Users(ctx context.Context) error
	Movies(ctx context.Context) error
	Types(ctx context.Context) error
	AddType(ctx context.Context, name string) error
	Poster(ctx context.Context, id, path string) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit" or "quit".
//
//	Not logged in:
//	  - help, register, login, movies, types, exit | quit
//
//	Logged in:
//	  - help, whoami, passwd, users, movies, types, addtype <name>,
//	    poster <id> <file>, logout, exit | quit
//
// Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("movies%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, passwd, users, movies, types, addtype <name>, poster <id> <file>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, movies, types, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "passwd":
			err = a.ChangePassword(ctx)

		case "users":
			err = a.Users(ctx)

		case "movies":
			err = a.Movies(ctx)

		case "types":
			err = a.Types(ctx)

		case "addtype":
			if len(args) == 0 {
				printlnFn("Usage: addtype <name>")
				continue
			}
			err = a.AddType(ctx, strings.Join(args, " "))

		case "poster":
			if len(args) != 2 {
				printlnFn("Usage: poster <movie id> <image file>")
				continue
			}
			err = a.Poster(ctx, args[0], args[1])

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
