// Package cli provides the interactive movieapi command-line client.
//
// It wires configuration, the HTTP API client and a read-eval-print loop.
// Commands cover the account (register, login, whoami, passwd, logout) and
// the catalog (movies, types, addtype). Passwords are read from the
// terminal without echo.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
