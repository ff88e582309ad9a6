// Package cli provides the interactive campus vault command-line client.
//
// It wires configuration, the local session store, the REST API client, and
// the screen controllers into a single App, exposed both as one-shot cobra
// subcommands and as an interactive REPL. Page navigation goes through the
// auth gate, so gated pages redirect to the login page when the session is
// missing or dead.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Navigate, and runREPL for details.
package cli
