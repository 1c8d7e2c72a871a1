// Package cli provides the interactive hotelbook command-line client.
//
// It wires configuration, the local state database, API services and an
// interactive REPL. A session saved by an earlier run is picked up at
// start, and a background watcher reports whether the server is reachable.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher and runREPL for details.
package cli
