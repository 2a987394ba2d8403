// Package cli provides the interactive command-line client of the offline
// layer.
//
// It wires configuration, the local store, the HTTP transport and the
// offline Fetcher behind a small REPL. Users can switch between online and
// offline mode, prefetch checklists and punch items while connected, issue
// reads and writes that are served from the cache while offline, and
// inspect or acknowledge the queue of writes awaiting replay.
//
// When AutoDetectStatus is set, a background watcher pings the server and
// switches the mode automatically. See App, Run and runREPL.
package cli
