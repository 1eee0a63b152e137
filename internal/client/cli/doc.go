// Package cli provides the interactive postkeeper command-line client.
//
// It wires configuration, the local store, the posts container, the sync
// services and the profile refresher, then runs a REPL on stdin. Every
// command that talks to the KeyVal API reports failures inline; the last
// failure also stays visible through "status" until the next operation.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command list.
package cli
