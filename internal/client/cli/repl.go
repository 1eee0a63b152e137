package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// promptEnabled reports whether stdin is interactive. Piped input gets no
// prompt so scripted sessions produce clean output.
func promptEnabled() bool {
	return isTerminal(int(os.Stdin.Fd()))
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Sync(ctx context.Context, args []string) error
	Save(ctx context.Context) error
	Load(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
	Status(ctx context.Context) error
	Demo(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  list | l          list local posts
  add               create a post and push the collection
  update [id]       edit a post and push it
  delete [id]       delete a post locally and remotely
  sync [key]        replace local posts with the remote collection
  save              push the local collection under a new key
  load <key>        show a single remote post
  clear             remove all local posts
  status            show sync state and the last error
  demo [set <text>] show or set the demo value
  profile [refresh] show the random profile
  exit | quit       leave the program`

// runREPL starts a simple read–eval–print loop for the postkeeper CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF,
// when ctx is done, or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers
// report their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, prompt bool) {
	for {
		if ctx.Err() != nil {
			return
		}
		if prompt {
			printFn(fmt.Sprintf("pk %s> ", statusFn()))
		}

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.Add(ctx)

		case "update":
			_ = a.Update(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "sync":
			_ = a.Sync(ctx, args)

		case "save":
			_ = a.Save(ctx)

		case "load":
			if len(args) == 0 {
				printlnFn("Usage: load <key>")
				continue
			}
			_ = a.Load(ctx, args)

		case "clear":
			_ = a.Clear(ctx)

		case "status":
			_ = a.Status(ctx)

		case "demo":
			_ = a.Demo(ctx, args)

		case "profile":
			_ = a.Profile(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
