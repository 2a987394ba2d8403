package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Status(ctx context.Context) error
	SetMode(ctx context.Context, s models.OfflineStatus) error
	Get(ctx context.Context, endpoint string) error
	Send(ctx context.Context, method, endpoint, body string) error
	Prefetch(ctx context.Context, endpoints []string) error
	Pending(ctx context.Context, seq string) error
	Ack(ctx context.Context, seq string) error
	Token(ctx context.Context, token string) error
}

const helpText = `Available commands:
  status                          mode, pending writes, cache size
  online | offline                switch mode
  get <endpoint>                  read (served from cache while offline)
  post|put|patch|delete <endpoint> [json|@file]
                                  write (queued while offline)
  prefetch <endpoint>...          cache endpoints for offline use
  pending [seq]                   list queued writes, or show one
  ack <seq>                       mark a queued write as replayed
  token [jwt]                     store the access token
  exit | quit                     leave`

// runREPL reads commands from scanner and dispatches them to a until the
// input ends or the user types exit. The prompt shows statusFn(). Command
// errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mc (%s)> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		cmd, arg, rest := splitCommand(scanner.Text())
		if cmd == "" {
			continue
		}

		var err error
		switch strings.ToLower(cmd) {
		case "help":
			printlnFn(helpText)

		case "status":
			err = a.Status(ctx)

		case "online":
			err = a.SetMode(ctx, models.StatusOnline)

		case "offline":
			err = a.SetMode(ctx, models.StatusOffline)

		case "get":
			err = a.Get(ctx, arg)

		case "post", "put", "patch", "delete":
			err = a.Send(ctx, strings.ToUpper(cmd), arg, rest)

		case "prefetch":
			err = a.Prefetch(ctx, strings.Fields(arg+" "+rest))

		case "pending":
			err = a.Pending(ctx, arg)

		case "ack":
			err = a.Ack(ctx, arg)

		case "token":
			err = a.Token(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
		reportError(err)
	}
}
