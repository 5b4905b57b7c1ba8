package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/reflect/internal/ui"
)

// printFn and printlnFn are test seams for REPL output.
var (
	printFn   = fmt.Print
	printlnFn = fmt.Println
)

// execIface is the command surface the REPL drives. *App satisfies it; tests
// provide a lightweight stub.
type execIface interface {
	isUnlocked() bool
	lockIfIdle(ctx context.Context) bool
	touch()

	Setup(ctx context.Context) error
	Unlock(ctx context.Context) error
	Lock(ctx context.Context) error
	Write(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Passwd(ctx context.Context) error
	Export(ctx context.Context, args []string) error
	Audit(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Wipe(ctx context.Context) error
}

const (
	helpLocked   = "Available commands: setup, unlock, help, exit"
	helpUnlocked = "Available commands: write, (l)ist [mood], show <id>, delete <id>, passwd, export <file>, audit [n], stats, wipe, lock, help, exit"
)

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit" or "quit".
//
// Before each command an idle session is locked, and the command then counts
// as activity. Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("reflect %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if a.lockIfIdle(ctx) {
			printlnFn(ui.Warning.Sprint("Journal locked after inactivity."))
		}
		a.touch()

		var cmdErr error
		switch cmd {
		case "help":
			if a.isUnlocked() {
				printlnFn(helpUnlocked)
			} else {
				printlnFn(helpLocked)
			}

		case "setup":
			cmdErr = a.Setup(ctx)

		case "unlock":
			cmdErr = a.Unlock(ctx)

		case "lock":
			cmdErr = a.Lock(ctx)

		case "write":
			cmdErr = a.Write(ctx)

		case "l", "list":
			cmdErr = a.List(ctx, args)

		case "show":
			cmdErr = a.Show(ctx, args)

		case "delete":
			cmdErr = a.Delete(ctx, args)

		case "passwd":
			cmdErr = a.Passwd(ctx)

		case "export":
			cmdErr = a.Export(ctx, args)

		case "audit":
			cmdErr = a.Audit(ctx, args)

		case "stats":
			cmdErr = a.Stats(ctx)

		case "wipe":
			cmdErr = a.Wipe(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(ui.Error.Sprint("✗"), cmdErr.Error())
		}
	}
}
