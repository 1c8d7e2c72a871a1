package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
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
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	ListBookings(ctx context.Context) error
	Book(ctx context.Context) error
	Cancel(ctx context.Context, bookingID string) error
}

// runREPL reads commands line by line from reader and dispatches them to
// a. It returns on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help                 show available commands
//	  - register             create an account
//	  - login                authenticate
//	  - exit | quit          leave the program
//
//	Logged in:
//	  - whoami               show the profile
//	  - update               change first name, last name or phone
//	  - bookings | l         list bookings
//	  - book                 make a booking
//	  - cancel <id>          cancel a booking
//	  - logout               end the session
//	  - exit | quit          leave the program
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("hb %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, update, (l)bookings, book, cancel <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "update":
			cmdErr = a.UpdateProfile(ctx)

		case "l", "bookings":
			cmdErr = a.ListBookings(ctx)

		case "book":
			cmdErr = a.Book(ctx)

		case "cancel":
			if len(args) == 0 {
				printlnFn("Usage: cancel <id>")
				continue
			}
			cmdErr = a.Cancel(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
	}
}
