package cli

import (
	"context"
	"errors"
	"io"
	"strings"
)

const helpText = "Available commands: add, update <id>, show <id>, list, delete <id>, login, logout <token>, exit"

// Run reads commands until EOF, "exit" or ctx cancellation. Command errors
// are reported to the operator and do not end the loop.
func (c *Console) Run(ctx context.Context) {
	c.printf("userbase admin console (type 'help' for commands)\n")

	for ctx.Err() == nil {
		c.printf("userbase> ")
		line, err := c.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			c.printf("\n")
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			c.printf("%s\n", helpText)
		case "add":
			_ = c.Add(ctx)
		case "update":
			_ = c.Update(ctx, args)
		case "show":
			_ = c.Show(ctx, args)
		case "l", "list":
			_ = c.List(ctx)
		case "delete":
			_ = c.Delete(ctx, args)
		case "login":
			_ = c.Login(ctx)
		case "logout":
			_ = c.Logout(ctx, args)
		case "exit", "quit":
			c.printf("Bye!\n")
			return
		default:
			c.printf("Unknown command: %s\n", cmd)
		}
	}
}
