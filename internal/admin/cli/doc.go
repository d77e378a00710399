// Package cli provides the interactive userbase administration console.
//
// The console talks to the database directly through the server's services,
// so it works before any ADMIN account exists and is the usual way to create
// the first one. Commands:
//
//	add                 create a user (empty password generates one)
//	update <id>         change username, role and optionally password
//	show <id>           print a single user
//	list                print all users
//	delete <id>         delete a user and its sessions
//	login               check credentials and print a session token
//	logout <token>      revoke a session token
//	help                list commands
//	exit | quit         leave
//
// Passwords are read without echo through golang.org/x/term.
package cli
