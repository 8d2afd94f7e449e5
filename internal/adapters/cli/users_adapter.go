package cli

import (
	"fmt"
	"io"

	"github.com/example/sprintdesk/internal/ports/primary"
)

// UsersAdapter prints the cached user directory.
type UsersAdapter struct {
	service primary.UserService
	session primary.SessionService
	out     io.Writer
}

// NewUsersAdapter creates a new UsersAdapter.
func NewUsersAdapter(service primary.UserService, session primary.SessionService, out io.Writer) *UsersAdapter {
	return &UsersAdapter{service: service, session: session, out: out}
}

// List prints every cached user, marking the session user.
func (a *UsersAdapter) List() error {
	users := a.service.Users()
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users cached")
		return nil
	}

	me, _ := a.session.CurrentUserID()
	fmt.Fprintf(a.out, "\n%-2s %-6s %-20s %-28s %s\n", "", "ID", "USERNAME", "EMAIL", "NAME")
	fmt.Fprintln(a.out, rule)
	for _, u := range users {
		marker := ""
		if u.ID == me {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%-2s %-6d %-20s %-28s %s\n", marker, u.ID, u.Username, u.Email, u.DisplayName())
	}
	fmt.Fprintln(a.out)
	return nil
}
