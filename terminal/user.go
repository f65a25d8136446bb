package terminal

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptUserStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	promptPathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// User holds the identity shown in the prompt. The username comes from the
// session environment, not the host account database, so it stays
// consistent with the isolation model.
type User struct {
	Name string
	Host string
}

// NewUser derives the prompt identity from env, with neutral fallbacks.
func NewUser(env *Environment) *User {
	name, err := env.Get("USER")
	if err != nil || name == "" {
		name = "user"
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	return &User{Name: name, Host: host}
}

func (u *User) String() string {
	return u.Name + "@" + u.Host
}

// Prompt renders "user@host:path$ " for the given working directory path,
// optionally lipgloss-styled.
func (u *User) Prompt(path string, color bool) string {
	if !color {
		return fmt.Sprintf("%s:%s$ ", u, path)
	}
	return fmt.Sprintf("%s:%s$ ", promptUserStyle.Render(u.String()), promptPathStyle.Render(path))
}
