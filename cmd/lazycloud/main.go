package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/havard/lazycloud/internal/app"
	"github.com/havard/lazycloud/internal/appstore"
	"github.com/havard/lazycloud/internal/auth"
)

func main() {
	// Refuse to start without an interactive terminal on both ends.
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "lazycloud requires an interactive terminal")
		os.Exit(1)
	}

	// Missing or broken credentials degrade to mock data rather than
	// aborting, with a persistent notice in the status bar.
	var warning string
	creds, err := auth.LoadCredentials()
	if err != nil {
		warning = fmt.Sprintf("mock data (no credentials: %v)", err)
		creds = nil
	}
	client := appstore.NewClient(creds)

	p := tea.NewProgram(
		app.New(client, warning),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
