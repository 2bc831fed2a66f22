package app

import (
	"errors"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/havard/lazycloud/internal/appstore"
)

var errNoDownloadURL = errors.New("artifact has no download URL")

// openArtifactURL hands the artifact's download URL to the OS handler. The
// closure runs off the update loop, so waiting for the handler to exit is
// fine; a non-zero exit comes back as the message's err.
func (m *Model) openArtifactURL(a appstore.Artifact) tea.Cmd {
	return func() tea.Msg {
		if a.DownloadURL == "" || a.DownloadURL == "-" {
			return urlOpenedMsg{url: a.FileName, err: errNoDownloadURL}
		}
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", a.DownloadURL)
		default:
			cmd = exec.Command("xdg-open", a.DownloadURL)
		}
		if err := cmd.Run(); err != nil {
			return urlOpenedMsg{url: a.DownloadURL, err: err}
		}
		return urlOpenedMsg{url: a.FileName}
	}
}
