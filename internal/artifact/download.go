package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/havard/lazycloud/internal/config"
)

// SanitizeFileName makes an artifact name safe to use as a local file name.
// Characters with path or shell meaning become underscores; an empty name
// falls back to a generic one.
func SanitizeFileName(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, name)
	if sanitized == "" {
		return config.DefaultArtifactName
	}
	return sanitized
}

// WriteDownload writes artifact bytes under the downloads directory and
// returns the resulting path.
func WriteDownload(fileName string, data []byte) (string, error) {
	if err := os.MkdirAll(config.DownloadDir, 0755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}
	dest := filepath.Join(config.DownloadDir, SanitizeFileName(fileName))
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, nil
}
