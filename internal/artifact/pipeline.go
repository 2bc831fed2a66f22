// Package artifact turns raw artifact bytes into something viewable: log
// bundles are extracted, text passes through, and binary content degrades to
// a placeholder pointing at the raw download instead.
package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/zip"

	"github.com/havard/lazycloud/internal/config"
)

// ErrNoExtractableContent indicates the bundle held no file worth showing.
var ErrNoExtractableContent = errors.New("no extractable content in bundle")

// preferredExtensions are tried first when picking which bundle entry to
// show, in listing order.
var preferredExtensions = []string{".log", ".txt", ".json", ".xml", ".md", ".xcactivitylog"}

// zipMagics are the signatures a ZIP file can start with: local file header,
// central directory header, and the empty-archive end record.
var zipMagics = [][]byte{
	{'P', 'K', 0x03, 0x04},
	{'P', 'K', 0x01, 0x02},
	{'P', 'K', 0x05, 0x06},
}

// LooksLikeZip sniffs the raw bytes for a ZIP signature.
func LooksLikeZip(data []byte) bool {
	for _, magic := range zipMagics {
		if bytes.HasPrefix(data, magic) {
			return true
		}
	}
	return false
}

// IsText reports whether the bytes are displayable as text.
func IsText(data []byte) bool {
	return utf8.Valid(data) && !bytes.ContainsRune(data, 0)
}

// BinaryPlaceholder is the message shown instead of undisplayable content.
func BinaryPlaceholder(fileName string) string {
	return fmt.Sprintf("[%s is not viewable text - use 'd' to download the raw artifact]", fileName)
}

// ExtractLogText extracts the most loggable entry from a compressed bundle,
// best effort. Extraction failures and binary entries degrade to a
// placeholder rather than an error; navigation never aborts on bad bundles.
func ExtractLogText(data []byte) string {
	text, err := extract(data)
	if err != nil {
		return fmt.Sprintf("[could not extract log bundle: %v - use 'd' to download the raw artifact]", err)
	}
	return text
}

func extract(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "lazycloud-bundle-*.zip")
	if err != nil {
		return "", fmt.Errorf("creating temp archive: %w", err)
	}
	// The archive is scratch state; it never survives this call.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing temp archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp archive: %w", err)
	}

	reader, err := zip.OpenReader(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("listing archive: %w", err)
	}
	defer reader.Close()

	entry := selectEntry(reader.File)
	if entry == nil {
		return "", ErrNoExtractableContent
	}

	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", entry.Name, err)
	}
	defer rc.Close()

	extracted, err := io.ReadAll(io.LimitReader(rc, config.MaxExtractedBytes))
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", entry.Name, err)
	}

	if !IsText(extracted) {
		return BinaryPlaceholder(entry.Name), nil
	}
	return string(extracted), nil
}

// selectEntry picks the entry to display: the first file with a preferred
// extension, else the first file of any kind.
func selectEntry(files []*zip.File) *zip.File {
	var firstFile *zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if firstFile == nil {
			firstFile = f
		}
		ext := strings.ToLower(path.Ext(f.Name))
		for _, preferred := range preferredExtensions {
			if ext == preferred {
				return f
			}
		}
	}
	return firstFile
}
