package artifact

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
)

// buildZip creates an in-memory archive from name -> content pairs, in order.
func buildZip(t *testing.T, entries []struct{ name, content string }) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		f, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("failed to create entry %s: %v", e.name, err)
		}
		if _, err := f.Write([]byte(e.content)); err != nil {
			t.Fatalf("failed to write entry %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close archive: %v", err)
	}
	return buf.Bytes()
}

func TestExtractLogText_PrefersLogExtension(t *testing.T) {
	// b.log is not first in listing order but has a preferred extension.
	data := buildZip(t, []struct{ name, content string }{
		{"a.bin", "\x00\x01\x02"},
		{"logs/", ""},
		{"b.log", "build output line 1\nline 2\n"},
	})

	text := ExtractLogText(data)
	if text != "build output line 1\nline 2\n" {
		t.Errorf("expected b.log content, got %q", text)
	}
}

func TestExtractLogText_FallbackFirstFile(t *testing.T) {
	data := buildZip(t, []struct{ name, content string }{
		{"a.bin", "plain text despite the extension\n"},
	})

	text := ExtractLogText(data)
	if text != "plain text despite the extension\n" {
		t.Errorf("expected a.bin content, got %q", text)
	}
}

func TestExtractLogText_BinaryEntry(t *testing.T) {
	data := buildZip(t, []struct{ name, content string }{
		{"blob.bin", "\x00\xff\x00\xff"},
	})

	text := ExtractLogText(data)
	if !strings.Contains(text, "blob.bin") || !strings.Contains(text, "not viewable") {
		t.Errorf("expected binary placeholder, got %q", text)
	}
}

func TestExtractLogText_EmptyArchive(t *testing.T) {
	data := buildZip(t, nil)

	text := ExtractLogText(data)
	if !strings.Contains(text, "could not extract") {
		t.Errorf("expected extraction placeholder, got %q", text)
	}
}

func TestExtractLogText_NotAnArchive(t *testing.T) {
	text := ExtractLogText([]byte("this is not a zip file"))
	if !strings.Contains(text, "could not extract") {
		t.Errorf("expected extraction placeholder, got %q", text)
	}
}

func TestExtractLogText_CaseInsensitiveExtension(t *testing.T) {
	data := buildZip(t, []struct{ name, content string }{
		{"report.bin", "\x00"},
		{"BUILD.LOG", "upper case extension\n"},
	})

	text := ExtractLogText(data)
	if text != "upper case extension\n" {
		t.Errorf("expected BUILD.LOG content, got %q", text)
	}
}

func TestLooksLikeZip(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{"local file header", []byte("PK\x03\x04rest"), true},
		{"central directory", []byte("PK\x01\x02rest"), true},
		{"empty archive", []byte("PK\x05\x06"), true},
		{"plain text", []byte("PKWARE is a company"), false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeZip(tt.data); got != tt.expected {
				t.Errorf("LooksLikeZip(%q) = %v, expected %v", tt.data, got, tt.expected)
			}
		})
	}
}

func TestIsText(t *testing.T) {
	if !IsText([]byte("hello\nworld\n")) {
		t.Error("expected plain text to be text")
	}
	if IsText([]byte{0x00, 0x01}) {
		t.Error("expected NUL bytes to be binary")
	}
	if IsText([]byte{0xff, 0xfe, 0x41}) {
		t.Error("expected invalid UTF-8 to be binary")
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"build.log", "build.log"},
		{"path/to/file.log", "path_to_file.log"},
		{`back\slash:colon`, "back_slash_colon"},
		{`a*b?c"d<e>f|g`, "a_b_c_d_e_f_g"},
		{"", "artifact"},
	}

	for _, tt := range tests {
		if got := SanitizeFileName(tt.input); got != tt.expected {
			t.Errorf("SanitizeFileName(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestWriteDownload(t *testing.T) {
	// testing.T.Chdir equivalent; it requires Go 1.24+.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	path, err := WriteDownload("my:log.txt", []byte("content"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, "my_log.txt") {
		t.Errorf("expected sanitized path, got %q", path)
	}
	if !strings.HasPrefix(path, "downloads") {
		t.Errorf("expected downloads dir prefix, got %q", path)
	}
}
