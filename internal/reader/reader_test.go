package reader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	gzip "github.com/klauspost/pgzip"
	"github.com/matsen/bibscope/internal/textio"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func writeGzipFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}
	return path
}

func TestReaders_EmptyFile(t *testing.T) {
	readers := map[string]func(string) (interface{ Len() int }, error){
		"wos":    func(p string) (interface{ Len() int }, error) { return ReadWoS(p) },
		"pubmed": func(p string) (interface{ Len() int }, error) { return ReadPubMed(p) },
		"bibtex": func(p string) (interface{ Len() int }, error) { return ReadBibTeX(p) },
		"scopus": func(p string) (interface{ Len() int }, error) { return ReadScopusCSV(p) },
	}
	for name, read := range readers {
		t.Run(name, func(t *testing.T) {
			path := writeFixture(t, "empty.txt", "  \n")
			_, err := read(path)
			if !errors.Is(err, textio.ErrEmptyInput) {
				t.Errorf("error = %v, want ErrEmptyInput", err)
			}
		})
	}
}

func TestReaders_MissingFile(t *testing.T) {
	_, err := ReadWoS(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, textio.ErrFileAccess) {
		t.Errorf("error = %v, want ErrFileAccess", err)
	}
}

func TestReaders_NoEntries(t *testing.T) {
	path := writeFixture(t, "junk.txt", "this is not an export\nat all\n")
	_, err := ReadPubMed(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Format != "pubmed" {
		t.Errorf("Format = %q, want pubmed", perr.Format)
	}
}

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Format: "scopus", Line: 3, Message: "bare quote"}, "scopus: line 3: bare quote"},
		{&ParseError{Format: "wos", Message: "no entries found"}, "wos: no entries found"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestJoinAuthors(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Smith J.; Doe A.", "Smith J. and Doe A."},
		{"Smith J.", "Smith J."},
		{" ; ", "UNKNOWN"},
		{"", "UNKNOWN"},
		{"UNKNOWN", "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := joinAuthors(tt.in); got != tt.want {
			t.Errorf("joinAuthors(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
