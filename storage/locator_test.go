package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOpenEmptyLocatorIsMemorySQLite(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, ok := s.(*SQLite); !ok {
		t.Fatalf("got %T, want *SQLite", s)
	}
	if _, err := s.InsertJob("tuning"); err != nil {
		t.Fatal(err)
	}
}

func TestOpenSQLiteMemoryLocator(t *testing.T) {
	s, err := Open("sqlite:///:memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, ok := s.(*SQLite); !ok {
		t.Fatalf("got %T, want *SQLite", s)
	}
}

func TestOpenSQLiteFileLocator(t *testing.T) {
	// A four-slash locator carries an absolute path.
	path := filepath.Join(t.TempDir(), "tuning.db")
	s, err := Open("sqlite:///" + path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.InsertJob("tuning"); err != nil {
		t.Fatal(err)
	}
}

func TestOpenJSONLocator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.json")
	s, err := Open("json:///" + path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ds, ok := s.(*DocStore)
	if !ok {
		t.Fatalf("got %T, want *DocStore", s)
	}
	if ds.path != path {
		t.Errorf("path: got %q, want %q", ds.path, path)
	}
}

func TestOpenDocSchemeAlias(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.json")
	s, err := Open("doc:///" + path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, ok := s.(*DocStore); !ok {
		t.Fatalf("got %T, want *DocStore", s)
	}
}

func TestOpenInvalidLocators(t *testing.T) {
	cases := []string{
		"no-scheme-at-all",
		"redis:///tuning",
		"sqlite://",
	}
	for _, locator := range cases {
		_, err := Open(locator)
		if !errors.Is(err, ErrInvalidStorage) {
			t.Errorf("Open(%q): got %v, want ErrInvalidStorage", locator, err)
		}
	}
}
