package storage

import (
	"fmt"
	"net/url"
	"strings"
)

// Open resolves a storage locator to a backend. Recognized forms:
//
//	""                      in-memory SQLite
//	sqlite:///:memory:      in-memory SQLite
//	sqlite:///tuning.db     SQLite file (relative path)
//	sqlite:////var/t.db     SQLite file (absolute path)
//	json:///tuning.json     JSON document file
//
// Anything else yields ErrInvalidStorage.
func Open(locator string) (Storage, error) {
	if locator == "" {
		return NewSQLite(":memory:")
	}

	u, err := url.Parse(locator)
	if err != nil || u.Scheme == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStorage, locator)
	}

	path := strings.TrimPrefix(u.Path, "/")
	if path == "" && u.Opaque != "" {
		path = u.Opaque
	}
	if path == "" {
		return nil, fmt.Errorf("%w: %q has no path", ErrInvalidStorage, locator)
	}
	if strings.HasPrefix(u.Path, "//") {
		// Four slashes in the locator mean an absolute path.
		path = u.Path[1:]
	}

	switch u.Scheme {
	case "sqlite":
		return NewSQLite(path)
	case "json", "doc":
		return NewDocStore(path)
	default:
		return nil, fmt.Errorf("%w: unknown scheme %q", ErrInvalidStorage, u.Scheme)
	}
}
