// Package dictionary manages the abbreviation table used by extreme-level
// compression and the dense format's DICT header.
//
// The built-in table covers common documentation vocabulary. Users can
// extend or override it with a TOML file carrying an [abbreviations] table
// of CODE = "expansion" pairs.
package dictionary

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrInvalidTOML indicates the dictionary file failed to parse.
	ErrInvalidTOML = errors.New("invalid dictionary TOML")

	// ErrInvalidEntry indicates a malformed abbreviation entry.
	ErrInvalidEntry = errors.New("invalid dictionary entry")
)

// Entry is one abbreviation: a short code and the phrase it replaces.
type Entry struct {
	Code      string
	Expansion string
}

// Table holds the run's abbreviation set.
type Table struct {
	byCode map[string]string // CODE -> expansion
}

// builtin maps expansion phrases to codes. Expansions are matched whole-word
// and case-insensitively during compression.
var builtin = map[string]string{
	"function":                          "FN",
	"parameter":                         "PARAM",
	"authentication":                    "AUTH",
	"authorization":                     "AUTHZ",
	"database":                          "DB",
	"application programming interface": "API",
	"configuration":                     "CFG",
	"documentation":                     "DOC",
	"implementation":                    "IMPL",
	"environment":                       "ENV",
	"repository":                        "REPO",
	"installation":                      "INST",
	"example":                           "EX",
	"middleware":                        "MW",
	"component":                         "COMP",
}

// Default returns the built-in abbreviation table.
func Default() *Table {
	t := &Table{byCode: make(map[string]string, len(builtin))}
	for expansion, code := range builtin {
		t.byCode[code] = expansion
	}
	return t
}

// Load returns the built-in table merged with the user file at path.
// User entries override built-in entries with the same code. A missing file
// is not an error; the built-in table is returned unchanged.
//
// File format:
//
//	[abbreviations]
//	FN  = "function"
//	SVC = "service"
func Load(path string) (*Table, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return nil, fmt.Errorf("failed to stat dictionary file: %w", err)
	}

	var file struct {
		Abbreviations map[string]string `toml:"abbreviations"`
	}
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTOML, path, err)
	}

	for code, expansion := range file.Abbreviations {
		code = strings.TrimSpace(code)
		expansion = strings.TrimSpace(expansion)
		if code == "" || expansion == "" {
			return nil, fmt.Errorf("%w: empty code or expansion in %s", ErrInvalidEntry, path)
		}
		t.byCode[strings.ToUpper(code)] = expansion
	}

	return t, nil
}

// Entries returns all abbreviations sorted by code.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.byCode))
	for code, expansion := range t.byCode {
		entries = append(entries, Entry{Code: code, Expansion: expansion})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries
}

// Expansion returns the phrase behind a code.
func (t *Table) Expansion(code string) (string, bool) {
	expansion, ok := t.byCode[code]
	return expansion, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.byCode)
}
