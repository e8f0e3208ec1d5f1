// Package config loads bot and per-plugin settings from an INI-like
// file, melds them into plugin-declared settings structs, and validates
// them against an optional JSON Schema (§4.7, §6, §7). No third-party
// INI library appears anywhere in the retrieval pack, so the section
// scanner below is a small hand-rolled reader (justified stdlib use:
// bufio + strings is the idiomatic minimum for a format this simple);
// the meld and validate steps downstream of it do reach for the pack's
// libraries.
package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Document is a parsed settings file: one ordered list of sections, each
// holding its key/value pairs in file order (§6 "one [Section] per
// plugin, key=value lines").
type Document struct {
	Sections []Section
}

// Section is a single "[name]" block and its fields.
type Section struct {
	Name   string
	Fields map[string]string
	// Order preserves the original key ordering, useful for round-tripping
	// or diagnostics that want to report "the Nth key in [name]".
	Order []string
}

// Get looks up a field, reporting whether it was present.
func (s Section) Get(key string) (string, bool) {
	v, ok := s.Fields[key]
	return v, ok
}

// Lookup returns the named section, or ok=false if the file has none.
func (d *Document) Lookup(name string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Parse reads an INI-like document: "[section]" headers, "key = value"
// or "key=value" lines, "#" and ";" comment lines, blank lines ignored.
// A key encountered before any section header belongs to an implicit
// unnamed "" section.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{}
	current := Section{Name: "", Fields: map[string]string{}}
	haveCurrent := false
	scanner := bufio.NewScanner(r)
	lineNo := 0

	flush := func() {
		if haveCurrent {
			doc.Sections = append(doc.Sections, current)
		}
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			flush()
			current = Section{Name: strings.TrimSpace(line[1 : len(line)-1]), Fields: map[string]string{}}
			haveCurrent = true
			continue
		}
		eq := strings.Index(line, "=")
		if eq < 0 {
			return nil, fmt.Errorf("config: line %d: expected key=value, got %q", lineNo, line)
		}
		if !haveCurrent {
			haveCurrent = true
		}
		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		if _, exists := current.Fields[key]; !exists {
			current.Order = append(current.Order, key)
		}
		current.Fields[key] = value
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return doc, nil
}

// ParseString is a convenience wrapper around Parse for in-memory text,
// used heavily by tests and by plugins embedding default settings.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}
