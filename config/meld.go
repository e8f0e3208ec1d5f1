package config

import (
	"reflect"
	"strconv"
	"strings"
)

// Meld copies fields from a parsed Section into dst, a pointer to a
// plugin-declared settings struct, field by field. Each field's key is
// its `ini` tag, or else its Go name with the first letter lowercased,
// and it is looked up in the section exactly as written (case-
// sensitive). Only fields present in the section are touched, and a
// present key overwrites the field whatever value it held; dst's
// existing (zero or caller-seeded) values survive only for keys the
// file doesn't mention — the
// "aggressive meld" pattern grounded on the built-in/user config merge
// in codeready-toolchain-tarsy's pkg/config/merge.go, generalised here
// from merging two maps to overlaying file data onto a typed struct.
//
// Supported field kinds: string, bool, int/int64, []string (comma-
// separated in the file). Unsupported kinds are left untouched.
func Meld(section Section, dst interface{}) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return &MeldError{Kind: ErrorKindInvalidValue, Reason: "dst must be a pointer to a struct"}
	}
	elem := v.Elem()
	t := elem.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		key := fieldKey(field)
		raw, present := section.Get(key)
		if !present {
			continue
		}
		fv := elem.Field(i)
		if err := assign(fv, raw); err != nil {
			return &MeldError{Kind: ErrorKindInvalidValue, Field: field.Name, Reason: err.Error()}
		}
	}
	return nil
}

func assign(fv reflect.Value, raw string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Slice:
		if fv.Type().Elem().Kind() != reflect.String {
			return nil
		}
		var parts []string
		for _, p := range strings.Split(raw, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				parts = append(parts, p)
			}
		}
		fv.Set(reflect.ValueOf(parts))
	default:
		// Unsupported kind: leave the field at its existing value rather
		// than erroring, matching the meld's "only overwrite what the
		// file actually provides" contract.
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

// MeldError reports a field that could not be melded (§4.7 settings
// diagnostics surface this via SettingsDiagnostics).
type MeldError struct {
	Kind   ErrorKind
	Field  string
	Reason string
}

func (e *MeldError) Error() string {
	if e.Field == "" {
		return "config: meld: " + e.Reason
	}
	return "config: meld: field " + e.Field + ": " + e.Reason
}
