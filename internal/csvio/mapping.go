package csvio

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/loaishar/RealEstateManager/internal/model"
)

// Mapping assigns a payment field to each spreadsheet header. Headers that
// are absent or mapped to model.FieldNone are skipped on import.
type Mapping map[string]model.Field

// WarningKind classifies a mapping warning.
type WarningKind int

const (
	WarnSkippedColumn WarningKind = iota
	WarnDuplicateField
	WarnUnknownHeader
	WarnMissingRequired
)

// Warning is a non-fatal mapping problem shown to the user before import.
type Warning struct {
	Kind    WarningKind
	Header  string
	Field   model.Field
	Message string
}

func (w Warning) String() string { return w.Message }

// Check reports problems with m against the headers of a file. Warnings are
// ordered by header position, then unknown headers, then missing fields.
func (m Mapping) Check(headers []string) []Warning {
	var warnings []Warning

	owner := make(map[model.Field]string)
	for _, h := range headers {
		f := m[h]
		if f == model.FieldNone {
			warnings = append(warnings, Warning{
				Kind:    WarnSkippedColumn,
				Header:  h,
				Message: fmt.Sprintf("column %q is not mapped and will be skipped", h),
			})
			continue
		}
		if prev, ok := owner[f]; ok {
			warnings = append(warnings, Warning{
				Kind:    WarnDuplicateField,
				Header:  h,
				Field:   f,
				Message: fmt.Sprintf("columns %q and %q both map to %s; using %q", prev, h, f.Label(), h),
			})
		}
		owner[f] = h
	}

	var unknown []string
	for h, f := range m {
		if f != model.FieldNone && !slices.Contains(headers, h) {
			unknown = append(unknown, h)
		}
	}
	sort.Strings(unknown)
	for _, h := range unknown {
		warnings = append(warnings, Warning{
			Kind:    WarnUnknownHeader,
			Header:  h,
			Field:   m[h],
			Message: fmt.Sprintf("mapped column %q is not in the file", h),
		})
	}

	for _, f := range model.Fields {
		if _, ok := owner[f]; f.Required() && !ok {
			warnings = append(warnings, Warning{
				Kind:    WarnMissingRequired,
				Field:   f,
				Message: fmt.Sprintf("no column is mapped to required field %s", f.Label()),
			})
		}
	}
	return warnings
}

// AutoMapping suggests a mapping by matching each header to a field name or
// export label. Files written by WriteCSV map back onto every field.
func AutoMapping(headers []string) Mapping {
	m := make(Mapping, len(headers))
	for _, h := range headers {
		if f, ok := model.ParseField(h); ok {
			m[h] = f
		}
	}
	return m
}

// ParseMappingSpecs parses HEADER=field pairs, as given on the command line.
// The field may be a field name, an export label, or "skip".
func ParseMappingSpecs(specs []string) (Mapping, error) {
	m := make(Mapping, len(specs))
	for _, spec := range specs {
		header, field, ok := strings.Cut(spec, "=")
		header = strings.TrimSpace(header)
		if !ok || header == "" {
			return nil, fmt.Errorf("invalid mapping %q: want HEADER=field", spec)
		}
		if strings.EqualFold(strings.TrimSpace(field), "skip") {
			m[header] = model.FieldNone
			continue
		}
		f, ok := model.ParseField(field)
		if !ok {
			return nil, fmt.Errorf("invalid mapping %q: unknown field %q", spec, field)
		}
		m[header] = f
	}
	return m, nil
}

// Merge returns a copy of m with the entries of override applied on top.
func (m Mapping) Merge(override Mapping) Mapping {
	out := make(Mapping, len(m)+len(override))
	for h, f := range m {
		out[h] = f
	}
	for h, f := range override {
		out[h] = f
	}
	return out
}
