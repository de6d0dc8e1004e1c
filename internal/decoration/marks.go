package decoration

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Family names one of the four format mark kinds.
type Family string

const (
	FamilyBold      Family = "bold"
	FamilyItalic    Family = "italic"
	FamilyAlignment Family = "alignment"
	FamilyFontSize  Family = "font_size"
)

// Families lists the mark families in emission order.
var Families = []Family{FamilyBold, FamilyItalic, FamilyAlignment, FamilyFontSize}

// ErrInvalidMark indicates an unknown family or a value the family rejects.
var ErrInvalidMark = errors.New("invalid format mark")

// ParseFamily converts a user-supplied family name.
func ParseFamily(value string) (Family, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "fontsize" || v == "font-size" || v == "size" {
		v = string(FamilyFontSize)
	}
	for _, f := range Families {
		if Family(v) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown family %q", ErrInvalidMark, value)
}

// Marks holds the four format mark maps of a document.
type Marks struct {
	Bold      MarkMap
	Italic    MarkMap
	Alignment MarkMap
	FontSize  MarkMap
}

// Family returns the map for f, or nil for an unknown family.
func (m *Marks) Family(f Family) *MarkMap {
	switch f {
	case FamilyBold:
		return &m.Bold
	case FamilyItalic:
		return &m.Italic
	case FamilyAlignment:
		return &m.Alignment
	case FamilyFontSize:
		return &m.FontSize
	default:
		return nil
	}
}

// Apply sets value on [start, end) for family f. An empty value, or "false"
// for the boolean families, clears the range.
func (m *Marks) Apply(f Family, start, end int, value string) error {
	target := m.Family(f)
	if target == nil {
		return fmt.Errorf("%w: unknown family %q", ErrInvalidMark, f)
	}
	if start < 0 || start >= end {
		return fmt.Errorf("%w: range [%d, %d)", ErrInvalidMark, start, end)
	}
	normalized, clear, err := normalizeValue(f, value)
	if err != nil {
		return err
	}
	if clear {
		target.Clear(start, end)
		return nil
	}
	target.Set(start, end, normalized)
	return nil
}

// Empty reports whether no family carries a mark.
func (m Marks) Empty() bool {
	return m.Bold.Len() == 0 && m.Italic.Len() == 0 && m.Alignment.Len() == 0 && m.FontSize.Len() == 0
}

func normalizeValue(f Family, value string) (string, bool, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", true, nil
	}
	switch f {
	case FamilyBold, FamilyItalic:
		on, err := strconv.ParseBool(v)
		if err != nil {
			return "", false, fmt.Errorf("%w: %s expects true or false, got %q", ErrInvalidMark, f, value)
		}
		return "true", !on, nil
	case FamilyAlignment:
		switch v {
		case "left", "center", "right", "justify":
			return v, false, nil
		}
		return "", false, fmt.Errorf("%w: alignment %q", ErrInvalidMark, value)
	case FamilyFontSize:
		size, err := strconv.Atoi(strings.TrimSuffix(v, "px"))
		if err != nil || size <= 0 {
			return "", false, fmt.Errorf("%w: font size %q", ErrInvalidMark, value)
		}
		return strconv.Itoa(size), false, nil
	}
	return "", false, fmt.Errorf("%w: unknown family %q", ErrInvalidMark, f)
}
