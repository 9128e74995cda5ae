package options

import (
	"strconv"
	"strings"
)

// Set is an immutable option set. The zero value is not valid; start from
// Default or FromMap.
type Set struct {
	values  [numIDs]int
	symbols []string

	// indentTab records indent_size = tab, which follows tab_width.
	indentTab bool
}

var defaults = func() *Set {
	s := &Set{}
	for i := range descriptors {
		s.set(ID(i), descriptors[i].Default, &Set{})
	}
	return s
}()

// Default returns the default option set.
func Default() *Set { return defaults }

// FromMap returns the default set overlaid with settings keyed by
// configuration key. Unknown keys are ignored.
func FromMap(settings map[string]string) *Set {
	return Default().Apply(settings)
}

// Apply returns a copy of s overlaid with settings keyed by configuration
// key. Unknown keys and empty values are ignored; values that do not parse
// fall back to the option's default.
func (s *Set) Apply(settings map[string]string) *Set {
	c := s.clone()
	for key, raw := range settings {
		id, ok := Lookup(strings.ToLower(strings.TrimSpace(key)))
		if !ok {
			continue
		}
		c.set(id, raw, defaults)
	}
	return c
}

// With returns a copy of s with a single option set from its raw value.
func (s *Set) With(id ID, raw string) *Set {
	c := s.clone()
	c.set(id, raw, defaults)
	return c
}

func (s *Set) clone() *Set {
	c := *s
	c.symbols = append([]string(nil), s.symbols...)
	return &c
}

// set parses raw into id, falling back to the value held by def.
func (s *Set) set(id ID, raw string, def *Set) {
	if id < 0 || id >= numIDs || strings.TrimSpace(raw) == "" {
		return
	}
	d := descriptors[id]
	switch d.Kind {
	case Bool:
		s.values[id] = boolInt(ParseBool(raw, def.values[id] != 0))
	case Int:
		s.setInt(id, raw, def)
	case Enum:
		s.values[id] = ParseEnum(raw, d.Vocabulary, def.values[id])
	case FlagSet:
		s.values[id] = int(ParseFlags(raw, d.Vocabulary, d.Aliases))
	case List:
		s.symbols = ParseList(raw)
	}
}

func (s *Set) setInt(id ID, raw string, def *Set) {
	switch id {
	case IndentSize:
		if strings.TrimSpace(raw) == "tab" {
			s.indentTab = true
			return
		}
		s.indentTab = false
		s.values[id] = positive(raw, def.values[id])
	case TabWidth:
		s.values[id] = positive(raw, def.values[id])
	default:
		s.values[id] = ParseInt(raw, def.values[id])
	}
}

func positive(raw string, def int) int {
	if n := ParseInt(raw, def); n > 0 {
		return n
	}
	return def
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Bool returns the value of a boolean option.
func (s *Set) Bool(id ID) bool { return s.values[id] != 0 }

// Int returns the value of an integer option.
func (s *Set) Int(id ID) int {
	if id == IndentSize && s.indentTab {
		return s.values[TabWidth]
	}
	return s.values[id]
}

// Flags returns the value of a flag-set option.
func (s *Set) Flags(id ID) Flags { return Flags(s.values[id]) }

// Enum returns the vocabulary index of an enum option.
func (s *Set) Enum(id ID) int { return s.values[id] }

// UseTabs reports whether indentation uses tabs.
func (s *Set) UseTabs() bool { return s.values[UseTabs] == 1 }

// IndentSize returns the width of one indentation level in columns.
func (s *Set) IndentSize() int { return s.Int(IndentSize) }

// TabWidth returns the width of a tab stop in columns.
func (s *Set) TabWidth() int { return s.values[TabWidth] }

// NewLine returns the line break sequence written by the formatter.
func (s *Set) NewLine() string {
	switch s.values[NewLine] {
	case 1:
		return "\r\n"
	case 2:
		return "\r"
	}
	return "\n"
}

// MaxBlankLines returns the blank-line cap, or a negative number for no cap.
func (s *Set) MaxBlankLines() int { return s.values[MaxBlankLines] }

// Braces returns the constructs whose open brace goes on a new line.
func (s *Set) Braces() Flags { return s.Flags(NewLinesForBraces) }

// Labels returns the label positioning policy.
func (s *Set) Labels() LabelPosition { return LabelPosition(s.values[LabelPositioning]) }

// BinaryOperators returns the binary operator spacing policy.
func (s *Set) BinaryOperators() BinarySpacing {
	return BinarySpacing(s.values[SpacingAroundBinaryOperator])
}

// IgnoreDeclarationSpacing reports whether spacing inside local
// declarations is left as authored.
func (s *Set) IgnoreDeclarationSpacing() bool {
	return s.values[SpacesIgnoreAroundVariableDeclaration] == 1
}

// Symbols returns the configured preprocessor symbols.
func (s *Set) Symbols() []string { return append([]string(nil), s.symbols...) }

// Value returns the value of id rendered in configuration syntax.
func (s *Set) Value(id ID) string {
	d := id.Describe()
	switch d.Kind {
	case Bool:
		return strconv.FormatBool(s.Bool(id))
	case Int:
		if id == IndentSize && s.indentTab {
			return "tab"
		}
		return strconv.Itoa(s.values[id])
	case Enum:
		return d.Vocabulary[s.values[id]]
	case FlagSet:
		f := s.Flags(id)
		if len(d.Aliases) > 0 {
			if f == BraceAll && id == NewLinesForBraces {
				return "all"
			}
			if f == 0 {
				return "none"
			}
		}
		return FormatFlags(f, d.Vocabulary)
	case List:
		return strings.Join(s.symbols, ",")
	}
	return ""
}

// Map renders every option in configuration syntax keyed by configuration key.
func (s *Set) Map() map[string]string {
	m := make(map[string]string, numIDs)
	for i := range numIDs {
		m[descriptors[i].Key] = s.Value(i)
	}
	return m
}
