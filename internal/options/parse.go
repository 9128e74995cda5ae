package options

import (
	"strconv"
	"strings"
)

// ParseBool parses exactly "true" or "false" and returns def for anything else.
func ParseBool(raw string, def bool) bool {
	switch strings.TrimSpace(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	return def
}

// ParseInt parses a base-10 integer and returns def when raw is not one.
func ParseInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return n
}

// ParseEnum returns the index of raw in vocab. The whole value must match
// one keyword exactly; extra items, a different case or an unknown word
// yield def.
func ParseEnum(raw string, vocab []string, def int) int {
	raw = strings.TrimSpace(raw)
	for i, w := range vocab {
		if raw == w {
			return i
		}
	}
	return def
}

// ParseFlags parses a comma-separated keyword list. Each item is trimmed and
// matched exactly against vocab (bit i for vocab[i]) and aliases; empty and
// unknown items contribute nothing.
func ParseFlags(raw string, vocab []string, aliases map[string]Flags) Flags {
	var f Flags
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if mask, ok := aliases[item]; ok {
			f |= mask
			continue
		}
		for i, w := range vocab {
			if item == w {
				f |= 1 << i
				break
			}
		}
	}
	return f
}

// FormatFlags renders f as a comma-separated keyword list.
func FormatFlags(f Flags, vocab []string) string {
	var words []string
	for i, w := range vocab {
		if f.Has(1 << i) {
			words = append(words, w)
		}
	}
	return strings.Join(words, ",")
}

// ParseList splits a comma-separated list, dropping empty items.
func ParseList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
