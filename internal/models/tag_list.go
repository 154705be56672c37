package models

import (
	"encoding/json"
	"strings"
)

// TagList holds raw tag names attached to a tool request. Historic clients
// submitted tags in three shapes: a JSON array of strings, a comma-joined
// string, and a Postgres array-literal string ("{a,b}"). All three decode
// through ParseTagNames so the rest of the code only ever sees a clean slice.
type TagList []string

// UnmarshalJSON accepts either a JSON array of strings or a single string
// in one of the delimited forms.
func (t *TagList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*t = TagList(names)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TagList(ParseTagNames(raw))
	return nil
}

// ParseTagNames splits a delimited tag string into individual names.
// Accepts the Postgres array-literal form "{tag1,tag2}" and the plain
// comma-joined form "tag1, tag2". Entries are unquoted and trimmed;
// empties are dropped. Names are NOT normalized here.
func ParseTagNames(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		raw = raw[1 : len(raw)-1]
	}

	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"`)
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}

// NormalizeTagName canonicalizes a single tag name: trimmed and lowercased.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalized returns the list as a deduplicated set of canonical tag names,
// preserving first-seen order. Elements still carrying a delimited form
// (legacy rows) are expanded first. Case and whitespace variants of the
// same name collapse to one entry; empties are dropped.
func (t TagList) Normalized() []string {
	seen := make(map[string]bool, len(t))
	names := make([]string, 0, len(t))
	for _, raw := range t {
		for _, part := range ParseTagNames(raw) {
			name := NormalizeTagName(part)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
