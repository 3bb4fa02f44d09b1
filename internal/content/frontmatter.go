package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// FrontMatter is an ordered string mapping. Keys keep the position of their first Set.
type FrontMatter struct {
	keys   []string
	values map[string]string
}

func NewFrontMatter(pairs ...string) FrontMatter {
	var fm FrontMatter
	for i := 0; i+1 < len(pairs); i += 2 {
		fm.Set(pairs[i], pairs[i+1])
	}
	return fm
}

func (fm *FrontMatter) Set(key, value string) {
	if fm.values == nil {
		fm.values = map[string]string{}
	}
	if _, ok := fm.values[key]; !ok {
		fm.keys = append(fm.keys, key)
	}
	fm.values[key] = value
}

func (fm FrontMatter) Get(key string) (string, bool) {
	v, ok := fm.values[key]
	return v, ok
}

func (fm *FrontMatter) Delete(key string) {
	if _, ok := fm.values[key]; !ok {
		return
	}
	delete(fm.values, key)
	for i, k := range fm.keys {
		if k == key {
			fm.keys = append(fm.keys[:i], fm.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (fm FrontMatter) Keys() []string {
	out := make([]string, len(fm.keys))
	copy(out, fm.keys)
	return out
}

func (fm FrontMatter) Len() int { return len(fm.keys) }

// Map returns an unordered copy, mostly for JSON output.
func (fm FrontMatter) Map() map[string]string {
	out := make(map[string]string, len(fm.keys))
	for _, k := range fm.keys {
		out[k] = fm.values[k]
	}
	return out
}

// Render serializes a document as:
//
//	---
//	key: value
//	---
//
//	body
//
// Values are written verbatim and are expected to be plain scalars: leading spaces are
// not preserved by Parse.
func Render(fm FrontMatter, body string) string {
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	for _, k := range fm.keys {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(fm.values[k])
		b.WriteString("\n")
	}
	b.WriteString(delimiter + "\n\n")
	b.WriteString(body)
	return b.String()
}

// Parse splits a document into front matter and body without interpreting YAML.
// A document that does not open with "---", or never closes it, has no front matter
// and is returned whole as body. Lines inside the block without a colon are ignored.
// Spaces and tabs after the colon are dropped.
func Parse(text string) (FrontMatter, string) {
	block, body, ok := splitDocument(text)
	if !ok {
		return FrontMatter{}, text
	}
	var fm FrontMatter
	for _, ln := range block {
		k, v, ok := strings.Cut(ln, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		fm.Set(k, strings.TrimLeft(v, " \t"))
	}
	return fm, body
}

// ParseStrict parses the front matter block as YAML. It fails on malformed YAML and on
// values that are not scalars; callers that must tolerate bad input fall back to Parse.
func ParseStrict(text string) (FrontMatter, string, error) {
	block, body, ok := splitDocument(text)
	if !ok {
		return FrontMatter{}, text, nil
	}
	var fm FrontMatter
	raw := strings.Join(block, "\n")
	if strings.TrimSpace(raw) == "" {
		return fm, body, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return FrontMatter{}, "", fmt.Errorf("front matter: %w", err)
	}
	if len(doc.Content) == 0 {
		return fm, body, nil
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return FrontMatter{}, "", errors.New("front matter: not a mapping")
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return FrontMatter{}, "", fmt.Errorf("front matter: value for %q is not a scalar", k.Value)
		}
		fm.Set(k.Value, v.Value)
	}
	return fm, body, nil
}

// splitDocument returns the raw lines between the delimiters and the body after the
// closing delimiter (minus the single separating blank line).
func splitDocument(text string) ([]string, string, bool) {
	first, rest, ok := cutLine(text)
	if !ok || strings.TrimRight(first, "\r") != delimiter {
		return nil, "", false
	}
	var block []string
	for {
		ln, next, more := cutLine(rest)
		if strings.TrimRight(ln, "\r") == delimiter {
			body := next
			if strings.HasPrefix(body, "\r\n") {
				body = body[2:]
			} else if strings.HasPrefix(body, "\n") {
				body = body[1:]
			}
			return block, body, true
		}
		if !more {
			return nil, "", false
		}
		block = append(block, strings.TrimRight(ln, "\r"))
		rest = next
	}
}

// cutLine splits off the first line. more is false when s had no newline.
func cutLine(s string) (line, rest string, more bool) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

var (
	titleLine = regexp.MustCompile(`(?m)^title:[ \t]*(.+?)\r?$`)
	dateLine  = regexp.MustCompile(`(?m)^date:[ \t]*(.+?)\r?$`)
)

// FindTitle looks for a "title:" line anywhere in text. It works on malformed
// documents. The value is trimmed and surrounding quotes are removed.
func FindTitle(text string) (string, bool) {
	return findValue(titleLine, text)
}

func FindDate(text string) (string, bool) {
	return findValue(dateLine, text)
}

func findValue(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	v := unquote(strings.TrimSpace(m[1]))
	return v, v != ""
}

// HasDateKey reports whether "date:" occurs anywhere in text. Publishing keeps any
// existing date rather than injecting a second one.
func HasDateKey(text string) bool {
	return strings.Contains(text, "date:")
}

var delimiterLine = regexp.MustCompile(`(?m)^---(\r?\n)`)

// InjectDate inserts a date line right after the first "---" line, reusing that line's
// ending so CRLF documents stay CRLF. Text without one is returned unchanged.
func InjectDate(text, date string) string {
	m := delimiterLine.FindStringSubmatchIndex(text)
	if m == nil {
		return text
	}
	eol := text[m[2]:m[3]]
	return text[:m[1]] + "date: " + date + eol + text[m[1]:]
}

func unquote(s string) string {
	return strings.Trim(s, `"'`)
}
