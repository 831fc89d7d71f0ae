// Package frontmatter reads and writes the YAML preamble of generated
// Markdown documents.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

const delimiter = "---\n"

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a delimiter, had is false and body is
// the full input.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	if !bytes.HasPrefix(content, []byte(delimiter)) {
		return nil, content, false, nil
	}

	start := len(delimiter)
	if bytes.HasPrefix(content[start:], []byte(delimiter)) {
		return []byte{}, content[start+len(delimiter):], true, nil
	}

	closeSeq := []byte("\n" + delimiter)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + 1
	return content[start:end], content[end+len(delimiter):], true, nil
}

// Join emits a document with fm wrapped in `---` delimiters followed by body.
func Join(fm []byte, body []byte) []byte {
	out := make([]byte, 0, 2*len(delimiter)+len(fm)+len(body))
	out = append(out, delimiter...)
	out = append(out, fm...)
	if len(fm) > 0 && fm[len(fm)-1] != '\n' {
		out = append(out, '\n')
	}
	out = append(out, delimiter...)
	out = append(out, body...)
	return out
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(fm []byte) (map[string]any, error) {
	if len(fm) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
