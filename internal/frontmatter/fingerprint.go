package frontmatter

import (
	"strings"

	"github.com/inful/mdfp"
)

// FingerprintField is the preamble key holding the content fingerprint.
const FingerprintField = mdfp.FingerprintField

// Fingerprint computes the content fingerprint of a document from its
// preamble fields (excluding any existing fingerprint) and body.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	forHash := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == FingerprintField {
			continue
		}
		forHash[k] = v
	}

	serialized, err := SerializeYAML(forHash)
	if err != nil {
		return "", err
	}
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(serialized), "\n"), string(body)), nil
}

// Compose stamps fields with the fingerprint of fields and body and returns
// the complete document.
func Compose(fields map[string]any, body []byte) ([]byte, error) {
	fp, err := Fingerprint(fields, body)
	if err != nil {
		return nil, err
	}

	stamped := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		stamped[k] = v
	}
	stamped[FingerprintField] = fp

	fm, err := SerializeYAML(stamped)
	if err != nil {
		return nil, err
	}
	return Join(fm, body), nil
}

// StoredFingerprint returns the fingerprint recorded in a composed document,
// or the empty string when none can be read.
func StoredFingerprint(content []byte) string {
	fm, _, had, err := Split(content)
	if err != nil || !had {
		return ""
	}
	fields, err := ParseYAML(fm)
	if err != nil {
		return ""
	}
	fp, _ := fields[FingerprintField].(string)
	return fp
}
