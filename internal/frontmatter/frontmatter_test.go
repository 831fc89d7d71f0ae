package frontmatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	fm, body, had, err := Split([]byte("---\nauthor: A\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "author: A\n", string(fm))
	require.Equal(t, "# Title\n", string(body))

	_, body, had, err = Split([]byte("# Plain\n"))
	require.NoError(t, err)
	require.False(t, had)
	require.Equal(t, "# Plain\n", string(body))

	fm, body, had, err = Split([]byte("---\n---\nbody"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, "body", string(body))

	_, _, _, err = Split([]byte("---\nauthor: A\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestJoinRoundTrip(t *testing.T) {
	doc := Join([]byte("author: A"), []byte("# T\n"))
	require.Equal(t, "---\nauthor: A\n---\n# T\n", string(doc))

	fm, body, had, err := Split(doc)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "author: A\n", string(fm))
	require.Equal(t, "# T\n", string(body))
}

func TestSerializeYAML_SortedAndDates(t *testing.T) {
	out, err := SerializeYAML(map[string]any{
		"description": "Heat: a history",
		"author":      "James Oliver",
		"date":        time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, "author: James Oliver\ndate: 2024-01-02\ndescription: 'Heat: a history'\n", string(out))

	fields, err := ParseYAML(out)
	require.NoError(t, err)
	require.Equal(t, "Heat: a history", fields["description"])
}

func TestSerializeYAML_Empty(t *testing.T) {
	out, err := SerializeYAML(nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSerializeYAML_UnsupportedType(t *testing.T) {
	_, err := SerializeYAML(map[string]any{"x": struct{}{}})
	require.Error(t, err)
}

func TestCompose_FingerprintStable(t *testing.T) {
	fields := map[string]any{"author": "A"}
	body := []byte("# Title\n\nBody.\n")

	first, err := Compose(fields, body)
	require.NoError(t, err)
	second, err := Compose(fields, body)
	require.NoError(t, err)
	require.Equal(t, string(first), string(second))

	_, hasFP := fields[FingerprintField]
	require.False(t, hasFP, "Compose must not mutate its input")

	fp := StoredFingerprint(first)
	require.NotEmpty(t, fp)
	require.True(t, strings.Contains(string(first), FingerprintField+": "+fp))

	want, err := Fingerprint(fields, body)
	require.NoError(t, err)
	require.Equal(t, want, fp)

	changed, err := Compose(fields, []byte("# Title\n\nOther body.\n"))
	require.NoError(t, err)
	require.NotEqual(t, fp, StoredFingerprint(changed))
}

func TestStoredFingerprint_Absent(t *testing.T) {
	require.Empty(t, StoredFingerprint([]byte("# no preamble\n")))
	require.Empty(t, StoredFingerprint([]byte("---\nauthor: A\n---\n")))
}
