package normalize

import (
	"bytes"
	"math"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var displayMath = regexp.MustCompile(`(?s)\$\$.*?\$\$`)

// ReadingTime estimates whole minutes to read body at wordsPerMinute,
// rounded to nearest and never less than one.
func ReadingTime(body string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = 200
	}
	words := len(strings.Fields(proseText(body)))
	minutes := int(math.Round(float64(words) / float64(wordsPerMinute)))
	return max(minutes, 1)
}

// proseText reduces Markdown to the words a reader reads: math and images
// are dropped along with all markup punctuation.
func proseText(body string) string {
	body = displayMath.ReplaceAllString(body, " ")
	body = inlineMath.ReplaceAllString(body, " ")

	source := []byte(body)
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			if n.Type() == gmast.TypeBlock {
				buf.WriteByte(' ')
			}
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Image:
			return gmast.WalkSkipChildren, nil
		case *gmast.Text:
			buf.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(node.Value)
		case *gmast.CodeBlock, *gmast.FencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(source))
			}
		}
		return gmast.WalkContinue, nil
	})
	return buf.String()
}
