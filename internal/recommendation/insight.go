package recommendation

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

// RenderInsight converts the Markdown insight of a payload to HTML. Raw HTML
// in the source is dropped by the renderer.
func RenderInsight(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(stripCodeFence(source)), &buf); err != nil {
		return "", fmt.Errorf("render insight: %w", err)
	}
	return buf.String(), nil
}
