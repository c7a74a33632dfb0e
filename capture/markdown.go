// CLAUDE:SUMMARY Markdown rendition of captured pages: bluemonday sanitisation then html-to-markdown.
package capture

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// Renderer produces a human-readable markdown rendition of a captured
// page, for review alongside the structured scan output.
type Renderer struct {
	policy    *bluemonday.Policy
	converter *converter.Converter
}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		policy: bluemonday.UGCPolicy(),
		converter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Render sanitises the HTML and converts it to markdown. If conversion
// fails or produces empty output, the fallback plain text is returned.
func (r *Renderer) Render(html, sourceURL, fallback string) string {
	if html == "" {
		return fallback
	}
	clean := r.policy.Sanitize(html)
	result, err := r.converter.ConvertString(clean, converter.WithDomain(sourceURL))
	if err != nil || strings.TrimSpace(result) == "" {
		return fallback
	}
	return strings.TrimSpace(result)
}
