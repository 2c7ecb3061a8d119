package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// HTMLConverter turns HTML documents into Markdown. Input is sanitized
// first so scripts, styles and event handlers never reach the text.
type HTMLConverter struct {
	policy *bluemonday.Policy
	conv   *converter.Converter
}

// NewHTMLConverter creates an HTMLConverter with the user-generated-content
// sanitizing policy and CommonMark, table and strikethrough output.
func NewHTMLConverter() *HTMLConverter {
	return &HTMLConverter{
		policy: bluemonday.UGCPolicy(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
				strikethrough.NewStrikethroughPlugin(),
			),
		),
	}
}

// ToMarkdown sanitizes html and converts it to Markdown.
func (c *HTMLConverter) ToMarkdown(ctx context.Context, html string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	clean := c.policy.Sanitize(html)
	md, err := c.conv.ConvertString(clean, converter.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTML, err)
	}
	return strings.TrimSpace(md), nil
}
