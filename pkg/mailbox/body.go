package mailbox

import (
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/emersion/go-message/mail"
	"github.com/microcosm-cc/bluemonday"
)

var (
	reBreak  = regexp.MustCompile(`(?i)<br\s*/?>`)
	reScript = regexp.MustCompile(`(?is)<script.*?>.*?</script>`)
	reStyle  = regexp.MustCompile(`(?is)<style.*?>.*?</style>`)

	// strips every remaining tag, leaving text content only
	stripTags = bluemonday.StrictPolicy()
)

// messageBody parses a raw RFC 5322 message and returns its normalized
// plain-text body. The plain-text part wins; an HTML-only message is
// converted: line breaks become newlines, script/style blocks are removed,
// and all remaining markup is stripped.
func messageBody(r io.Reader) string {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return ""
	}
	defer mr.Close()

	var text, htmlBody string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue // attachments are not feed material
		}

		contentType, _, err := header.ContentType()
		if err != nil {
			continue
		}

		data, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}

		switch contentType {
		case "text/plain":
			if text == "" {
				text = string(data)
			}
		case "text/html":
			if htmlBody == "" {
				htmlBody = string(data)
			}
		}
	}

	return toPlainText(text, htmlBody)
}

// toPlainText prefers the plain-text body and falls back to a stripped-down
// rendering of the HTML body
func toPlainText(text, htmlBody string) string {
	if strings.TrimSpace(text) != "" {
		return text
	}
	if htmlBody == "" {
		return ""
	}

	out := reBreak.ReplaceAllString(htmlBody, "\n")
	out = reScript.ReplaceAllString(out, "")
	out = reStyle.ReplaceAllString(out, "")
	out = stripTags.Sanitize(out)
	// the sanitizer escapes text content, undo it
	out = html.UnescapeString(out)
	return strings.TrimSpace(out)
}
