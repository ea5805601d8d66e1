package application

import (
	"html"
	"regexp"
)

var (
	scriptTagRe  = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	iframeTagRe  = regexp.MustCompile(`(?is)<iframe\b.*?</iframe>`)
	imgOnErrorRe = regexp.MustCompile(`(?i)<img[^>]+onerror=`)
	jsSchemeRe   = regexp.MustCompile(`(?i)javascript:`)
)

// SanitizeText HTML-escapes a plain-text field (titles, excerpts, tags,
// contact fields) so it can be embedded in markup verbatim.
func SanitizeText(text string) string {
	if text == "" {
		return ""
	}
	return html.EscapeString(text)
}

// SanitizeMarkdown strips the handful of dangerous constructs from markdown
// content before it is stored or rendered: script and iframe elements are
// removed, img onerror handlers are dropped, and javascript: URLs are
// rewritten to an inert scheme.
func SanitizeMarkdown(markdown string) string {
	if markdown == "" {
		return ""
	}

	out := scriptTagRe.ReplaceAllString(markdown, "")
	out = iframeTagRe.ReplaceAllString(out, "")
	out = imgOnErrorRe.ReplaceAllString(out, "<img ")
	out = jsSchemeRe.ReplaceAllString(out, "blocked:")
	return out
}
