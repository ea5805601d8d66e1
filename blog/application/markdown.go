package application

import (
	"regexp"
	"strings"
)

// Renderer converts a restricted Markdown subset to an HTML fragment.
type Renderer interface {
	Render(markdown string) string
}

// MarkdownRenderer handles the restricted subset: images, h1-h3 headings,
// bold/italic, flat lists, links, blockquotes and paragraphs. No nested
// lists, code blocks or tables.
//
// Rules apply in a fixed order; images are matched before links because
// link syntax is a subset of image syntax. List items are wrapped as
// unordered lists regardless of marker — the ordered/unordered distinction
// is intentionally not made.
type MarkdownRenderer struct{}

var _ Renderer = (*MarkdownRenderer)(nil)

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

var (
	imageRe    = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	h1Re       = regexp.MustCompile(`(?m)^# (.*)$`)
	h2Re       = regexp.MustCompile(`(?m)^## (.*)$`)
	h3Re       = regexp.MustCompile(`(?m)^### (.*)$`)
	boldRe     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe   = regexp.MustCompile(`\*(.*?)\*`)
	listItemRe = regexp.MustCompile(`^(?:[*-]|\d+\.) (.*)$`)
	linkRe     = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	quoteRe    = regexp.MustCompile(`(?m)^> (.*)$`)
	blockLedRe = regexp.MustCompile(`^<(?:h1|h2|h3|ul|ol|li|blockquote|p|img)\b`)
	blankRe    = regexp.MustCompile(`\n[ \t]*\n`)
)

// Render converts markdown to an HTML fragment. Input is treated as
// untrusted text and passed through the markdown sanitizer first.
func (r *MarkdownRenderer) Render(markdown string) string {
	if markdown == "" {
		return ""
	}

	out := SanitizeMarkdown(markdown)

	out = imageRe.ReplaceAllString(out, `<img src="$2" alt="$1">`)

	out = h1Re.ReplaceAllString(out, "<h1>$1</h1>")
	out = h2Re.ReplaceAllString(out, "<h2>$1</h2>")
	out = h3Re.ReplaceAllString(out, "<h3>$1</h3>")

	out = boldRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicRe.ReplaceAllString(out, "<em>$1</em>")

	out = wrapListItems(out)

	out = linkRe.ReplaceAllString(out, `<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)

	out = quoteRe.ReplaceAllString(out, "<blockquote>$1</blockquote>")

	return wrapParagraphs(out)
}

// wrapListItems turns list-marker lines into <li> elements and wraps each
// run of consecutive items in a single <ul>.
func wrapListItems(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	var items []string

	flush := func() {
		if len(items) == 0 {
			return
		}
		out = append(out, "<ul>"+strings.Join(items, "")+"</ul>")
		items = nil
	}

	for _, line := range lines {
		if m := listItemRe.FindStringSubmatch(line); m != nil {
			items = append(items, "<li>"+m[1]+"</li>")
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()

	return strings.Join(out, "\n")
}

// wrapParagraphs wraps blank-line-separated blocks in <p>. Blocks that
// already begin with a block-level tag are left as-is; empty blocks are
// dropped.
func wrapParagraphs(s string) string {
	blocks := blankRe.Split(s, -1)
	out := make([]string, 0, len(blocks))

	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if blockLedRe.MatchString(block) {
			out = append(out, block)
			continue
		}
		out = append(out, "<p>"+block+"</p>")
	}

	return strings.Join(out, "\n")
}
