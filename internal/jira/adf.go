package jira

import "strings"

// MarkdownToADF converts a markdown-like description into an ADF document.
// The conversion is deliberately shallow: "# " and "## " become headings,
// "- "/"* " lines become bullet-prefixed paragraphs, blank lines break
// paragraphs and consecutive text lines are joined with spaces.
func MarkdownToADF(markdown string) *ADFDoc {
	var content []ADFNode
	var paragraph []string

	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(paragraph, " "))
		if text != "" {
			content = append(content, paragraphNode(text))
		}
		paragraph = paragraph[:0]
	}

	for _, line := range strings.Split(markdown, "\n") {
		switch {
		case strings.HasPrefix(line, "## "):
			flush()
			content = append(content, headingNode(2, strings.TrimSpace(line[3:])))
		case strings.HasPrefix(line, "# "):
			flush()
			content = append(content, headingNode(1, strings.TrimSpace(line[2:])))
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			flush()
			content = append(content, paragraphNode("• "+strings.TrimSpace(line[2:])))
		case strings.TrimSpace(line) == "":
			flush()
		default:
			paragraph = append(paragraph, line)
		}
	}
	flush()

	return &ADFDoc{
		Type:    "doc",
		Version: 1,
		Content: content,
	}
}

func paragraphNode(text string) ADFNode {
	return ADFNode{
		Type:    "paragraph",
		Content: []ADFNode{{Type: "text", Text: text}},
	}
}

func headingNode(level int, text string) ADFNode {
	return ADFNode{
		Type:    "heading",
		Attrs:   map[string]any{"level": level},
		Content: []ADFNode{{Type: "text", Text: text}},
	}
}
