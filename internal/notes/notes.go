package notes

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// note metadata from the YAML block at the top of the file
type Frontmatter struct {
	Title    string   `yaml:"title"`
	Excerpt  string   `yaml:"excerpt"`
	Status   string   `yaml:"status"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
}

type Note struct {
	Frontmatter Frontmatter
	Content     string
}

var (
	h1Re       = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	headerRe   = regexp.MustCompile(`(?m)^#+\s+`)
	boldRe     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe   = regexp.MustCompile(`\*(.+?)\*`)
	linkRe     = regexp.MustCompile(`\[(.+?)\]\(.+?\)`)
	listRe     = regexp.MustCompile(`(?m)^[-*]\s+`)
	newlinesRe = regexp.MustCompile(`\n+`)
)

func ParseFile(path string) (*Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать заметку: %w", err)
	}
	return Parse(string(data))
}

// Parse splits the note text, frontmatter is optional
func Parse(text string) (*Note, error) {
	note := &Note{}

	body := text
	if strings.HasPrefix(text, "---\n") || strings.HasPrefix(text, "---\r\n") {
		rest := text[strings.Index(text, "\n")+1:]
		end := strings.Index(rest, "\n---")
		if end >= 0 {
			front := rest[:end]
			if err := yaml.Unmarshal([]byte(front), &note.Frontmatter); err != nil {
				return nil, fmt.Errorf("не удалось разобрать фронтматтер: %w", err)
			}
			body = rest[end+len("\n---"):]
			if idx := strings.Index(body, "\n"); idx >= 0 {
				body = body[idx+1:]
			} else {
				body = ""
			}
		}
	}

	note.Content = strings.TrimSpace(body)
	return note, nil
}

// Title prefers the frontmatter title, falls back to the first H1
func (n *Note) Title() string {
	if n.Frontmatter.Title != "" {
		return n.Frontmatter.Title
	}
	if m := h1Re.FindStringSubmatch(n.Content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func (n *Note) Excerpt() string {
	if n.Frontmatter.Excerpt != "" {
		return n.Frontmatter.Excerpt
	}
	return GenerateExcerpt(n.Content, 200)
}

// GenerateExcerpt strips the markdown formatting and cuts the text to maxLength
func GenerateExcerpt(content string, maxLength int) string {
	text := headerRe.ReplaceAllString(content, "")
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	text = listRe.ReplaceAllString(text, "")
	text = newlinesRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if len(text) > maxLength {
		text = strings.TrimSpace(text[:maxLength]) + "..."
	}
	return text
}
