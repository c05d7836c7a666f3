package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNote = `---
title: My Recipe
excerpt: Short teaser
status: published
category: food
tags:
  - recipes
  - spicy
---

# Heading

Body **bold** text with a [link](https://example.com).
`

func TestParse(t *testing.T) {
	t.Run("Фронтматтер и тело разделяются", func(t *testing.T) {
		note, err := Parse(sampleNote)
		require.NoError(t, err)

		assert.Equal(t, "My Recipe", note.Frontmatter.Title)
		assert.Equal(t, "Short teaser", note.Frontmatter.Excerpt)
		assert.Equal(t, "published", note.Frontmatter.Status)
		assert.Equal(t, "food", note.Frontmatter.Category)
		assert.Equal(t, []string{"recipes", "spicy"}, note.Frontmatter.Tags)
		assert.True(t, strings.HasPrefix(note.Content, "# Heading"))
		assert.NotContains(t, note.Content, "---")
	})

	t.Run("Заметка без фронтматтера", func(t *testing.T) {
		note, err := Parse("# Just a Title\n\nPlain body.")
		require.NoError(t, err)

		assert.Empty(t, note.Frontmatter.Title)
		assert.Equal(t, "# Just a Title\n\nPlain body.", note.Content)
	})

	t.Run("Сломанный YAML дает ошибку", func(t *testing.T) {
		_, err := Parse("---\ntitle: [unclosed\n---\nbody")
		assert.Error(t, err)
	})
}

func TestNote_Title(t *testing.T) {
	t.Run("Заголовок из фронтматтера в приоритете", func(t *testing.T) {
		note, err := Parse(sampleNote)
		require.NoError(t, err)
		assert.Equal(t, "My Recipe", note.Title())
	})

	t.Run("Фолбэк на первый H1", func(t *testing.T) {
		note, err := Parse("# Fallback Title\n\nBody text.")
		require.NoError(t, err)
		assert.Equal(t, "Fallback Title", note.Title())
	})

	t.Run("Без заголовка вообще", func(t *testing.T) {
		note, err := Parse("Just plain text, no headings.")
		require.NoError(t, err)
		assert.Empty(t, note.Title())
	})
}

func TestGenerateExcerpt(t *testing.T) {
	t.Run("Markdown разметка убирается", func(t *testing.T) {
		content := "# Header\n\nSome **bold** and *italic* text with a [link](https://x.com).\n- item one\n- item two"
		excerpt := GenerateExcerpt(content, 200)

		assert.NotContains(t, excerpt, "#")
		assert.NotContains(t, excerpt, "**")
		assert.NotContains(t, excerpt, "](")
		assert.Contains(t, excerpt, "bold")
		assert.Contains(t, excerpt, "italic")
		assert.Contains(t, excerpt, "link")
		assert.Contains(t, excerpt, "item one item two")
	})

	t.Run("Длинный текст обрезается с многоточием", func(t *testing.T) {
		content := strings.Repeat("word ", 100)
		excerpt := GenerateExcerpt(content, 50)

		assert.LessOrEqual(t, len(excerpt), 50+len("..."))
		assert.True(t, strings.HasSuffix(excerpt, "..."))
	})

	t.Run("Короткий текст не трогается", func(t *testing.T) {
		assert.Equal(t, "short text", GenerateExcerpt("short text", 200))
	})
}

func TestParseFile(t *testing.T) {
	t.Run("Чтение заметки с диска", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "note.md")
		require.NoError(t, os.WriteFile(path, []byte(sampleNote), 0o644))

		note, err := ParseFile(path)
		require.NoError(t, err)
		assert.Equal(t, "My Recipe", note.Title())
	})

	t.Run("Отсутствующий файл", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "missing.md"))
		assert.Error(t, err)
	})
}
