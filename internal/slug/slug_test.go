package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "Обычный заголовок",
			title:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "Пунктуация и лишние пробелы",
			title:    "Hello, World!  Foo--Bar",
			expected: "hello-world-foo-bar",
		},
		{
			name:     "Верхний регистр",
			title:    "GoLang Tips & Tricks",
			expected: "golang-tips-tricks",
		},
		{
			name:     "Дефисы по краям",
			title:    "--- trimmed ---",
			expected: "trimmed",
		},
		{
			name:     "Цифры сохраняются",
			title:    "Top 10 Recipes 2026",
			expected: "top-10-recipes-2026",
		},
		{
			name:     "Только отбрасываемые символы",
			title:    "!!! ??? ...",
			expected: "",
		},
		{
			name:     "Пустая строка",
			title:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Derive(tt.title))
		})
	}
}

func TestDerive_Idempotent(t *testing.T) {
	// повторный прогон по собственному результату ничего не меняет
	titles := []string{"Hello, World!", "Top 10 Recipes", "  spaced   out  "}
	for _, title := range titles {
		once := Derive(title)
		assert.Equal(t, once, Derive(once))
	}
}
