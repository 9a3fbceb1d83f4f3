// Package langdetect names the language of code spans so renderers can
// label and style them.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// candidates restricts the classifier to languages commonly quoted in
// articles; classifying against every known language is slow and noisy.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "Kotlin", "Swift", "C", "C++",
	"SQL", "JSON", "YAML", "HTML", "CSS", "Dockerfile",
}

// marker is a prefix or substring that identifies a language outright.
type marker struct {
	lang     string
	prefix   string
	contains []string
}

// markers are checked before the classifier, most specific first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markers = []marker{
	{lang: "go", prefix: "package "},
	{lang: "html", prefix: "<!doctype html"},
	{lang: "html", prefix: "<html"},
	{lang: "dockerfile", prefix: "from "},
	{lang: "sql", prefix: "select "},
	{lang: "sql", prefix: "insert into "},
	{lang: "sql", prefix: "create table "},
	{lang: "rust", contains: []string{"fn main()", "println!"}},
	{lang: "python", contains: []string{"def ", "):"}},
	{lang: "python", contains: []string{"__name__"}},
	{lang: "javascript", contains: []string{"console.log"}},
}

// Language returns the language for a code span, preferring the declared
// info string over detection. It returns "" when nothing is known.
func Language(info, code string) string {
	if lang := FromInfo(info); lang != "" {
		return lang
	}
	return Detect(code)
}

// FromInfo normalizes a fence info string or class attribute such as
// "go {linenos=true}", "language-python" or "main.rs".
func FromInfo(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}

	word := strings.TrimPrefix(strings.TrimPrefix(fields[0], "language-"), "lang-")
	if ext := filepath.Ext(word); ext != "" && ext != word {
		if lang, safe := enry.GetLanguageByExtension(word); safe {
			return normalize(lang)
		}
	}
	return normalize(word)
}

// Detect guesses the language of code. It returns "" when unsure.
func Detect(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(trimmed)); safe {
		return normalize(lang)
	}

	lower := strings.ToLower(trimmed)
	for _, m := range markers {
		if m.matches(lower) {
			return m.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier([]byte(code), candidates); safe && lang != "" {
		return normalize(lang)
	}
	return ""
}

func (m marker) matches(lower string) bool {
	if m.prefix != "" {
		return strings.HasPrefix(lower, m.prefix)
	}
	for _, needle := range m.contains {
		if !strings.Contains(lower, needle) {
			return false
		}
	}
	return len(m.contains) > 0
}

// normalize converts go-enry language names to short lowercase tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	default:
		return strings.ToLower(lang)
	}
}
