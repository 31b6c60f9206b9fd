// Package export renders search results in citation formats.
package export

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/campuskg/scholargraph/internal/semantic"
)

// ToBibTeX converts one search result to a BibTeX entry. The citation key
// is derived from the first author's surname and the year, falling back to
// the document ID when neither is known.
func ToBibTeX(r semantic.Result) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@article{%s,\n", citationKey(r)))

	if len(r.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", strings.Join(r.Authors, " and ")))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(r.Title)))

	if r.Year != 0 {
		b.WriteString(fmt.Sprintf("  year = {%d},\n", r.Year))
	}
	if r.Affiliation != "" {
		b.WriteString(fmt.Sprintf("  institution = {%s},\n", escapeLatex(r.Affiliation)))
	}
	if r.Abstract != "" {
		b.WriteString(fmt.Sprintf("  abstract = {%s},\n", escapeLatex(r.Abstract)))
	}

	b.WriteString("}\n")
	return b.String()
}

// ToBibTeXList converts multiple search results to BibTeX format.
func ToBibTeXList(results []semantic.Result) string {
	var entries []string
	for _, r := range results {
		entries = append(entries, ToBibTeX(r))
	}
	return strings.Join(entries, "\n")
}

// citationKey builds a key like "smith2023". Non-alphanumeric characters
// are stripped so the key stays BibTeX-safe.
func citationKey(r semantic.Result) string {
	if len(r.Authors) == 0 || r.Year == 0 {
		return sanitizeKey(r.DocumentID)
	}

	// First token of the first author name, typically the surname
	surname := strings.Fields(r.Authors[0])
	if len(surname) == 0 {
		return sanitizeKey(r.DocumentID)
	}
	return fmt.Sprintf("%s%d", sanitizeKey(strings.ToLower(surname[0])), r.Year)
}

func sanitizeKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
