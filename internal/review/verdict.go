package review

import "strings"

// ExtractVerdict pulls the one-line verdict out of review text. The primary
// strategy scans for the verdict marker line and captures its trailing text
// with markup stripped. Returns "" when no verdict is present.
func ExtractVerdict(text string) string {
	section := Section{Name: VerdictMarker}
	for _, line := range strings.Split(text, "\n") {
		if rest, ok := matchHeader(line, section); ok && rest != "" {
			return rest
		}
	}
	return ""
}

// ExtractVerdictFromHTML is the fallback strategy for rendered review pages:
// it captures the text immediately following the rating block up to the next
// tag boundary. Returns "" when nothing usable follows the rating.
func ExtractVerdictFromHTML(html string) string {
	lower := strings.ToLower(html)
	idx := strings.Index(lower, "rating")
	if idx < 0 {
		return ""
	}
	rest := html[idx:]

	// Skip past the end of the rating block.
	blockEnd := -1
	for _, closer := range []string{"</p>", "<br>", "<br/>", "<br />"} {
		if pos := strings.Index(strings.ToLower(rest), closer); pos >= 0 {
			end := pos + len(closer)
			if blockEnd < 0 || end < blockEnd {
				blockEnd = end
			}
		}
	}
	if blockEnd < 0 {
		return ""
	}
	rest = rest[blockEnd:]

	verdict := stripTags(rest)
	// The verdict block may itself open with the marker header.
	if stripped, ok := matchHeader(verdict, Section{Name: VerdictMarker}); ok {
		verdict = stripped
	}
	if line, _, found := strings.Cut(verdict, "\n"); found {
		verdict = line
	}
	return stripEmphasis(strings.TrimSpace(verdict))
}

// stripTags drops HTML tags and decodes the handful of entities goldmark
// emits, keeping the text content.
func stripTags(html string) string {
	var b strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune('\n')
		case !inTag:
			b.WriteRune(r)
		}
	}
	replacer := strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'")
	return strings.TrimSpace(replacer.Replace(b.String()))
}
