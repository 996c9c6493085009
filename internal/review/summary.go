package review

import "strings"

const (
	// SummaryBulletCount is the exact number of bullets a summary carries.
	SummaryBulletCount = 8
	// SummaryBulletMaxLen is the per-bullet truncation length in runes.
	SummaryBulletMaxLen = 120
)

// ParseSummaryBullets extracts the bullet list from raw generated text:
// bullet glyphs, numbering, and emphasis stripped, each line truncated to
// the maximum length, deduplicated case-insensitively, capped at the fixed
// count.
func ParseSummaryBullets(rawText string) []string {
	seen := make(map[string]struct{})
	bullets := make([]string, 0, SummaryBulletCount)
	for _, line := range strings.Split(rawText, "\n") {
		bullet := cleanBulletLine(line)
		if bullet == "" {
			continue
		}
		key := strings.ToLower(bullet)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		bullets = append(bullets, bullet)
		if len(bullets) == SummaryBulletCount {
			break
		}
	}
	return bullets
}

// VerifySummary reports whether raw generated text yields a full set of
// distinct bullets. Used as the attempt-loop verifier for the summary pass.
func VerifySummary(rawText string) bool {
	return len(ParseSummaryBullets(rawText)) == SummaryBulletCount
}

func cleanBulletLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*•>")
	line = strings.TrimSpace(line)
	// Numbered lists: "3." or "3)".
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		line = strings.TrimSpace(line[i+1:])
	}
	line = stripEmphasis(line)
	runes := []rune(line)
	if len(runes) > SummaryBulletMaxLen {
		line = strings.TrimSpace(string(runes[:SummaryBulletMaxLen]))
	}
	return line
}
