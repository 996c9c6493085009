package review

import (
	"strings"
	"testing"
)

func TestParseSummaryBullets(t *testing.T) {
	raw := strings.Join([]string{
		"- **Tense pacing** throughout",
		"* Strong lead performance",
		"1. Striking cinematography",
		"2) Memorable score",
		"- strong lead performance",
		"",
		"- Grounded dialogue",
		"- Lean runtime",
		"- Restrained direction",
		"- Satisfying structure",
		"- This ninth line is ignored",
	}, "\n")

	bullets := ParseSummaryBullets(raw)
	if len(bullets) != SummaryBulletCount {
		t.Fatalf("expected %d bullets, got %d: %v", SummaryBulletCount, len(bullets), bullets)
	}
	if bullets[0] != "Tense pacing throughout" {
		t.Fatalf("emphasis should be stripped, got %q", bullets[0])
	}
	if bullets[2] != "Striking cinematography" || bullets[3] != "Memorable score" {
		t.Fatalf("numbered forms should be cleaned: %v", bullets)
	}
	for i, b := range bullets {
		for j := i + 1; j < len(bullets); j++ {
			if strings.EqualFold(b, bullets[j]) {
				t.Fatalf("duplicate bullet survived: %q", b)
			}
		}
	}
}

func TestParseSummaryBulletsTruncates(t *testing.T) {
	long := strings.Repeat("a", SummaryBulletMaxLen+40)
	bullets := ParseSummaryBullets("- " + long)
	if len(bullets) != 1 {
		t.Fatalf("expected one bullet, got %d", len(bullets))
	}
	if got := len([]rune(bullets[0])); got > SummaryBulletMaxLen {
		t.Fatalf("bullet length %d exceeds cap %d", got, SummaryBulletMaxLen)
	}
}

func TestVerifySummary(t *testing.T) {
	var lines []string
	for i := 0; i < SummaryBulletCount; i++ {
		lines = append(lines, "- point "+strings.Repeat("x", i+1))
	}
	if !VerifySummary(strings.Join(lines, "\n")) {
		t.Fatal("full distinct list should verify")
	}
	if VerifySummary(strings.Join(lines[:SummaryBulletCount-1], "\n")) {
		t.Fatal("short list must not verify")
	}
	dup := append(append([]string{}, lines[:SummaryBulletCount-1]...), lines[0])
	if VerifySummary(strings.Join(dup, "\n")) {
		t.Fatal("duplicates must not count toward the bullet quota")
	}
}
