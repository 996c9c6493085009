package review

import "testing"

func TestExtractVerdictPrimary(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"plain marker", "Rating: 7/10\nVerdict in One Line: Great but slow.", "Great but slow."},
		{"bold marker", "**Verdict in One Line:** Sharp and funny.", "Sharp and funny."},
		{"emphasized value", "Verdict in One Line: *A keeper.*", "A keeper."},
		{"no marker", "Rating: 7/10\nGood stuff.", ""},
		{"marker without text", "Verdict in One Line:", ""},
		{"empty input", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractVerdict(tc.text); got != tc.want {
				t.Fatalf("ExtractVerdict = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractVerdictFromHTML(t *testing.T) {
	html := "<p><strong>Rating:</strong> 8/10</p>\n<p><strong>Verdict in One Line:</strong> Quietly brilliant.</p>"
	if got := ExtractVerdictFromHTML(html); got != "Quietly brilliant." {
		t.Fatalf("ExtractVerdictFromHTML = %q", got)
	}
}

func TestExtractVerdictFromHTMLNoRating(t *testing.T) {
	if got := ExtractVerdictFromHTML("<p>Nothing here.</p>"); got != "" {
		t.Fatalf("expected empty verdict, got %q", got)
	}
}

func TestExtractVerdictFromHTMLNothingAfterRating(t *testing.T) {
	if got := ExtractVerdictFromHTML("<p><strong>Rating:</strong> 8/10</p>"); got != "" {
		t.Fatalf("expected empty verdict, got %q", got)
	}
}
