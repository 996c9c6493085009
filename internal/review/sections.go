package review

import "strings"

// Group places a section in one of the three output blocks.
type Group int

const (
	GroupIntro Group = iota
	GroupMain
	GroupOutro
)

// Section is one entry of the fixed header catalogue.
type Section struct {
	Name    string
	Group   Group
	aliases []string
}

// Catalogue is the ordered list of recognized section headers. Order here is
// the canonical output order.
var Catalogue = []Section{
	{Name: "Name of the Movie", Group: GroupIntro},
	{Name: "Name of the Series", Group: GroupIntro},
	{Name: "Name of the Episode", Group: GroupIntro},
	{Name: "Release Date", Group: GroupIntro},
	{Name: "Genre", Group: GroupIntro},
	{Name: "Language", Group: GroupIntro},
	{Name: "Director", Group: GroupIntro},
	{Name: "Cast", Group: GroupIntro},
	{Name: "Plot Summary", Group: GroupMain},
	{Name: "Direction", Group: GroupMain},
	{Name: "Performances", Group: GroupMain},
	{Name: "Music & Sound", Group: GroupMain, aliases: []string{"Music and Sound"}},
	{Name: "Cinematography", Group: GroupMain},
	{Name: "Strengths", Group: GroupMain},
	{Name: "Weaknesses", Group: GroupMain},
	{Name: "Audience Appeal", Group: GroupMain},
	{Name: "Overall Verdict", Group: GroupMain},
	{Name: "Rating", Group: GroupOutro},
	{Name: "Verdict in One Line", Group: GroupOutro},
}

// Discriminator markers for the format verifier.
const (
	MarkerMovie   = "Name of the Movie"
	MarkerSeries  = "Name of the Series"
	MarkerEpisode = "Name of the Episode"
)

// VerdictMarker is the header of the one-line verdict section.
const VerdictMarker = "Verdict in One Line"

// matchHeader reports whether the line opens with the given section header,
// tolerating bullet glyphs, markdown emphasis, hash prefixes, and an optional
// trailing colon. On a match it returns the remainder of the line after the
// header (colon and markup stripped).
func matchHeader(line string, section Section) (string, bool) {
	stripped := stripLineDecorations(line)
	for _, name := range append([]string{section.Name}, section.aliases...) {
		if len(stripped) < len(name) {
			continue
		}
		if !strings.EqualFold(stripped[:len(name)], name) {
			continue
		}
		rest := stripped[len(name):]
		// The header must end at the name: next rune is a colon, markup,
		// or nothing. "Direction" must not match "Directions were odd".
		trimmedRest := strings.TrimLeft(rest, "*_")
		switch {
		case trimmedRest == "":
			return "", true
		case strings.HasPrefix(trimmedRest, ":"):
			return stripEmphasis(strings.TrimSpace(trimmedRest[1:])), true
		}
	}
	return "", false
}

// findSection returns the catalogue index of the section whose header opens
// the line, or -1.
func findSection(line string) (int, string) {
	for i, section := range Catalogue {
		if rest, ok := matchHeader(line, section); ok {
			return i, rest
		}
	}
	return -1, ""
}

// stripLineDecorations removes leading bullet glyphs, hashes, blockquote
// markers, and emphasis runes so header matching sees bare text.
func stripLineDecorations(line string) string {
	line = strings.TrimSpace(line)
	for {
		trimmed := strings.TrimLeft(line, "-•>#")
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == line {
			break
		}
		line = trimmed
	}
	// Leading emphasis: **Header:** or _Header_.
	line = strings.TrimLeft(line, "*_")
	return strings.TrimSpace(line)
}

// stripEmphasis removes markdown emphasis and code markers from a span.
func stripEmphasis(s string) string {
	replacer := strings.NewReplacer("**", "", "__", "", "*", "", "_", "", "`", "")
	return strings.TrimSpace(replacer.Replace(s))
}

// containsMarker reports whether any line of the text opens with the given
// marker header.
func containsMarker(text, marker string) bool {
	section := Section{Name: marker}
	for _, line := range strings.Split(text, "\n") {
		if _, ok := matchHeader(line, section); ok {
			return true
		}
	}
	return false
}
