package review

import "strings"

// Normalizer rewrites raw generated text into the canonical section order
// and spacing. Unrecognized headers and stray text between sections are
// dropped.
type Normalizer struct{}

// NewNormalizer constructs a normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize extracts every recognized section and re-emits them in catalogue
// order: intro lines packed together, main sections separated by one blank
// line, and a final two-line outro block. Normalizing already-canonical text
// returns it unchanged.
func (n *Normalizer) Normalize(rawText string) string {
	captured := captureSections(rawText)

	var intro, main, outro []string
	for i, section := range Catalogue {
		content, ok := captured[i]
		if !ok || strings.TrimSpace(content) == "" {
			continue
		}
		switch section.Group {
		case GroupIntro:
			intro = append(intro, "**"+section.Name+":** "+collapseInline(content))
		case GroupMain:
			main = append(main, "**"+section.Name+":** "+strings.TrimSpace(content))
		case GroupOutro:
			outro = append(outro, "**"+section.Name+":** "+collapseInline(content))
		}
	}

	var blocks []string
	if len(intro) > 0 {
		blocks = append(blocks, strings.Join(intro, "\n"))
	}
	blocks = append(blocks, main...)
	if len(outro) > 0 {
		blocks = append(blocks, strings.Join(outro, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// captureSections scans the text line by line and records content per
// catalogue index. Intro and outro sections are single-line facts and take
// only their header line's remainder; main sections span until the next
// recognized header or end of text. A later duplicate header does not
// overwrite an earlier one.
func captureSections(rawText string) map[int]string {
	lines := strings.Split(strings.ReplaceAll(rawText, "\r\n", "\n"), "\n")
	captured := make(map[int]string)

	current := -1
	var buf []string
	flush := func() {
		if current < 0 {
			return
		}
		if _, exists := captured[current]; !exists {
			captured[current] = strings.TrimSpace(strings.Join(buf, "\n"))
		}
		current = -1
		buf = nil
	}

	for _, line := range lines {
		if idx, rest := findSection(line); idx >= 0 {
			flush()
			if Catalogue[idx].Group == GroupMain {
				current = idx
				if rest != "" {
					buf = append(buf, rest)
				}
				continue
			}
			if _, exists := captured[idx]; !exists {
				captured[idx] = rest
			}
			continue
		}
		if current >= 0 {
			buf = append(buf, stripEmphasis(line))
		}
	}
	flush()
	return captured
}

// collapseInline folds a captured span into a single line.
func collapseInline(content string) string {
	return strings.Join(strings.Fields(content), " ")
}
