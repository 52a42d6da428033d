package segment

import (
	"regexp"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

// Markdown headings of level 1 and 2 open sections in methodology
// documents. The captured heading text, marker stripped, becomes the
// section title. Deeper headings are body text.
var headingPatterns = []struct {
	re   *regexp.Regexp
	kind domain.SectionKind
}{
	{regexp.MustCompile(`^#\s+(.+)$`), domain.KindHeading1},
	{regexp.MustCompile(`^##\s+(.+)$`), domain.KindHeading2},
}

func matchHeading(line string) (headerMatch, bool) {
	for _, p := range headingPatterns {
		if m := p.re.FindStringSubmatch(line); m != nil {
			return headerMatch{title: m[1], kind: p.kind}, true
		}
	}
	return headerMatch{}, false
}
