package segment

import (
	"regexp"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

// Chapter headers open sections in normative acts. The header word comes in
// an all-caps and a title-case variant, in Cyrillic or Latin script, followed
// by a Roman or Arabic numeral, a separator and trailing text. The whole
// header line becomes the section title.
var chapterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:ГЛАВА|CHAPTER)\s+[IVXLCDM\d]+[\s.\-:].*$`),
	regexp.MustCompile(`^(?:Глава|Chapter)\s+[IVXLCDM\d]+[\s.\-:].*$`),
}

func matchChapter(line string) (headerMatch, bool) {
	for _, pattern := range chapterPatterns {
		if pattern.MatchString(line) {
			return headerMatch{title: line, kind: domain.KindChapter}, true
		}
	}
	return headerMatch{}, false
}
