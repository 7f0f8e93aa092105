package curriculum

import (
	"strconv"
	"strings"
	"unicode"
)

var ordinalSuffixes = []string{"grade", "th", "rd", "nd", "st"}

// NormalizeGrade maps free-form grade input onto the label space used by the
// curriculum files ("K", "1".."12", "Algebra 1", ...). It never fails: labels it
// does not recognise come back title-cased.
func NormalizeGrade(grade string) string {
	g := strings.ToLower(strings.TrimSpace(grade))

	switch g {
	case "k", "kindergarten":
		return "K"
	case "algebra 1", "algebra1", "algebra":
		return "Algebra 1"
	}

	stripped := g
	for _, s := range ordinalSuffixes {
		stripped = strings.ReplaceAll(stripped, s, "")
	}
	if n, err := strconv.Atoi(strings.TrimSpace(stripped)); err == nil {
		return strconv.Itoa(n)
	}
	return titleCase(g)
}

func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		b.WriteRune(r)
	}
	return b.String()
}
