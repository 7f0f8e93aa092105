package curriculum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeGrade(t *testing.T) {
	cases := map[string]string{
		"K":             "K",
		" kindergarten": "K",
		"Algebra":       "Algebra 1",
		"ALGEBRA1":      "Algebra 1",
		"algebra 1":     "Algebra 1",
		"4":             "4",
		"4th Grade":     "4",
		"grade 3":       "3",
		"1st":           "1",
		"2nd grade":     "2",
		"3rd":           "3",
		"07":            "7",
		"pre-k":         "Pre-K",
		"first grade":   "First Grade",
		"geometry":      "Geometry",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeGrade(in), "input %q", in)
	}
}

func TestNormalizeGradeIdempotent(t *testing.T) {
	inputs := []string{"K", "kindergarten", "4th Grade", "4", "Algebra", "12th", "honors chemistry", "pre-k", "first grade", "  Grade 10 "}
	for _, in := range inputs {
		once := NormalizeGrade(in)
		require.Equal(t, once, NormalizeGrade(once), "input %q", in)
	}
}

func TestNormalizeGradeOrdinalAndPlainAgree(t *testing.T) {
	require.Equal(t, "4", NormalizeGrade("4"))
	require.Equal(t, NormalizeGrade("4"), NormalizeGrade("4th Grade"))
}
