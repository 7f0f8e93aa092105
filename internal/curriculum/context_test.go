package curriculum

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

const testMath = `
grades:
  K:
    overview: Counting and number sense
    topics:
      - name: Counting
        standards: ["K.CC.1"]
  "4":
    overview: Fourth grade overview
    topics:
      - name: Fractions
        standards: ["4.NF.1", "4.NF.2", "4.NF.3", "4.NF.4"]
      - name: Decimals
        standards: ["4.NF.6"]
    vocabulary_level: Grade four words
    difficulty_guidelines: Mix one and two step problems
  "5":
    topics:
      - name: Volume
`

func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	snap, err := Load(context.Background(), fstest.MapFS{
		"math_curriculum.yaml": {Data: []byte(testMath)},
	})
	require.NoError(t, err)
	return snap
}

func TestAssembleUnknownSubjectIsEmpty(t *testing.T) {
	snap := testSnapshot(t)
	require.Equal(t, "", snap.Assemble("fractions", "science", "4"))
	require.Equal(t, "", snap.Assemble("fractions", "history", "4"))
}

func TestAssembleUnknownGradeFallsBackWithOriginalLabel(t *testing.T) {
	snap := testSnapshot(t)
	require.Equal(t, "Use age-appropriate math content for grade 9th grade.", snap.Assemble("fractions", "math", "9th grade"))
}

func TestAssembleFiltersTopicsByKeyword(t *testing.T) {
	snap := testSnapshot(t)
	out := snap.AssembleWithKeywords("math", "4", []string{"fraction"})
	require.Contains(t, out, "- Fractions")
	require.NotContains(t, out, "Decimals")
}

func TestAssembleNoKeywordsKeepsAllTopics(t *testing.T) {
	snap := testSnapshot(t)
	out := snap.Assemble("worksheet for grade 4", "math", "4th grade")
	require.Contains(t, out, "- Fractions")
	require.Contains(t, out, "- Decimals")
}

func TestAssembleCapsStandardsAndOrdersBlocks(t *testing.T) {
	snap := testSnapshot(t)
	out := snap.AssembleWithKeywords("math", "4", nil)
	require.Contains(t, out, "  • 4.NF.3")
	require.NotContains(t, out, "4.NF.4")

	parts := strings.Split(out, "\n\n")
	require.Len(t, parts, 4)
	require.True(t, strings.HasPrefix(parts[0], "GRADE 4 OVERVIEW:\nFourth grade overview"))
	require.True(t, strings.HasPrefix(parts[1], "KEY TOPICS:\n- Fractions"))
	require.Equal(t, "VOCABULARY LEVEL: Grade four words", parts[2])
	require.Equal(t, "DIFFICULTY GUIDELINES:\nMix one and two step problems", parts[3])
}

func TestAssembleOmitsAbsentBlocks(t *testing.T) {
	snap := testSnapshot(t)
	out := snap.AssembleWithKeywords("math", "5", nil)
	require.Equal(t, "KEY TOPICS:\n- Volume", out)
	require.Equal(t, "", snap.AssembleWithKeywords("math", "5", []string{"angles"}))
}

func TestAssembleKindergartenScenario(t *testing.T) {
	snap := testSnapshot(t)
	out := snap.Assemble("counting to 10", "math", "K")
	overview := strings.Index(out, "GRADE K OVERVIEW:\nCounting and number sense")
	topic := strings.Index(out, "- Counting\n  • K.CC.1")
	require.GreaterOrEqual(t, overview, 0)
	require.Greater(t, topic, overview)
}

func TestAssembleIsDeterministic(t *testing.T) {
	snap := testSnapshot(t)
	a := snap.Assemble("fractions and decimals", "math", "4")
	b := snap.Assemble("fractions and decimals", "math", "4")
	require.Equal(t, a, b)
}
