package curriculum

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingSubjectIsEmpty(t *testing.T) {
	snap, err := Load(context.Background(), fstest.MapFS{}, "math", "science")
	require.NoError(t, err)
	require.False(t, snap.HasSubject("math"))
	require.Nil(t, snap.Grades("science"))
}

func TestLoadReadsJSON(t *testing.T) {
	snap, err := Load(context.Background(), fstest.MapFS{
		"science_curriculum.json": {Data: []byte(`{"grades":{"3":{"overview":"Forces","topics":[{"name":"Magnets","standards":["3-PS2-3"]}]}}}`)},
	}, "science")
	require.NoError(t, err)
	entry, ok := snap.Lookup("Science", "3")
	require.True(t, ok)
	require.Equal(t, "Forces", entry.Overview)
	require.Equal(t, []string{"3-PS2-3"}, entry.Topics[0].Standards)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	_, err := Load(context.Background(), fstest.MapFS{
		"math_curriculum.json": {Data: []byte(`{"grades": [`)},
	}, "math")
	require.Error(t, err)
}

func TestLookupReturnsCopy(t *testing.T) {
	snap := testSnapshot(t)
	entry, ok := snap.Lookup("math", "4")
	require.True(t, ok)
	entry.Topics[0].Standards[0] = "mutated"
	again, _ := snap.Lookup("math", "4")
	require.Equal(t, "4.NF.1", again.Topics[0].Standards[0])
}

func TestStoreLoadsOnce(t *testing.T) {
	store := NewStore(Source(""))
	a, err := store.Snapshot()
	require.NoError(t, err)
	b, err := store.Snapshot()
	require.NoError(t, err)
	require.Same(t, a, b)
}

func TestEmbeddedCurriculumCoversBothSubjects(t *testing.T) {
	snap, err := NewStore(Source("")).Snapshot()
	require.NoError(t, err)
	require.Contains(t, snap.Grades("math"), "K")
	require.Contains(t, snap.Grades("math"), "Algebra 1")
	require.Contains(t, snap.Grades("science"), "4")

	out := snap.Assemble("teach me fractions", "math", "4th grade")
	require.Contains(t, out, "GRADE 4 OVERVIEW:")
	require.Contains(t, out, "- Fractions")
	require.NotContains(t, out, "- Decimals")
}

func TestReadersCannotChangeSnapshot(t *testing.T) {
	snap, err := Load(context.Background(), Source(""), DefaultSubjects...)
	require.NoError(t, err)
	before := snap.Assemble("fractions", "math", "4")
	beforeK := snap.Assemble("counting", "math", "K")

	entry, ok := snap.Lookup("math", "4")
	require.True(t, ok)
	entry.Topics[0].Name = "Changed"
	entry.Overview = "Changed"
	grades := snap.Grades("math")
	grades[0] = "Changed"

	require.Equal(t, before, snap.Assemble("fractions", "math", "4"))
	require.Equal(t, beforeK, snap.Assemble("counting", "math", "K"))
	require.Contains(t, beforeK, "GRADE K OVERVIEW:")
	require.True(t, snap.HasSubject("math"))
}
