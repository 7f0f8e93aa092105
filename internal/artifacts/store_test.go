package artifacts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"meshmind/internal/compose"
	"meshmind/internal/content"

	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "pdfs"))
	require.NoError(t, err)
	return s
}

func samplePDF(t *testing.T, answers bool) []byte {
	t.Helper()
	b, err := compose.Compose(content.Content{
		Title:             "Fractions",
		PracticeQuestions: []content.PracticeQuestion{{Question: "1/2 + 1/4?", Difficulty: "easy"}},
		AnswerKey:         content.Answers{"3/4"},
	}, compose.Options{Subject: "math", Grade: "4", IncludeAnswers: answers, GeneratedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	return b
}

func TestSanitizeTitleAndFilename(t *testing.T) {
	require.Equal(t, "Fractions Fun - Part_2", SanitizeTitle("  Fractions: Fun! - Part_2?/ "))
	require.Equal(t, "Fracciones y decimales", SanitizeTitle("Fracciones y decimales"))
	require.Equal(t, "Adding Fractions_ab12cd34.pdf", Filename("Adding Fractions!", "ab12cd34"))
	require.Equal(t, "Worksheet_ab12cd34.pdf", Filename("???", "ab12cd34"))
}

func TestNewIDLength(t *testing.T) {
	a, b := NewID(), NewID()
	require.Len(t, a, 8)
	require.NotEqual(t, a, b)
}

func TestParseFilenameSplitsOnLastUnderscore(t *testing.T) {
	title, id := ParseFilename("Grade_4 Fractions_ab12cd34.pdf")
	require.Equal(t, "Grade_4 Fractions", title)
	require.Equal(t, "ab12cd34", id)

	title, id = ParseFilename("loose.pdf")
	require.Equal(t, "loose.pdf", title)
	require.Equal(t, "loose.pdf", id)
}

func TestSaveAddsExtensionAndStaysInDir(t *testing.T) {
	s := newStore(t)
	path, err := s.Save([]byte("%PDF-1.3"), "../escape_ab12cd34")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(s.Dir(), "escape_ab12cd34.pdf"), path)
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestListFindReadDelete(t *testing.T) {
	s := newStore(t)
	data := samplePDF(t, true)
	_, err := s.Save(data, Filename("Fractions", "ab12cd34"))
	require.NoError(t, err)
	_, err = s.Save([]byte("not a pdf"), "notes.txt.pdf")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "readme.txt"), []byte("x"), 0o644))

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)

	name, err := s.Find("ab12")
	require.NoError(t, err)
	require.Equal(t, "Fractions_ab12cd34.pdf", name)

	rec, got, err := s.Read("ab12cd34")
	require.NoError(t, err)
	require.Equal(t, data, got)
	require.Equal(t, "Fractions", rec.Title)
	require.Equal(t, "ab12cd34", rec.ID)
	require.Equal(t, int64(len(data)), rec.SizeBytes)
	require.Equal(t, 2, rec.Pages)

	deleted, err := s.Delete("ab12cd34")
	require.NoError(t, err)
	require.Equal(t, "Fractions_ab12cd34.pdf", deleted)
	_, err = s.Find("ab12cd34")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestFindMissingAndEmptyID(t *testing.T) {
	s := newStore(t)
	_, err := s.Find("")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Delete("nope")
	require.ErrorIs(t, err, ErrNotFound)
	_, _, err = s.Read("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPageCount(t *testing.T) {
	n, err := PageCount(samplePDF(t, false))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = PageCount([]byte("garbage"))
	require.Error(t, err)
}

func TestNewRequiresDir(t *testing.T) {
	_, err := New(" ")
	require.Error(t, err)
}
