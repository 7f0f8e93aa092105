package artifacts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"meshmind/internal/models"
	"meshmind/internal/util"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
)

var ErrNotFound = errors.New("pdf not found")

const ext = ".pdf"

// Store keeps worksheet PDFs as flat files named {title}_{id}.pdf. The filename is
// the only index; lookups scan the directory.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("artifact dir is required")
	}
	if err := util.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// NewID returns the first eight characters of a random UUID.
func NewID() string {
	return uuid.NewString()[:8]
}

// SanitizeTitle keeps letters, digits, spaces, hyphens and underscores.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func Filename(title, id string) string {
	safe := SanitizeTitle(title)
	if safe == "" {
		safe = "Worksheet"
	}
	return safe + "_" + id + ext
}

// Save writes data under filename and returns the full path.
func (s *Store) Save(data []byte, filename string) (string, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid artifact filename %q", filename)
	}
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	path, err := util.SafeJoin(s.dir, name)
	if err != nil {
		return "", err
	}
	if err := util.WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("save artifact %s: %w", name, err)
	}
	return path, nil
}

// List returns every stored PDF, newest first.
func (s *Store) List() ([]models.ArtifactRecord, error) {
	names, err := s.pdfNames()
	if err != nil {
		return nil, err
	}
	out := make([]models.ArtifactRecord, 0, len(names))
	for _, name := range names {
		rec, err := s.stat(name)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Find returns the first stored filename containing id.
func (s *Store) Find(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrNotFound
	}
	names, err := s.pdfNames()
	if err != nil {
		return "", err
	}
	for _, name := range names {
		if strings.Contains(name, id) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%s: %w", id, ErrNotFound)
}

func (s *Store) Read(id string) (models.ArtifactRecord, []byte, error) {
	name, err := s.Find(id)
	if err != nil {
		return models.ArtifactRecord{}, nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return models.ArtifactRecord{}, nil, fmt.Errorf("read artifact %s: %w", name, err)
	}
	rec, err := s.stat(name)
	if err != nil {
		return models.ArtifactRecord{}, nil, err
	}
	rec.Pages, _ = PageCount(data)
	return rec, data, nil
}

func (s *Store) Delete(id string) (string, error) {
	name, err := s.Find(id)
	if err != nil {
		return "", err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("delete artifact %s: %w", name, err)
	}
	return name, nil
}

// ParseFilename splits {title}_{id}.pdf on the last underscore. Names without
// an underscore use the whole name for both parts.
func ParseFilename(name string) (title, id string) {
	i := strings.LastIndex(name, "_")
	if i < 0 {
		return name, name
	}
	return name[:i], strings.TrimSuffix(name[i+1:], ext)
}

// PageCount reads the page count back from a PDF.
func PageCount(data []byte) (int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	return r.NumPage(), nil
}

func (s *Store) pdfNames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read artifact dir: %w", err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") && strings.HasSuffix(e.Name(), ext) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func (s *Store) stat(name string) (models.ArtifactRecord, error) {
	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		return models.ArtifactRecord{}, fmt.Errorf("stat artifact %s: %w", name, err)
	}
	title, id := ParseFilename(name)
	return models.ArtifactRecord{
		ID:        id,
		Filename:  name,
		Title:     title,
		CreatedAt: info.ModTime(),
		SizeBytes: info.Size(),
	}, nil
}
