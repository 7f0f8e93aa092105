package curriculum

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// DefaultSubjects are the subjects the service accepts.
var DefaultSubjects = []string{"math", "science"}

var fileExtensions = []string{".yaml", ".yml", ".json"}

type Topic struct {
	Name      string   `json:"name" yaml:"name"`
	Standards []string `json:"standards" yaml:"standards"`
}

type GradeEntry struct {
	Overview             string  `json:"overview" yaml:"overview"`
	Topics               []Topic `json:"topics" yaml:"topics"`
	VocabularyLevel      string  `json:"vocabulary_level" yaml:"vocabulary_level"`
	DifficultyGuidelines string  `json:"difficulty_guidelines" yaml:"difficulty_guidelines"`
}

type record struct {
	Grades map[string]GradeEntry `json:"grades" yaml:"grades"`
}

// Snapshot is the immutable curriculum loaded for the process lifetime. It has no
// mutating methods and is safe for concurrent readers.
type Snapshot struct {
	records map[string]record
}

func (s *Snapshot) subject(name string) (record, bool) {
	if s == nil {
		return record{}, false
	}
	rec, ok := s.records[strings.ToLower(strings.TrimSpace(name))]
	if !ok || len(rec.Grades) == 0 {
		return record{}, false
	}
	return rec, true
}

// HasSubject reports whether curriculum data exists for subject.
func (s *Snapshot) HasSubject(name string) bool {
	_, ok := s.subject(name)
	return ok
}

// Lookup returns a copy of the entry for an already-normalized grade label.
func (s *Snapshot) Lookup(subject, grade string) (GradeEntry, bool) {
	rec, ok := s.subject(subject)
	if !ok {
		return GradeEntry{}, false
	}
	entry, ok := rec.Grades[grade]
	if !ok {
		return GradeEntry{}, false
	}
	topics := make([]Topic, len(entry.Topics))
	for i, t := range entry.Topics {
		topics[i] = Topic{Name: t.Name, Standards: slices.Clone(t.Standards)}
	}
	entry.Topics = topics
	return entry, true
}

// Grades lists the grade labels known for subject, sorted.
func (s *Snapshot) Grades(subject string) []string {
	rec, ok := s.subject(subject)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(rec.Grades))
	for g := range rec.Grades {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Load reads one curriculum file per subject from fsys. A subject without a file
// yields an empty record; a file that cannot be decoded is an error.
func Load(ctx context.Context, fsys fs.FS, subjects ...string) (*Snapshot, error) {
	if len(subjects) == 0 {
		subjects = DefaultSubjects
	}
	recs := make([]record, len(subjects))
	g, _ := errgroup.WithContext(ctx)
	for i, subject := range subjects {
		g.Go(func() error {
			rec, err := loadSubject(fsys, subject)
			if err != nil {
				return err
			}
			recs[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap := &Snapshot{records: make(map[string]record, len(subjects))}
	for i, subject := range subjects {
		snap.records[strings.ToLower(subject)] = recs[i]
	}
	return snap, nil
}

func loadSubject(fsys fs.FS, subject string) (record, error) {
	base := strings.ToLower(subject) + "_curriculum"
	for _, ext := range fileExtensions {
		name := base + ext
		b, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return record{}, fmt.Errorf("read curriculum %s: %w", name, err)
		}
		var rec record
		switch path.Ext(name) {
		case ".json":
			err = json.Unmarshal(b, &rec)
		default:
			err = yaml.Unmarshal(b, &rec)
		}
		if err != nil {
			return record{}, fmt.Errorf("decode curriculum %s: %w", name, err)
		}
		return rec, nil
	}
	return record{}, nil
}

// Store hands out a single lazily loaded Snapshot. Repeated calls return the
// same snapshot (or the same load error).
type Store struct {
	load func() (*Snapshot, error)
}

func NewStore(fsys fs.FS, subjects ...string) *Store {
	return &Store{load: sync.OnceValues(func() (*Snapshot, error) {
		return Load(context.Background(), fsys, subjects...)
	})}
}

func (s *Store) Snapshot() (*Snapshot, error) {
	return s.load()
}

// Source returns the curriculum directory to load from; an empty dir selects the
// data compiled into the binary.
func Source(dir string) fs.FS {
	if strings.TrimSpace(dir) != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}
