package compose

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"meshmind/internal/content"
)

type BlockKind int

const (
	KindTitle BlockKind = iota
	KindMeta
	KindHeading
	KindSubheading
	KindParagraph
	KindLabeled
	KindQuestion
	KindNote
	KindAnswer
	KindSpace
	KindPageBreak
)

type Section string

const (
	SectionHeader            Section = "header"
	SectionExplanation       Section = "explanation"
	SectionWorkedExamples    Section = "worked_examples"
	SectionPracticeQuestions Section = "practice_questions"
	SectionAnswerKey         Section = "answer_key"
)

// Block is one layout element. The renderer draws blocks in order and never
// decides on its own whether a section exists.
type Block struct {
	Kind       BlockKind
	Section    Section
	Text       string
	Label      string
	Inline     bool
	Number     int
	Tag        string
	Difficulty Difficulty
	Height     float64
}

type Options struct {
	Subject        string
	Grade          string
	IncludeAnswers bool
	Language       string
	GeneratedAt    time.Time
}

const (
	questionWorkSpace = 30
	exampleGap        = 10
)

// Layout plans the worksheet. Sections whose source field is empty are left out
// entirely; the answer key additionally requires IncludeAnswers.
func Layout(c content.Content, opts Options) []Block {
	l := labelsFor(opts.Language)
	at := opts.GeneratedAt
	if at.IsZero() {
		at = time.Now()
	}
	subject := capitalize(opts.Subject)

	blocks := []Block{
		{Kind: KindTitle, Section: SectionHeader, Text: c.TitleOr(fmt.Sprintf(l.DefaultTitle, subject, opts.Grade))},
		{Kind: KindMeta, Section: SectionHeader, Text: fmt.Sprintf("%s: %s | %s: %s | %s: %s", l.Subject, subject, l.Grade, opts.Grade, l.Generated, l.date(at))},
		{Kind: KindSpace, Section: SectionHeader, Height: 20},
	}

	if paras := paragraphs(c.Explanation); len(paras) > 0 {
		blocks = append(blocks, Block{Kind: KindHeading, Section: SectionExplanation, Text: l.Explanation})
		for _, p := range paras {
			blocks = append(blocks, Block{Kind: KindParagraph, Section: SectionExplanation, Text: p})
		}
		blocks = append(blocks, Block{Kind: KindSpace, Section: SectionExplanation, Height: 15})
	}

	if len(c.WorkedExamples) > 0 {
		blocks = append(blocks, Block{Kind: KindHeading, Section: SectionWorkedExamples, Text: l.WorkedExamples})
		for i, ex := range c.WorkedExamples {
			blocks = append(blocks,
				Block{Kind: KindSubheading, Section: SectionWorkedExamples, Text: fmt.Sprintf("%s %d", l.Example, i+1), Number: i + 1},
				Block{Kind: KindLabeled, Section: SectionWorkedExamples, Label: l.Problem, Text: ex.Problem, Inline: true, Number: i + 1},
				Block{Kind: KindLabeled, Section: SectionWorkedExamples, Label: l.Solution, Text: normalizeNewlines(ex.Solution), Number: i + 1},
				Block{Kind: KindSpace, Section: SectionWorkedExamples, Height: exampleGap},
			)
		}
		blocks = append(blocks, Block{Kind: KindSpace, Section: SectionWorkedExamples, Height: 15})
	}

	if len(c.PracticeQuestions) > 0 {
		blocks = append(blocks, Block{Kind: KindHeading, Section: SectionPracticeQuestions, Text: l.PracticeQuestions})
		for i, q := range c.PracticeQuestions {
			diff := strings.TrimSpace(q.Difficulty)
			if diff == "" {
				diff = "medium"
			}
			blocks = append(blocks,
				Block{
					Kind:       KindQuestion,
					Section:    SectionPracticeQuestions,
					Number:     i + 1,
					Text:       q.Question,
					Tag:        "[" + strings.ToUpper(diff) + "]",
					Difficulty: ParseDifficulty(diff),
				},
				Block{Kind: KindSpace, Section: SectionPracticeQuestions, Height: questionWorkSpace},
			)
		}
		blocks = append(blocks, Block{Kind: KindSpace, Section: SectionPracticeQuestions, Height: 20})
	}

	if opts.IncludeAnswers && len(c.AnswerKey) > 0 {
		blocks = append(blocks,
			Block{Kind: KindPageBreak, Section: SectionAnswerKey},
			Block{Kind: KindHeading, Section: SectionAnswerKey, Text: l.AnswerKey},
			Block{Kind: KindNote, Section: SectionAnswerKey, Text: l.AnswerKeyNote},
			Block{Kind: KindSpace, Section: SectionAnswerKey, Height: 10},
		)
		for i, a := range c.AnswerKey {
			blocks = append(blocks, Block{Kind: KindAnswer, Section: SectionAnswerKey, Number: i + 1, Text: a})
		}
	}
	return blocks
}

// Sections lists the distinct sections of a plan in order of appearance.
func Sections(blocks []Block) []Section {
	out := make([]Section, 0, 5)
	for _, b := range blocks {
		if len(out) == 0 || out[len(out)-1] != b.Section {
			out = append(out, b.Section)
		}
	}
	return out
}

func paragraphs(text string) []string {
	text = normalizeNewlines(text)
	out := make([]string, 0, 4)
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeNewlines(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
