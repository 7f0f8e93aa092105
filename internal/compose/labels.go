package compose

import (
	"fmt"
	"strings"
	"time"
)

type labels struct {
	Explanation       string
	WorkedExamples    string
	PracticeQuestions string
	AnswerKey         string
	AnswerKeyNote     string
	Example           string
	Problem           string
	Solution          string
	Subject           string
	Grade             string
	Generated         string
	Page              string
	DefaultTitle      string
	date              func(time.Time) string
}

var english = labels{
	Explanation:       "Concept Explanation",
	WorkedExamples:    "Worked Examples",
	PracticeQuestions: "Practice Questions",
	AnswerKey:         "Answer Key",
	AnswerKeyNote:     "For teacher/tutor reference",
	Example:           "Example",
	Problem:           "Problem",
	Solution:          "Solution",
	Subject:           "Subject",
	Grade:             "Grade",
	Generated:         "Generated",
	Page:              "Page",
	DefaultTitle:      "%s Worksheet - Grade %s",
	date:              func(t time.Time) string { return t.Format("January 2, 2006") },
}

var spanishMonths = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}

var spanish = labels{
	Explanation:       "Explicación del concepto",
	WorkedExamples:    "Ejemplos resueltos",
	PracticeQuestions: "Preguntas de práctica",
	AnswerKey:         "Clave de respuestas",
	AnswerKeyNote:     "Para referencia del maestro o tutor",
	Example:           "Ejemplo",
	Problem:           "Problema",
	Solution:          "Solución",
	Subject:           "Materia",
	Grade:             "Grado",
	Generated:         "Generado",
	Page:              "Página",
	DefaultTitle:      "Hoja de trabajo de %s - Grado %s",
	date: func(t time.Time) string {
		return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
	},
}

func labelsFor(language string) labels {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "spanish", "español", "espanol", "es":
		return spanish
	default:
		return english
	}
}
