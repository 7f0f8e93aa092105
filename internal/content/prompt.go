package content

import (
	"fmt"
	"strings"
)

const genericGrounding = "Use age-appropriate content for the specified grade level."

const systemPromptTemplate = `You are an expert %[1]s educator creating content for grade %[2]s students.

LANGUAGE INSTRUCTION: Generate ALL content in %[3]s.

CURRICULUM CONTEXT:
%[4]s

OUTPUT FORMAT (respond in this exact JSON structure):
{
    "title": "Clear, descriptive title for the worksheet",
    "explanation": "Clear, age-appropriate explanation of the concept (2-3 paragraphs)",
    "worked_examples": [
        {
            "problem": "Example problem",
            "solution": "Step-by-step solution"
        }
    ],
    "practice_questions": [
        {
            "question": "Practice question",
            "difficulty": "easy|medium|hard"
        }
    ],
    "answer_key": [
        "Answer 1",
        "Answer 2"
    ]
}

GUIDELINES:
- Use vocabulary appropriate for grade %[2]s
- Include 2-3 worked examples with detailed steps
- Provide 5-8 practice questions at varying difficulty levels
- Keep explanations engaging and clear
- For math: show all work in solutions
- For science: include real-world connections`

// SystemPrompt builds the instruction sent with every worksheet request. An empty
// grounding text is replaced by a generic age-appropriate instruction.
func SystemPrompt(subject, grade, language, grounding string) string {
	if strings.TrimSpace(language) == "" {
		language = "English"
	}
	if strings.TrimSpace(grounding) == "" {
		grounding = genericGrounding
	}
	return fmt.Sprintf(systemPromptTemplate, subject, grade, language, grounding)
}

func UserPrompt(prompt string) string {
	return "Create educational content for: " + prompt
}
