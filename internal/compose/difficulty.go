package compose

import "strings"

type Difficulty int

const (
	DifficultyUnrecognized Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
)

type RGB struct {
	R, G, B int
}

var difficultyColors = map[Difficulty]RGB{
	DifficultyEasy:         {0x10, 0xB9, 0x81},
	DifficultyMedium:       {0xF5, 0x9E, 0x0B},
	DifficultyHard:         {0xEF, 0x44, 0x44},
	DifficultyUnrecognized: {0x6B, 0x72, 0x80},
}

// ParseDifficulty matches case-insensitively; anything else is unrecognized.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyUnrecognized
	}
}

func (d Difficulty) Color() RGB {
	if c, ok := difficultyColors[d]; ok {
		return c
	}
	return difficultyColors[DifficultyUnrecognized]
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unrecognized"
	}
}
