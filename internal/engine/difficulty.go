package engine

// Difficulty selects a search configuration tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// searchSettings bundle the tunables of one tier. Kept as explicit
// configuration data so tuning stays isolated from the search logic.
type searchSettings struct {
	Depth        int
	CandidateCap int
}

var settingsByDifficulty = map[Difficulty]searchSettings{
	DifficultyEasy:   {Depth: 2, CandidateCap: 10},
	DifficultyMedium: {Depth: 3, CandidateCap: 14},
	DifficultyHard:   {Depth: 4, CandidateCap: 18},
}

// ParseDifficulty maps a raw string to a known tier, falling back to medium.
func ParseDifficulty(raw string) Difficulty {
	switch Difficulty(raw) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(raw)
	default:
		return DifficultyMedium
	}
}
