package search

import "fmt"

// Source tags recorded in array metadata
const (
	SourceGenerated   = "generated"
	SourceRegenerated = "regenerated"
	SourceUnknown     = "unknown"
)

// Metadata describes the current array. It is written atomically alongside
// the array and superseded wholesale on every regeneration.
type Metadata struct {
	GenerationID string `json:"generation_id"`
	Size         int    `json:"size"`
	MinValue     int    `json:"min_value"`
	MaxValue     int    `json:"max_value"`
	Seed         int64  `json:"seed"`
	GeneratedAt  string `json:"generated_at"`
	Source       string `json:"source"`
}

// Outcome is the result of a single binary search. Min and max are nil when
// the array was empty at search time.
type Outcome struct {
	Found     bool
	Index     int
	Value     int
	ArraySize int
	ArrayMin  *int
	ArrayMax  *int
}

// ValidationError indicates rejected generation parameters. Callers can
// distinguish it from storage and internal failures with errors.As.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// Params carries optional generation parameters. Nil fields fall back to the
// manager's stored defaults; zero is a valid explicit value.
type Params struct {
	Size     *int
	MinValue *int
	MaxValue *int
	Seed     *int64
}
