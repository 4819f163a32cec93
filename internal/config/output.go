package config

// OutputConfig holds settings related to board and game output.
type OutputConfig struct {
	// ShowBoard prints the board after every accepted move.
	ShowBoard bool

	// ShowCoordinates frames the board with file letters and rank numbers.
	ShowCoordinates bool

	// EmptySquare is the glyph drawn for an empty square.
	EmptySquare string

	// JSONFormat writes game summaries as JSON instead of text.
	JSONFormat bool

	// MaxLineLength is where the printed move list wraps.
	MaxLineLength uint
}

// DefaultEmptySquare is a centre dot.
const DefaultEmptySquare = "·"

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		ShowBoard:       true,
		ShowCoordinates: true,
		EmptySquare:     DefaultEmptySquare,
		MaxLineLength:   80,
	}
}

// Validate checks that the output configuration is usable.
func (o *OutputConfig) Validate() error {
	if o.EmptySquare == "" {
		return invalid("empty square glyph must not be empty")
	}
	if o.MaxLineLength != 0 && o.MaxLineLength < 20 {
		return invalid("max line length (%d) below 20", o.MaxLineLength)
	}
	return nil
}
