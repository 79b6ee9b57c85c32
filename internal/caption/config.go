package caption

import "fmt"

// Config holds the line segmentation limits. A limit is only considered
// violated when the measured value is strictly greater than the maximum,
// so a gap of exactly MaxGap does not break a line.
type Config struct {
	MaxWords    int     // words per line
	MaxChars    int     // rendered characters per line, spaces included
	MaxDuration float64 // seconds from first word start to last word end
	MaxGap      float64 // seconds of silence tolerated between words
}

func DefaultConfig() Config {
	return Config{
		MaxWords:    4,
		MaxChars:    80,
		MaxDuration: 3.0,
		MaxGap:      1.5,
	}
}

// Validate fails fast on limits that would make line boundaries
// ill-defined. MaxGap zero is allowed: any positive silence then breaks.
func (c Config) Validate() error {
	if c.MaxWords < 1 {
		return fmt.Errorf("max words must be at least 1, got %d", c.MaxWords)
	}
	if c.MaxChars < 1 {
		return fmt.Errorf("max chars must be at least 1, got %d", c.MaxChars)
	}
	if c.MaxDuration <= 0 {
		return fmt.Errorf("max duration must be positive, got %g", c.MaxDuration)
	}
	if c.MaxGap < 0 {
		return fmt.Errorf("max gap must not be negative, got %g", c.MaxGap)
	}
	return nil
}
