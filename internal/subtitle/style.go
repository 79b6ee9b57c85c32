package subtitle

// Style holds the visual settings for ASS output. Colors are in ASS
// &HAABBGGRR notation. The caption core knows nothing about any of this;
// style only applies at the subtitle-writing edge.
type Style struct {
	Title          string  `yaml:"title"`
	FontName       string  `yaml:"font"`
	FontSize       int     `yaml:"font_size"`
	FontScale      float64 `yaml:"font_scale"` // fraction of the smaller video dimension, used when font_size is 0
	Color          string  `yaml:"color"`
	HighlightColor string  `yaml:"highlight_color"`
	OutlineColor   string  `yaml:"outline_color"`
	OutlineWidth   int     `yaml:"outline_width"`
	ShadowDepth    int     `yaml:"shadow_depth"`
	MarginV        int     `yaml:"margin_v"`
	PlayResX       int     `yaml:"-"`
	PlayResY       int     `yaml:"-"`
}

// bold white text with a blue highlight, black outline and drop shadow
func DefaultStyle() Style {
	return Style{
		Title:          "Woordlicht Subtitles",
		FontName:       "Arial Black",
		FontScale:      0.09,
		Color:          "&H00FFFFFF", // white
		HighlightColor: "&H00FF0000", // blue
		OutlineColor:   "&H00000000", // black
		OutlineWidth:   4,
		ShadowDepth:    2,
		MarginV:        200,
	}
}

// AutoSize fixes the play resolution and derives the font size from the
// smaller video dimension when no explicit size was configured.
func (s *Style) AutoSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.PlayResX = width
	s.PlayResY = height

	if s.FontSize > 0 {
		return
	}
	scale := s.FontScale
	if scale <= 0 {
		scale = 0.09
	}
	base := width
	if height < base {
		base = height
	}
	s.FontSize = int(float64(base) * scale)
}
