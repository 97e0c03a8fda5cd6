package scene

// Palette is the shared brand color set, passed explicitly into every
// scene constructor.
type Palette struct {
	Primary   string
	Secondary string
	Accent    string
	Success   string
	Dark      string
	Darker    string
	Light     string
	White     string
	Red       string
}

// Fonts holds opaque font handles resolved outside the core.
type Fonts struct {
	Body    string
	Display string
}

// Theme bundles palette and fonts.
type Theme struct {
	Colors Palette
	Fonts  Fonts
}

// WithAlpha appends a two-digit hex alpha to a #rrggbb color, the way the
// design writes "#6366f140".
func WithAlpha(color string, alpha uint8) string {
	const hex = "0123456789abcdef"
	if len(color) != 7 || color[0] != '#' {
		return color
	}
	return color + string([]byte{hex[alpha>>4], hex[alpha&0x0f]})
}
