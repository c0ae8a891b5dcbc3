// Package options holds the fixed choice lists offered by the settings panel.
// Each list is ordered for display; Value is what gets stored in AppSettings.
package options

// Option is one selectable entry.
type Option struct {
	Value string
	Label string
}

var (
	ethnicity = []Option{
		{"any", "Any"},
		{"japanese", "Japanese"},
		{"korean", "Korean"},
		{"chinese", "Chinese"},
		{"southeast asian", "Southeast Asian"},
		{"south asian", "South Asian"},
		{"caucasian", "Caucasian"},
		{"black", "Black"},
		{"latina", "Latina"},
		{"middle eastern", "Middle Eastern"},
	}
	gender = []Option{
		{"any", "Any"},
		{"female", "Female"},
		{"male", "Male"},
		{"androgynous", "Androgynous"},
	}
	aspectRatio = []Option{
		{"1:1", "1:1 (square)"},
		{"4:3", "4:3"},
		{"3:4", "3:4"},
		{"3:2", "3:2"},
		{"2:3", "2:3 (portrait)"},
		{"16:9", "16:9 (wide)"},
		{"9:16", "9:16 (phone)"},
		{"21:9", "21:9 (cinema)"},
	}
	version = []Option{
		{"6.1", "v6.1"},
		{"6", "v6"},
		{"5.2", "v5.2"},
		{"niji 6", "Niji 6"},
		{"niji 5", "Niji 5"},
	}
	stylize = []Option{
		{"0", "0 (off)"},
		{"50", "50 (low)"},
		{"100", "100 (default)"},
		{"250", "250"},
		{"500", "500"},
		{"750", "750 (high)"},
		{"1000", "1000 (max)"},
	}
)

func Ethnicity() []Option   { return clone(ethnicity) }
func Gender() []Option      { return clone(gender) }
func AspectRatio() []Option { return clone(aspectRatio) }
func Version() []Option     { return clone(version) }
func Stylize() []Option     { return clone(stylize) }

// IndexOf returns the position of value in opts, or -1.
func IndexOf(opts []Option, value string) int {
	for i, o := range opts {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// LabelFor returns the display label for value, falling back to the raw value
// when the list does not contain it.
func LabelFor(opts []Option, value string) string {
	if i := IndexOf(opts, value); i >= 0 {
		return opts[i].Label
	}
	return value
}

func clone(opts []Option) []Option {
	return append([]Option(nil), opts...)
}
