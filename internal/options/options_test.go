package options

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/promptgen/internal/settings"
)

func TestTablesAreWellFormed(t *testing.T) {
	tables := map[string][]Option{
		"ethnicity":   Ethnicity(),
		"gender":      Gender(),
		"aspectRatio": AspectRatio(),
		"version":     Version(),
		"stylize":     Stylize(),
	}
	for name, opts := range tables {
		t.Run(name, func(t *testing.T) {
			require.NotEmpty(t, opts)
			seen := map[string]bool{}
			for _, o := range opts {
				require.NotEmpty(t, o.Value)
				require.NotEmpty(t, o.Label)
				require.False(t, seen[o.Value], "duplicate value %q", o.Value)
				seen[o.Value] = true
			}
		})
	}
}

func TestDefaultsAreListed(t *testing.T) {
	d := settings.Defaults()
	require.GreaterOrEqual(t, IndexOf(Ethnicity(), d.Ethnicity), 0)
	require.GreaterOrEqual(t, IndexOf(Gender(), d.Gender), 0)
	require.GreaterOrEqual(t, IndexOf(AspectRatio(), d.AspectRatio), 0)
	require.GreaterOrEqual(t, IndexOf(Version(), d.Version), 0)
	require.GreaterOrEqual(t, IndexOf(Stylize(), d.Stylize), 0)
}

func TestTablesAreCopies(t *testing.T) {
	opts := Gender()
	opts[0].Label = "mutated"
	require.Equal(t, "Any", Gender()[0].Label)
}

func TestLabelFor(t *testing.T) {
	require.Equal(t, "16:9 (wide)", LabelFor(AspectRatio(), "16:9"))
	require.Equal(t, "7:5", LabelFor(AspectRatio(), "7:5"))
	require.Equal(t, -1, IndexOf(Version(), "4"))
}
