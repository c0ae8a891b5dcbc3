package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/jask/promptgen/internal/database/repository"
	"github.com/jask/promptgen/internal/settings"
)

var ErrNoVocabulary = errors.New("generator: vocabulary is empty")

// EntryLister is the read side of the vocabulary store.
type EntryLister interface {
	List(ctx context.Context, category string) ([]repository.VocabularyEntry, error)
}

// Generator assembles prompt lines from the vocabulary and AppSettings.
// It is safe for concurrent use; draws from Rand are serialised.
type Generator struct {
	Vocabulary EntryLister
	Rand       *rand.Rand

	mu sync.Mutex
}

func NewGenerator(vocab EntryLister, seed uint64) *Generator {
	return &Generator{Vocabulary: vocab, Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Generate returns s.PromptCount prompts (clamped to the allowed range).
// Each prompt picks one entry from every non-empty category, adds the
// enabled descriptors and flags, and ends with CustomSuffix verbatim.
func (g *Generator) Generate(ctx context.Context, s settings.AppSettings) ([]string, error) {
	pools := make([][]string, 0, len(repository.Categories()))
	for _, c := range repository.Categories() {
		entries, err := g.Vocabulary.List(ctx, c)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			continue
		}
		texts := make([]string, len(entries))
		for i, e := range entries {
			texts[i] = e.Text
		}
		pools = append(pools, texts)
	}
	if len(pools) == 0 {
		return nil, ErrNoVocabulary
	}

	descriptor := Descriptor(s)
	flags := Flags(s)
	n := settings.ClampPromptCount(s.PromptCount)
	out := make([]string, 0, n)
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := 0; i < n; i++ {
		parts := make([]string, 0, len(pools)+1)
		for _, pool := range pools {
			parts = append(parts, pool[g.Rand.IntN(len(pool))])
		}
		if descriptor != "" {
			parts = append(parts, descriptor)
		}
		line := strings.Join(parts, ", ")
		if flags != "" {
			line += " " + flags
		}
		if s.CustomSuffix != "" {
			line += " " + s.CustomSuffix
		}
		out = append(out, line)
	}
	return out, nil
}

// Descriptor returns the person descriptor ("japanese female") for the
// enabled ethnicity and gender settings. "any" adds nothing.
func Descriptor(s settings.AppSettings) string {
	var words []string
	if s.IncludeEthnicity && s.Ethnicity != "" && s.Ethnicity != "any" {
		words = append(words, s.Ethnicity)
	}
	if s.IncludeGender && s.Gender != "" && s.Gender != "any" {
		words = append(words, s.Gender)
	}
	return strings.Join(words, " ")
}

// Flags renders the enabled parameter flags in --ar, --v, --s order.
func Flags(s settings.AppSettings) string {
	var flags []string
	if s.IncludeAspectRatio && s.AspectRatio != "" {
		flags = append(flags, "--ar "+s.AspectRatio)
	}
	if s.IncludeVersion && s.Version != "" {
		if rest, ok := strings.CutPrefix(s.Version, "niji"); ok {
			flags = append(flags, "--niji "+strings.TrimSpace(rest))
		} else {
			flags = append(flags, "--v "+s.Version)
		}
	}
	if s.IncludeStylize && s.Stylize != "" {
		flags = append(flags, "--s "+s.Stylize)
	}
	return strings.Join(flags, " ")
}
