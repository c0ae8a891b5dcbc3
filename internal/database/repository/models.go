package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash"
)

// Vocabulary categories, in prompt order.
const (
	CategorySubject  = "subject"
	CategoryScene    = "scene"
	CategoryStyle    = "style"
	CategoryLighting = "lighting"
	CategoryCamera   = "camera"
)

// Categories returns every vocabulary category in the order prompts use them.
func Categories() []string {
	return []string{CategorySubject, CategoryScene, CategoryStyle, CategoryLighting, CategoryCamera}
}

// IsCategory reports whether name is a known vocabulary category.
func IsCategory(name string) bool {
	for _, c := range Categories() {
		if c == name {
			return true
		}
	}
	return false
}

// VocabularyEntry represents a vocabulary_entries row.
type VocabularyEntry struct {
	ID          string
	Category    string
	Text        string
	ContentHash string
	CreatedAt   time.Time
}

// ContentHash normalises text (trim, lower-case, collapse whitespace) and
// hashes it so trivially different spellings collide.
func ContentHash(text string) string {
	norm := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	return strconv.FormatUint(xxhash.Sum64String(norm), 16)
}
