// Package quiz serves random question sets from a static, embedded bank.
package quiz

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultSampleSize is how many questions a quiz round returns.
const DefaultSampleSize = 5

var ErrCategoryNotFound = errors.New("quiz: category not found")

//go:embed questions.json
var embeddedQuestions []byte

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type bankFile struct {
	Categories []struct {
		Name      string     `json:"name"`
		Questions []Question `json:"questions"`
	} `json:"categories"`
}

// Bank is an immutable set of questions keyed by lower-case category.
// Sample is safe for concurrent use.
type Bank struct {
	categories map[string][]Question

	mu  sync.Mutex
	rng *rand.Rand
}

// LoadDefault parses the embedded question bank.
func LoadDefault() (*Bank, error) {
	seed := uint64(time.Now().UnixNano())
	return Load(embeddedQuestions, rand.NewPCG(seed, seed>>1|1))
}

// Load parses a question bank document. src drives the shuffle; pass a
// fixed-seed source for reproducible rounds.
func Load(data []byte, src rand.Source) (*Bank, error) {
	var f bankFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("quiz: decode bank: %w", err)
	}

	b := &Bank{categories: make(map[string][]Question, len(f.Categories)), rng: rand.New(src)}
	for _, c := range f.Categories {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" {
			return nil, errors.New("quiz: category without a name")
		}
		if _, dup := b.categories[name]; dup {
			return nil, fmt.Errorf("quiz: duplicate category %q", name)
		}
		b.categories[name] = c.Questions
	}
	return b, nil
}

// Categories returns the category names in sorted order.
func (b *Bank) Categories() []string {
	names := make([]string, 0, len(b.categories))
	for name := range b.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sample returns up to n questions of category in uniformly random order.
// The bank itself is never reordered.
func (b *Bank) Sample(category string, n int) ([]Question, error) {
	qs, ok := b.categories[strings.ToLower(category)]
	if !ok {
		return nil, ErrCategoryNotFound
	}

	out := make([]Question, len(qs))
	copy(out, qs)

	// Fisher-Yates
	b.mu.Lock()
	for i := len(out) - 1; i > 0; i-- {
		j := b.rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	b.mu.Unlock()

	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out, nil
}
