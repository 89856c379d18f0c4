// Package catalogue holds the read-only question bank the assessment is built on.
//
// The bank is loaded once at start-up (from the embedded questions.yaml or an
// override file) and never mutated afterwards, so a *Catalogue is safe to share
// between goroutines.
package catalogue

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var embeddedQuestions []byte

var ErrUnknownCategory = errors.New("unknown question category")

type Category string

const (
	CategoryAttachment Category = "attachment"
	CategoryGottman    Category = "gottman"
	CategoryTrauma     Category = "trauma"
	CategoryPHQADS     Category = "phq_ads"
	CategoryDAS        Category = "das"
	CategoryRAM        Category = "ram"
)

// Categories lists every category in presentation order.
func Categories() []Category {
	return []Category{
		CategoryAttachment, CategoryGottman, CategoryTrauma,
		CategoryPHQADS, CategoryDAS, CategoryRAM,
	}
}

// Prefix returns the id prefix shared by all questions of the category.
func (c Category) Prefix() string {
	switch c {
	case CategoryAttachment:
		return "att_"
	case CategoryGottman:
		return "gott_"
	case CategoryTrauma:
		return "trauma_"
	case CategoryPHQADS:
		return "phq_"
	case CategoryDAS:
		return "das_"
	case CategoryRAM:
		return "ram_"
	default:
		return ""
	}
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

type QuestionType string

const (
	TypeLikert         QuestionType = "likert"
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeYesNo          QuestionType = "yes_no"
	TypeSlider         QuestionType = "slider"
)

type Option struct {
	Value int    `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

type Question struct {
	ID            string       `yaml:"id" json:"id"`
	Category      Category     `yaml:"category" json:"category"`
	Text          string       `yaml:"text" json:"text"`
	SubText       string       `yaml:"sub_text" json:"sub_text,omitempty"`
	Type          QuestionType `yaml:"type" json:"type"`
	Options       []Option     `yaml:"options" json:"options"`
	Weight        float64      `yaml:"weight" json:"weight"`
	ReverseScored bool         `yaml:"reverse_scored" json:"reverse_scored"`
}

// Range returns the smallest and largest admissible option values.
func (q Question) Range() (lo, hi int) {
	if len(q.Options) == 0 {
		return 0, 0
	}
	lo, hi = q.Options[0].Value, q.Options[0].Value
	for _, o := range q.Options[1:] {
		if o.Value < lo {
			lo = o.Value
		}
		if o.Value > hi {
			hi = o.Value
		}
	}
	return lo, hi
}

// Midpoint is the integer midpoint of the option range, rounded down.
func (q Question) Midpoint() int {
	lo, hi := q.Range()
	return lo + (hi-lo)/2
}

func (q Question) InRange(v int) bool {
	lo, hi := q.Range()
	return v >= lo && v <= hi
}

// Catalogue is an ordered, immutable set of questions.
type Catalogue struct {
	questions []Question
	index     map[string]int
}

type document struct {
	Questions []Question `yaml:"questions"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalogue
)

// Default returns the embedded question bank. The embedded file is part of the
// binary, so a parse failure is a build defect and panics.
func Default() *Catalogue {
	defaultOnce.Do(func() {
		c, err := Parse(embeddedQuestions)
		if err != nil {
			panic(fmt.Sprintf("embedded question bank: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Load reads a question bank from path, or returns the embedded bank when path is empty.
func Load(path string) (*Catalogue, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML question bank. Missing weights default to 1.0.
func Parse(data []byte) (*Catalogue, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(doc.Questions) == 0 {
		return nil, errors.New("question bank is empty")
	}

	c := &Catalogue{
		questions: make([]Question, 0, len(doc.Questions)),
		index:     make(map[string]int, len(doc.Questions)),
	}
	for i, q := range doc.Questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question %d: missing id", i)
		}
		if _, dup := c.index[q.ID]; dup {
			return nil, fmt.Errorf("question %s: duplicate id", q.ID)
		}
		if _, err := ParseCategory(string(q.Category)); err != nil {
			return nil, fmt.Errorf("question %s: %w", q.ID, err)
		}
		if !strings.HasPrefix(q.ID, q.Category.Prefix()) {
			return nil, fmt.Errorf("question %s: id does not carry the %q prefix of category %s", q.ID, q.Category.Prefix(), q.Category)
		}
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %s: no options", q.ID)
		}
		if q.Weight < 0 {
			return nil, fmt.Errorf("question %s: negative weight %f", q.ID, q.Weight)
		}
		if q.Weight == 0 {
			q.Weight = 1.0
		}
		if q.Type == "" {
			q.Type = TypeLikert
		}
		c.index[q.ID] = len(c.questions)
		c.questions = append(c.questions, q)
	}
	return c, nil
}

// clone copies q including its option list, so callers cannot reach the
// catalogue's backing arrays.
func (q Question) clone() Question {
	if q.Options != nil {
		q.Options = append([]Option(nil), q.Options...)
	}
	return q
}

// Questions returns a copy of every question in catalogue order.
func (c *Catalogue) Questions() []Question {
	out := make([]Question, len(c.questions))
	for i, q := range c.questions {
		out[i] = q.clone()
	}
	return out
}

func (c *Catalogue) Len() int { return len(c.questions) }

func (c *Catalogue) Get(id string) (Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i].clone(), true
}

func (c *Catalogue) ByCategory(cat Category) []Question {
	var out []Question
	for _, q := range c.questions {
		if q.Category == cat {
			out = append(out, q.clone())
		}
	}
	return out
}

// WithPrefix returns the questions whose id starts with prefix.
func (c *Catalogue) WithPrefix(prefix string) []Question {
	var out []Question
	for _, q := range c.questions {
		if strings.HasPrefix(q.ID, prefix) {
			out = append(out, q.clone())
		}
	}
	return out
}

// PresentCategories returns the distinct categories that have at least one question.
func (c *Catalogue) PresentCategories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, q := range c.questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	return out
}
