package catalogue

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogue(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.Equal(t, 34, c.Len())

	counts := map[Category]int{}
	for _, q := range c.Questions() {
		counts[q.Category]++
		assert.True(t, strings.HasPrefix(q.ID, q.Category.Prefix()), "id %s prefix", q.ID)
		assert.Greater(t, q.Weight, 0.0, "weight %s", q.ID)
		assert.NotEmpty(t, q.Options, "options %s", q.ID)
	}
	assert.Equal(t, 8, counts[CategoryAttachment])
	assert.Equal(t, 7, counts[CategoryGottman])
	assert.Equal(t, 5, counts[CategoryTrauma])
	assert.Equal(t, 6, counts[CategoryPHQADS])
	assert.Equal(t, 5, counts[CategoryDAS])
	assert.Equal(t, 3, counts[CategoryRAM])
}

func TestDefaultCatalogueScales(t *testing.T) {
	c := Default()
	tests := []struct {
		id     string
		lo, hi int
	}{
		{"att_03", 0, 4},
		{"gott_05", 0, 4},
		{"trauma_02", 0, 4},
		{"phq_06", 0, 3},
		{"das_02", 0, 4},
		{"ram_01", 0, 3},
		{"ram_02", 0, 4},
		{"ram_03", 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			q, ok := c.Get(tt.id)
			require.True(t, ok)
			lo, hi := q.Range()
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestQuestionRangeAndMidpoint(t *testing.T) {
	q := Question{Options: []Option{{Value: 3}, {Value: 1}, {Value: 5}}}
	lo, hi := q.Range()
	assert.Equal(t, 1, lo)
	assert.Equal(t, 5, hi)
	assert.Equal(t, 3, q.Midpoint())
	assert.True(t, q.InRange(1))
	assert.False(t, q.InRange(6))

	fourPoint := Question{Options: []Option{{Value: 0}, {Value: 1}, {Value: 2}, {Value: 3}}}
	assert.Equal(t, 1, fourPoint.Midpoint())
}

func TestParseDefaultsWeightAndType(t *testing.T) {
	c, err := Parse([]byte(`
questions:
  - id: das_01
    category: das
    text: t
    options: [{value: 0, label: a}, {value: 4, label: b}]
`))
	require.NoError(t, err)
	q, ok := c.Get("das_01")
	require.True(t, ok)
	assert.Equal(t, 1.0, q.Weight)
	assert.Equal(t, TypeLikert, q.Type)
}

func TestParseRejectsInvalidBanks(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "questions: []", "empty"},
		{"missing id", "questions:\n  - category: das\n    options: [{value: 0, label: a}]", "missing id"},
		{"duplicate", "questions:\n  - {id: das_01, category: das, options: [{value: 0, label: a}]}\n  - {id: das_01, category: das, options: [{value: 0, label: a}]}", "duplicate"},
		{"unknown category", "questions:\n  - {id: x_01, category: mood, options: [{value: 0, label: a}]}", "unknown question category"},
		{"prefix mismatch", "questions:\n  - {id: ram_01, category: das, options: [{value: 0, label: a}]}", "prefix"},
		{"no options", "questions:\n  - {id: das_01, category: das}", "no options"},
		{"negative weight", "questions:\n  - {id: das_01, category: das, weight: -1, options: [{value: 0, label: a}]}", "negative weight"},
		{"bad yaml", "questions: [", "parse question bank"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Same(t, Default(), c)

	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("questions:\n  - {id: ram_01, category: ram, options: [{value: 0, label: a}, {value: 3, label: b}]}\n"), 0o600))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("phq_ads")
	require.NoError(t, err)
	assert.Equal(t, CategoryPHQADS, c)

	_, err = ParseCategory("mood")
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestByCategoryAndSections(t *testing.T) {
	c := Default()
	assert.Len(t, c.ByCategory(CategoryRAM), 3)
	assert.Len(t, c.PresentCategories(), 6)

	sections := c.Sections()
	require.Len(t, sections, 6)
	ids := make([]string, 0, len(sections))
	total := 0
	for _, s := range sections {
		ids = append(ids, s.ID)
		total += len(s.Questions)
		assert.NotEmpty(t, s.Title)
	}
	assert.Equal(t, []string{"attachment", "gottman", "trauma", "phq_ads", "das", "ram"}, ids)
	assert.Equal(t, c.Len(), total)
	assert.Equal(t, "Safety & Stability", sections[5].Title)
}

func TestSectionsEmptyCategory(t *testing.T) {
	c, err := Parse([]byte("questions:\n  - {id: das_01, category: das, options: [{value: 0, label: a}]}\n"))
	require.NoError(t, err)
	for _, s := range c.Sections() {
		assert.NotNil(t, s.Questions, s.ID)
	}
}

func TestReturnedQuestionsDoNotAliasBank(t *testing.T) {
	cat := Default()
	first := cat.Questions()[0]
	want := first.Options[0]

	cat.Questions()[0].Options[0] = Option{Value: 99, Label: "changed"}
	q, ok := cat.Get(first.ID)
	require.True(t, ok)
	q.Options[0].Value = 98
	cat.ByCategory(first.Category)[0].Options[0].Value = 97
	cat.WithPrefix(first.Category.Prefix())[0].Options[0].Value = 96

	again, _ := cat.Get(first.ID)
	assert.Equal(t, want, again.Options[0])
	assert.Equal(t, want, cat.Questions()[0].Options[0])
}
