package pipeline

import (
	"testing"

	"newsdigest/internal/model"

	"github.com/go-playground/assert/v2"
)

func article(headline, url, source string) model.NormalizedArticle {
	return model.NormalizedArticle{Headline: headline, URL: url, Source: source}
}

func TestDeduplicate(t *testing.T) {
	in := []model.NormalizedArticle{
		article("A", "u1", "first"),
		article("B", "u2", "first"),
		article("A", "u1", "second"),
		article("a", "u1", "case differs"),
		article("A", "u3", "url differs"),
		article("B", "u2", "third"),
	}

	got := Deduplicate(in)

	assert.Equal(t, 4, len(got))
	assert.Equal(t, "A", got[0].Headline)
	assert.Equal(t, "first", got[0].Source)
	assert.Equal(t, "B", got[1].Headline)
	assert.Equal(t, "first", got[1].Source)
	assert.Equal(t, "case differs", got[2].Source)
	assert.Equal(t, "url differs", got[3].Source)
}

func TestDeduplicateIdempotent(t *testing.T) {
	in := []model.NormalizedArticle{
		article("A", "u1", "x"),
		article("A", "u1", "y"),
		article("", "", "z"),
		article("", "", "w"),
	}

	once := Deduplicate(in)
	twice := Deduplicate(once)

	assert.Equal(t, once, twice)
	assert.Equal(t, true, len(once) <= len(in))
	assert.Equal(t, 2, len(once))
}

func TestDeduplicateEmpty(t *testing.T) {
	assert.Equal(t, 0, len(Deduplicate(nil)))
}
