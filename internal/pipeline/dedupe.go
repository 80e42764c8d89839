package pipeline

import "newsdigest/internal/model"

type dedupeKey struct {
	url      string
	headline string
}

// Deduplicate keeps the first article for each (url, headline) pair and
// preserves input order.
func Deduplicate(articles []model.NormalizedArticle) []model.NormalizedArticle {
	seen := make(map[dedupeKey]struct{}, len(articles))
	unique := make([]model.NormalizedArticle, 0, len(articles))
	for _, a := range articles {
		key := dedupeKey{url: a.URL, headline: a.Headline}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, a)
	}
	return unique
}
