package pipeline

import "newsdigest/internal/model"

const maxBullets = 5

// sentimentPriority breaks ties in the majority vote.
var sentimentPriority = []model.Sentiment{
	model.SentimentPositive,
	model.SentimentNeutral,
	model.SentimentNegative,
}

// BuildDigest aggregates annotated articles. Bullets are the first five in
// pipeline order; Count is the full input length.
func BuildDigest(ticker string, articles []model.AnnotatedArticle) model.DigestPayload {
	bullets := make([]model.Bullet, 0, min(len(articles), maxBullets))
	for _, a := range articles[:min(len(articles), maxBullets)] {
		bullets = append(bullets, model.Bullet{
			Headline:  a.Headline,
			Summary:   a.Summary5,
			Sentiment: a.Sentiment,
			Source:    a.Source,
			URL:       a.URL,
		})
	}

	return model.DigestPayload{
		Ticker:           ticker,
		OverallSentiment: OverallSentiment(articles),
		Bullets:          bullets,
		Count:            len(articles),
	}
}

// OverallSentiment returns the most frequent sentiment. Ties go to the
// earlier entry in positive, neutral, negative order; no articles means
// neutral, and an article without a label counts as neutral.
func OverallSentiment(articles []model.AnnotatedArticle) model.Sentiment {
	counts := make(map[model.Sentiment]int, len(sentimentPriority))
	for _, a := range articles {
		s := a.Sentiment
		if s == "" {
			s = model.SentimentNeutral
		}
		counts[s]++
	}

	overall, best := model.SentimentNeutral, 0
	for _, s := range sentimentPriority {
		if counts[s] > best {
			overall, best = s, counts[s]
		}
	}
	return overall
}
