package utils

import "strings"

const wikipediaArticleBase = "https://en.wikipedia.org/wiki/"

// WikipediaTopicURL links a related topic to its English Wikipedia article.
func WikipediaTopicURL(topic string) string {
	return wikipediaArticleBase + strings.ReplaceAll(strings.TrimSpace(topic), " ", "_")
}
