package dropdeck

import (
	"slices"

	"github.com/etnz/dropdeck/date"
)

// NewsItem is an article of the static news feed.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Image       string    `json:"image"`
	Date        date.Date `json:"date"`
	Tags        []string  `json:"tags"`
}

func (n NewsItem) clone() NewsItem {
	n.Tags = slices.Clone(n.Tags)
	return n
}

// HasTag reports whether the item is tagged with tag.
func (n NewsItem) HasTag(tag string) bool { return slices.Contains(n.Tags, tag) }
