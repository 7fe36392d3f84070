package dropdeck

import (
	"embed"
	"fmt"

	"github.com/etnz/dropdeck/date"
	"gopkg.in/yaml.v3"
)

//go:embed seed/*.yaml
var seedFS embed.FS

// Catalog returns a fresh copy of the built-in project catalog.
func Catalog() []Project {
	var projects []Project
	mustDecodeSeed("seed/projects.yaml", &projects)
	return projects
}

// SeedNews returns a fresh copy of the built-in news feed.
func SeedNews() []NewsItem {
	// ynews is the object read from the yaml file, dates are plain strings there.
	type ynews struct {
		ID          string   `yaml:"id"`
		Title       string   `yaml:"title"`
		Description string   `yaml:"description"`
		Content     string   `yaml:"content"`
		Image       string   `yaml:"image"`
		Date        string   `yaml:"date"`
		Tags        []string `yaml:"tags"`
	}
	var items []ynews
	mustDecodeSeed("seed/news.yaml", &items)

	news := make([]NewsItem, 0, len(items))
	for _, y := range items {
		on, err := date.Parse(y.Date)
		if err != nil {
			panic(fmt.Sprintf("invalid seed news %q: %v", y.ID, err))
		}
		news = append(news, NewsItem{
			ID:          y.ID,
			Title:       y.Title,
			Description: y.Description,
			Content:     y.Content,
			Image:       y.Image,
			Date:        on,
			Tags:        y.Tags,
		})
	}
	return news
}

// mustDecodeSeed decodes an embedded seed file, the files are part of the
// binary so an error is a programming error.
func mustDecodeSeed(name string, v any) {
	data, err := seedFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("missing seed file %q: %v", name, err))
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		panic(fmt.Sprintf("invalid seed file %q: %v", name, err))
	}
}
