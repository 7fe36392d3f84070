// Package renderer renders dropdeck views as markdown, from the text
// templates embedded in the templates folder.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/dropdeck"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var embedded embed.FS

var templates = mustSub(embedded, "templates")

func mustSub(f fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(f, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"amount": dropdeck.FormatAmount,
	"signed": dropdeck.FormatSignedAmount,
	// cell escapes a value for a markdown table cell.
	"cell": func(s string) string {
		return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
	},
	"check": func(done bool) string {
		if done {
			return "[x]"
		}
		return "[ ]"
	},
	"join": strings.Join,
	"inc":  func(i int) int { return i + 1 },
}

// Ledger is the data of the transactions view.
type Ledger struct {
	Kind         dropdeck.Kind // empty for all kinds
	Transactions []dropdeck.Transaction
	Investment   decimal.Decimal
	Earnings     decimal.Decimal
}

// Stats is the data of the statistics view.
type Stats struct {
	ROI            dropdeck.Percent
	MonthlyAverage decimal.Decimal
	Monthly        []dropdeck.MonthlyAggregate
	Leaderboard    []dropdeck.Project
}

// ProjectDetails is the data of the project view.
type ProjectDetails struct {
	Project dropdeck.Project
	Tasks   []dropdeck.Task
}

// ProjectList is the data of the catalog view.
type ProjectList struct {
	Title    string
	Query    string
	Projects []dropdeck.Project
}

// NewsList is the data of the news view.
type NewsList struct {
	Tag   string
	Items []dropdeck.NewsItem
	Tags  []string
}

// RenderDashboard renders the headline figures.
func RenderDashboard(d dropdeck.Dashboard) string {
	return renderTemplate("dashboard", "dashboard.md", nil, d)
}

// RenderProjects renders a list of projects as a table.
func RenderProjects(l ProjectList) string {
	partials := map[string]string{"projects_table": "projects_table.md"}
	return renderTemplate("projects", "projects.md", partials, l)
}

// RenderProject renders a project with its tasks.
func RenderProject(p ProjectDetails) string {
	partials := map[string]string{"task_list": "task_list.md"}
	return renderTemplate("project", "project.md", partials, p)
}

// RenderProgress renders the tasks of every joined project.
func RenderProgress(progress []dropdeck.ProjectProgress) string {
	partials := map[string]string{"task_list": "task_list.md"}
	return renderTemplate("progress", "progress.md", partials, progress)
}

// RenderLedger renders the transactions.
func RenderLedger(l Ledger) string {
	return renderTemplate("ledger", "ledger.md", nil, l)
}

// RenderStats renders the statistics.
func RenderStats(s Stats) string {
	partials := map[string]string{"projects_table": "projects_table.md"}
	return renderTemplate("stats", "stats.md", partials, s)
}

// RenderNews renders the news feed.
func RenderNews(l NewsList) string {
	return renderTemplate("news", "news.md", nil, l)
}

// RenderNewsItem renders a whole news article.
func RenderNewsItem(n dropdeck.NewsItem) string {
	return renderTemplate("newsItem", "news_item.md", nil, n)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
