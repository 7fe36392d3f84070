package dropdeck

import (
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Project is a trackable airdrop project of the catalog.
type Project struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Logo         string   `json:"logo" yaml:"logo"`
	TGE          string   `json:"tge,omitempty" yaml:"tge"`         // token generation event label
	Funding      string   `json:"funding,omitempty" yaml:"funding"` // display string, e.g. "$12.5M"
	Reward       string   `json:"reward,omitempty" yaml:"reward"`
	Type         string   `json:"type,omitempty" yaml:"type"`
	Tags         []string `json:"tags" yaml:"tags"`
	Joined       bool     `json:"joined" yaml:"joined"`
	Favorite     bool     `json:"favorite" yaml:"favorite"`
	ExternalLink string   `json:"externalLink,omitempty" yaml:"externalLink"`
}

// clone returns a copy of p that shares nothing with it.
func (p Project) clone() Project {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// Matches reports whether the query is a case-insensitive substring of the
// project name, description or one of its tags. An empty query matches all.
func (p Project) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	return slices.ContainsFunc(p.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), q)
	})
}

var (
	nonNumeric    = regexp.MustCompile(`[^0-9.-]+`)
	leadingNumber = regexp.MustCompile(`^-?(\d+(\.\d+)?|\.\d+)`)
)

// FundingValue returns the number found in the funding display string: every
// non numeric character is removed and the leading number is read, so
// "$12.5M" is 12.5 and "1.2.3" is 1.2. It is zero when there is no funding or
// no number in it.
func (p Project) FundingValue() decimal.Decimal {
	num := leadingNumber.FindString(nonNumeric.ReplaceAllString(p.Funding, ""))
	v, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// findProject returns the index of the project with that id, or -1.
func findProject(projects []Project, id string) int {
	return slices.IndexFunc(projects, func(p Project) bool { return p.ID == id })
}
