package types

import "strings"

// TeamCategory is the internal bucket a remote team is reported under
type TeamCategory string

const (
	TeamCategoryQA          TeamCategory = "QA"
	TeamCategoryDevelopment TeamCategory = "Development"
	TeamCategoryDesign      TeamCategory = "Design"
	TeamCategoryManagement  TeamCategory = "Management"
	TeamCategoryUnknown     TeamCategory = "Unknown"
)

// AllTeamCategories returns all team categories including Unknown
func AllTeamCategories() []TeamCategory {
	return []TeamCategory{
		TeamCategoryQA,
		TeamCategoryDevelopment,
		TeamCategoryDesign,
		TeamCategoryManagement,
		TeamCategoryUnknown,
	}
}

// IsValid checks if the category is one of the fixed set
func (c TeamCategory) IsValid() bool {
	switch c {
	case TeamCategoryQA,
		TeamCategoryDevelopment,
		TeamCategoryDesign,
		TeamCategoryManagement,
		TeamCategoryUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c TeamCategory) String() string {
	return string(c)
}

// TeamMapping maps remote team display names to categories.
// Lookups are case-insensitive and ignore surrounding whitespace.
type TeamMapping map[string]TeamCategory

// DefaultTeamMapping returns the mapping used when no configuration overrides it
func DefaultTeamMapping() TeamMapping {
	return TeamMapping{
		"qa":          TeamCategoryQA,
		"qa team":     TeamCategoryQA,
		"testing":     TeamCategoryQA,
		"development": TeamCategoryDevelopment,
		"dev team":    TeamCategoryDevelopment,
		"developers":  TeamCategoryDevelopment,
		"design":      TeamCategoryDesign,
		"ui/ux":       TeamCategoryDesign,
		"management":  TeamCategoryManagement,
		"pm":          TeamCategoryManagement,
	}
}

// Resolve returns the category for a team display name, or Unknown
func (m TeamMapping) Resolve(teamName string) TeamCategory {
	key := strings.ToLower(strings.TrimSpace(teamName))
	if c, ok := m[key]; ok {
		return c
	}
	return TeamCategoryUnknown
}
