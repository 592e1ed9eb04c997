package interfaces

import "strings"

// ProjectKey normalizes a local project name into its storage key
func ProjectKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AssigneeKey normalizes an assignee name for lookups
func AssigneeKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
