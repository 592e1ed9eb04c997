package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Project is a locally tracked project. Name is the key used by NameMatcher.
type Project struct {
	Name         string    `json:"name" firestore:"name"`
	AllottedDays float64   `json:"allotted_days" firestore:"allotted_days"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updated_at"`
}

// Validate checks if the project can be stored
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return goerr.New("project name is required")
	}
	if p.AllottedDays < 0 {
		return goerr.New("allotted days must not be negative", goerr.V("allotted_days", p.AllottedDays))
	}
	return nil
}
