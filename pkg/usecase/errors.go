package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	ErrInvalidArgument       = goerr.New("invalid argument")
	ErrHubstaffNotConfigured = goerr.New("hubstaff is not configured")
)

// Context keys for error values
const (
	ProjectNameKey = "project_name"
	PersonNameKey  = "person_name"
	DateKey        = "date"
)
