package config

import "time"

// NewHubstaffForTest creates a Hubstaff config for testing purposes
func NewHubstaffForTest(orgID int64, accessToken, refreshToken, clientID, clientSecret, authStyle, baseURL string) *Hubstaff {
	return &Hubstaff{
		orgID:        orgID,
		accessToken:  accessToken,
		refreshToken: refreshToken,
		clientID:     clientID,
		clientSecret: clientSecret,
		authStyle:    authStyle,
		tokenURL:     baseURL + "/access_tokens",
		baseURL:      baseURL,
		timeout:      5 * time.Second,
	}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channelID, apiURL string) *Slack {
	return &Slack{
		botToken:  botToken,
		channelID: channelID,
		apiURL:    apiURL,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, sqlitePath string) *Repository {
	return &Repository{
		backend:    backend,
		sqlitePath: sqlitePath,
	}
}

// NewAppConfigForTest creates an AppConfig for testing purposes
func NewAppConfigForTest(path string) *AppConfig {
	return &AppConfig{path: path}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}
