package database

import (
	"fmt"
	"strings"
)

// ConstructDatabaseURL constructs a complete database URL from base URL and database name
// This function:
// - Combines base URL with database name
// - Automatically adds sslmode=disable if not present
// - Handles existing query parameters correctly
func ConstructDatabaseURL(baseURL, databaseName string) string {
	// If DATABASE_NAME is not set, return the base URL as-is
	if databaseName == "" {
		return baseURL
	}

	baseURL = strings.TrimRight(baseURL, "/")
	var databaseURL string

	if base, query, found := strings.Cut(baseURL, "?"); found {
		// Insert database name before the query parameters
		databaseURL = fmt.Sprintf("%s/%s?%s", base, databaseName, query)
	} else {
		databaseURL = fmt.Sprintf("%s/%s", baseURL, databaseName)
	}

	if !strings.Contains(databaseURL, "sslmode=") {
		separator := "&"
		if !strings.Contains(databaseURL, "?") {
			separator = "?"
		}
		databaseURL = fmt.Sprintf("%s%ssslmode=disable", databaseURL, separator)
	}

	return databaseURL
}

// RedactURL hides the password of a database URL for logging
func RedactURL(databaseURL string) string {
	scheme, rest, found := strings.Cut(databaseURL, "://")
	if !found {
		return databaseURL
	}
	userInfo, host, found := strings.Cut(rest, "@")
	if !found {
		return databaseURL
	}
	user, _, hasPassword := strings.Cut(userInfo, ":")
	if !hasPassword {
		return databaseURL
	}
	return fmt.Sprintf("%s://%s:xxxxx@%s", scheme, user, host)
}
