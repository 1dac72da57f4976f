package utils

import "os"

// Getenv reads an environment variable, treating an unset or empty value as
// absent and returning the fallback instead.
func Getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
