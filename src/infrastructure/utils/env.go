package utils

import (
	"os"
	"strconv"
)

// GetEnv returns the value of the environment variable or the default
// value if it is not set.
func GetEnv(key string, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

// GetEnvInt returns the integer value of the environment variable or
// the default value if it is not set or not a valid integer.
func GetEnvInt(key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
