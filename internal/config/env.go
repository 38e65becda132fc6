package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order before the configuration is expanded.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads KEY=VALUE files from the working directory.
// godotenv.Load never overrides variables already set in the process environment,
// so the earlier file wins for keys defined twice.
func loadEnvFiles() {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(os.Stderr, "Note: could not load %s: %v\n", path, err)
			}
		}
	}
}
