package environment

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when it exists, without being asked for.
const DefaultEnvFile = ".env"

// LoadEnvFiles loads KEY=VALUE files into the process environment. Variables
// that are already set are left untouched. The default file is optional, every
// explicitly requested file must exist.
func LoadEnvFiles(paths ...string) error {
	if err := godotenv.Load(DefaultEnvFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", DefaultEnvFile, err)
		}
	} else {
		slog.Debug("Loaded environment file", "path", DefaultEnvFile)
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load environment file %s: %w", path, err)
		}
		slog.Debug("Loaded environment file", "path", path)
	}

	return nil
}
