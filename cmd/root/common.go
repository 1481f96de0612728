package root

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/docker/multiagent/pkg/config"
	"github.com/docker/multiagent/pkg/environment"
	"github.com/docker/multiagent/pkg/model"
	"github.com/docker/multiagent/pkg/paths"
	"github.com/docker/multiagent/pkg/team"
	"github.com/docker/multiagent/pkg/tools"
)

// newModelProvider is replaced in tests.
var newModelProvider = func(ctx context.Context) (model.Provider, error) {
	return model.NewGeminiProvider(ctx, environment.NewOsEnvProvider())
}

// loadConfig reads --config, or the user config file when it exists.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	path := f.configPath
	if path == "" {
		if _, err := os.Stat(paths.DefaultConfigFile()); err == nil {
			path = paths.DefaultConfigFile()
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		slog.Debug("Loaded config file", "path", path)
	}
	return cfg, nil
}

func buildTeam(ctx context.Context, cfg *config.Config) (*team.Team, error) {
	set, err := tools.NewSet()
	if err != nil {
		return nil, err
	}

	provider, err := newModelProvider(ctx)
	if err != nil {
		return nil, err
	}

	t, err := team.New(ctx, set, provider, cfg.TeamModels())
	if err != nil {
		return nil, fmt.Errorf("failed to build agents: %w", err)
	}
	return t, nil
}
