// Package config loads hq's layered JSONC configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tailscale/hujson"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// StoreBackends lists the accepted values of the store setting.
var StoreBackends = []string{StoreFile, StoreSQLite}

// FileName is the project config file name.
const FileName = ".hq.json"

// Error variables for configuration loading.
var (
	ErrFileNotFound   = errors.New("config file not found")
	ErrFileRead       = errors.New("cannot read config file")
	ErrInvalid        = errors.New("invalid config file")
	ErrStateFileEmpty = errors.New("state_file cannot be empty")
	ErrSQLiteEmpty    = errors.New("sqlite_file cannot be empty")
	ErrUnknownStore   = errors.New("unknown store backend (must be file or sqlite)")
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	DataFile   string `json:"data_file,omitempty"` // baseline dataset; empty means the bundled one
	Store      string `json:"store"`
	StateFile  string `json:"state_file"`
	SQLiteFile string `json:"sqlite_file"`
	Actor      string `json:"actor,omitempty"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd  string `json:"-"`
	DataFileAbs   string `json:"-"`
	StateFileAbs  string `json:"-"`
	SQLiteFileAbs string `json:"-"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Store:      StoreFile,
		StateFile:  filepath.Join(".hq", "overrides.json"),
		SQLiteFile: filepath.Join(".hq", "overrides.db"),
	}
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride  string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath       string            // -c/--config flag value
	DataFileOverride string            // --data flag value; empty means no override
	StoreOverride    string            // --store flag value; empty means no override
	Env              map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/hq/config.json or $XDG_CONFIG_HOME/hq/config.json)
// 3. Project config file at default location (.hq.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty, replaces 3)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	if !filepath.IsAbs(workDir) {
		abs, err := filepath.Abs(workDir)
		if err != nil {
			return Config{}, fmt.Errorf("resolve working directory: %w", err)
		}

		workDir = abs
	}

	cfg := Default()

	globalCfg, globalPath, err := loadGlobal(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	if input.DataFileOverride != "" {
		cfg.DataFile = input.DataFileOverride
	}

	if input.StoreOverride != "" {
		cfg.Store = input.StoreOverride
	}

	err = validate(cfg)
	if err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir
	cfg.StateFileAbs = resolve(workDir, cfg.StateFile)
	cfg.SQLiteFileAbs = resolve(workDir, cfg.SQLiteFile)

	if cfg.DataFile != "" {
		cfg.DataFileAbs = resolve(workDir, cfg.DataFile)
	}

	return cfg, nil
}

// Format renders the serializable part of cfg as indented JSON.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format config: %w", err)
	}

	return string(data), nil
}

func resolve(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

// globalPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/hq/config.json if set, otherwise ~/.config/hq/config.json.
// Returns empty string if home directory cannot be determined.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "hq", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "hq", "config.json")
	}

	return ""
}

func loadGlobal(env map[string]string) (Config, string, error) {
	path := globalPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadFile(path, false)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadProject loads the project config file (.hq.json) or an explicit config file.
func loadProject(workDir, configPath string) (Config, string, error) {
	path := filepath.Join(workDir, FileName)
	mustExist := false

	if configPath != "" {
		path = resolve(workDir, configPath)
		mustExist = true

		_, statErr := os.Stat(path)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrFileNotFound, configPath)
		}
	}

	cfg, loaded, err := loadFile(path, mustExist)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadFile loads a config file. If mustExist is false, a missing file
// returns a zero config and loaded=false.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
	}

	return cfg, true, nil
}

// parse decodes a JSONC config. Keys present with an empty string value are
// rejected for settings that cannot be empty.
func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	for key, sentinel := range map[string]error{
		"state_file":  ErrStateFileEmpty,
		"sqlite_file": ErrSQLiteEmpty,
		"store":       ErrUnknownStore,
	} {
		if val, exists := raw[key]; exists {
			if str, ok := val.(string); ok && str == "" {
				return Config{}, sentinel
			}
		}
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.DataFile != "" {
		base.DataFile = overlay.DataFile
	}

	if overlay.Store != "" {
		base.Store = overlay.Store
	}

	if overlay.StateFile != "" {
		base.StateFile = overlay.StateFile
	}

	if overlay.SQLiteFile != "" {
		base.SQLiteFile = overlay.SQLiteFile
	}

	if overlay.Actor != "" {
		base.Actor = overlay.Actor
	}

	return base
}

func validate(cfg Config) error {
	if !slices.Contains(StoreBackends, cfg.Store) {
		return fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Store)
	}

	if cfg.StateFile == "" {
		return ErrStateFileEmpty
	}

	if cfg.SQLiteFile == "" {
		return ErrSQLiteEmpty
	}

	return nil
}
