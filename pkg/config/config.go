package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/relaydb/pkg/db"
	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/realm"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

const (
	DefaultConfigPath = "/etc/relaydb"
	ConfigFileName    = "relaydb.yml"
	TOMLConfigName    = "relaydb.toml"
)

const (
	SourceDefault     = "default"
	SourceFile        = "file"
	SourceEnvironment = "environment"
	SourceFlag        = "flag"
)

// RelayConfig holds the relay user database settings
type RelayConfig struct {
	// UserDBType selects the backend: sqlite, postgresql, mysql or redis
	UserDBType string `json:"userdb_type"`

	// UserDB is the sqlite path or the connection string of the backend
	UserDB string `json:"userdb"`

	// HashAlgorithm fixes the size of stored credential keys
	HashAlgorithm string `json:"hash_algorithm"`

	// MaxBPS, TotalQuota and UserQuota are the realm defaults
	MaxBPS     uint64 `json:"max_bps"`
	TotalQuota int    `json:"total_quota"`
	UserQuota  int    `json:"user_quota"`

	LogLevel string `json:"log_level"`

	// StatusAddress is the listen address of the status API
	StatusAddress string `json:"status_address"`

	sources        map[string]string
	configFilePath string
}

// overlay is one layer of settings. Unset fields stay nil.
type overlay struct {
	UserDBType    *string `yaml:"userdb_type" toml:"userdb_type" env:"RELAYDB_USERDB_TYPE"`
	UserDB        *string `yaml:"userdb" toml:"userdb" env:"RELAYDB_USERDB"`
	HashAlgorithm *string `yaml:"hash_algorithm" toml:"hash_algorithm" env:"RELAYDB_HASH_ALGORITHM"`
	MaxBPS        *uint64 `yaml:"max_bps" toml:"max_bps" env:"RELAYDB_MAX_BPS"`
	TotalQuota    *int    `yaml:"total_quota" toml:"total_quota" env:"RELAYDB_TOTAL_QUOTA"`
	UserQuota     *int    `yaml:"user_quota" toml:"user_quota" env:"RELAYDB_USER_QUOTA"`
	LogLevel      *string `yaml:"log_level" toml:"log_level" env:"RELAYDB_LOG_LEVEL"`
	StatusAddress *string `yaml:"status_address" toml:"status_address" env:"RELAYDB_STATUS_ADDRESS"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func newDefault() *RelayConfig {
	c := &RelayConfig{
		UserDBType:    store.KindSqlite.String(),
		UserDB:        "/var/lib/relaydb/turndb",
		HashAlgorithm: model.HashSHA1.String(),
		LogLevel:      "info",
		StatusAddress: "127.0.0.1:5766",
		sources:       make(map[string]string),
	}
	for _, name := range attributeNames() {
		c.sources[name] = SourceDefault
	}
	return c
}

// FilePath returns the config file used by Load: RELAYDB_CONFIG_PATH (or
// the default directory) joined with relaydb.yml, or relaydb.toml when only
// that exists.
func FilePath() string {
	dir := os.Getenv("RELAYDB_CONFIG_PATH")
	if dir == "" {
		dir = DefaultConfigPath
	}
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if _, err := os.Stat(filepath.Join(dir, TOMLConfigName)); err == nil {
			return filepath.Join(dir, TOMLConfigName)
		}
	}
	return path
}

// Load loads configuration from the default file and the environment.
func Load() (*RelayConfig, error) {
	return LoadFile(FilePath())
}

// LoadFile loads configuration from path and the environment. A missing
// file is not an error. Variables in a .env file in the working directory
// are added to the environment first; variables already set win.
// Environment variables take precedence over file values.
func LoadFile(path string) (*RelayConfig, error) {
	config := newDefault()
	config.configFilePath = path

	if data, err := os.ReadFile(path); err == nil {
		var file overlay
		if err := decodeFile(path, data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		config.apply(file, SourceFile)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var environment overlay
	if err := env.Parse(&environment); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	config.apply(environment, SourceEnvironment)

	return config, nil
}

func decodeFile(path string, data []byte, into *overlay) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, into)
	}
	return yaml.Unmarshal(data, into)
}

func attributeNames() []string {
	return []string{
		"userdb_type", "userdb", "hash_algorithm",
		"max_bps", "total_quota", "user_quota",
		"log_level", "status_address",
	}
}

func (c *RelayConfig) apply(o overlay, source string) {
	if o.UserDBType != nil {
		c.UserDBType = strings.ToLower(strings.TrimSpace(*o.UserDBType))
		c.sources["userdb_type"] = source
	}
	if o.UserDB != nil {
		c.UserDB = *o.UserDB
		c.sources["userdb"] = source
	}
	if o.HashAlgorithm != nil {
		c.HashAlgorithm = strings.ToLower(strings.TrimSpace(*o.HashAlgorithm))
		c.sources["hash_algorithm"] = source
	}
	if o.MaxBPS != nil {
		c.MaxBPS = *o.MaxBPS
		c.sources["max_bps"] = source
	}
	if o.TotalQuota != nil {
		c.TotalQuota = *o.TotalQuota
		c.sources["total_quota"] = source
	}
	if o.UserQuota != nil {
		c.UserQuota = *o.UserQuota
		c.sources["user_quota"] = source
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
		c.sources["log_level"] = source
	}
	if o.StatusAddress != nil {
		c.StatusAddress = *o.StatusAddress
		c.sources["status_address"] = source
	}
}

// Override sets attribute name from a command line flag. It takes
// precedence over every other source.
func (c *RelayConfig) Override(name, value string) error {
	var o overlay
	switch name {
	case "userdb_type":
		o.UserDBType = &value
	case "userdb":
		o.UserDB = &value
	case "hash_algorithm":
		o.HashAlgorithm = &value
	case "max_bps":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		o.MaxBPS = &v
	case "total_quota", "user_quota":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if name == "total_quota" {
			o.TotalQuota = &v
		} else {
			o.UserQuota = &v
		}
	case "log_level":
		o.LogLevel = &value
	case "status_address":
		o.StatusAddress = &value
	default:
		return fmt.Errorf("unknown attribute %q", name)
	}
	c.apply(o, SourceFlag)
	return nil
}

// ConfigFilePath returns the path to the config file
func (c *RelayConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *RelayConfig) Source(name string) string {
	if c.sources == nil {
		return SourceDefault
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return SourceDefault
}

// Kind parses userdb_type.
func (c *RelayConfig) Kind() (store.Kind, error) {
	kind, err := store.KindString(c.UserDBType)
	if err != nil || kind == store.KindUnknown {
		return store.KindUnknown, fmt.Errorf("invalid userdb_type: %q", c.UserDBType)
	}
	return kind, nil
}

// Hash parses hash_algorithm.
func (c *RelayConfig) Hash() (model.HashAlgorithm, error) {
	alg, err := model.HashAlgorithmString(c.HashAlgorithm)
	if err != nil {
		return 0, fmt.Errorf("invalid hash_algorithm: %q", c.HashAlgorithm)
	}
	return alg, nil
}

// Defaults returns the options new and reset realms start with.
func (c *RelayConfig) Defaults() realm.Options {
	return realm.Options{
		MaxBPS:     c.MaxBPS,
		TotalQuota: c.TotalQuota,
		UserQuota:  c.UserQuota,
	}
}

// Database returns the driver settings.
func (c *RelayConfig) Database() (db.Config, error) {
	kind, err := c.Kind()
	if err != nil {
		return db.Config{}, err
	}
	hash, err := c.Hash()
	if err != nil {
		return db.Config{}, err
	}
	return db.Config{
		Kind:     kind,
		Location: c.UserDB,
		Hash:     hash,
		Debug:    strings.EqualFold(c.LogLevel, "debug"),
	}, nil
}

// Validate validates the configuration
func (c *RelayConfig) Validate() error {
	if _, err := c.Kind(); err != nil {
		return err
	}
	if strings.TrimSpace(c.UserDB) == "" {
		return fmt.Errorf("userdb is required")
	}
	if _, err := c.Hash(); err != nil {
		return err
	}
	if c.TotalQuota < 0 || c.UserQuota < 0 {
		return fmt.Errorf("quotas must not be negative")
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
			return fmt.Errorf("invalid log_level: %q", c.LogLevel)
		}
	}
	if c.StatusAddress != "" {
		if _, _, err := net.SplitHostPort(c.StatusAddress); err != nil {
			return fmt.Errorf("invalid status_address: %w", err)
		}
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *RelayConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "userdb_type", Value: c.UserDBType, Source: c.Source("userdb_type")},
		{Name: "userdb", Value: db.SanitizeLocation(c.UserDB), Source: c.Source("userdb")},
		{Name: "hash_algorithm", Value: c.HashAlgorithm, Source: c.Source("hash_algorithm")},
		{Name: "max_bps", Value: strconv.FormatUint(c.MaxBPS, 10), Source: c.Source("max_bps")},
		{Name: "total_quota", Value: strconv.Itoa(c.TotalQuota), Source: c.Source("total_quota")},
		{Name: "user_quota", Value: strconv.Itoa(c.UserQuota), Source: c.Source("user_quota")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "status_address", Value: c.StatusAddress, Source: c.Source("status_address")},
	}
}

// FormatText returns a text representation of the configuration
func (c *RelayConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *RelayConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
