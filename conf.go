package daytrack

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Storage     string
	DatabaseURL string
	RedisAddr   string
	LogLevel    string
	LogPath     string
	TimeFormat  string
	APIAddr     string
	DevMode     bool
}

const (
	KeyStorage     = "DAYTRACK_STORAGE"
	KeyDatabaseURL = "DAYTRACK_DB_URL"
	KeyRedisAddr   = "DAYTRACK_REDIS_ADDR"
	KeyLogLevel    = "DAYTRACK_LOG_LEVEL"
	KeyLogPath     = "DAYTRACK_LOG_PATH"
	KeyTimeFormat  = "DAYTRACK_TIME_FORMAT"
	KeyAPIAddr     = "DAYTRACK_API_ADDR"
	KeyDevMode     = "DAYTRACK_DEV_MODE"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

const (
	DefaultStorage    = StorageSQLite
	DefaultRedisAddr  = "localhost:6379"
	DefaultLogLevel   = "WARN"
	DefaultTimeFormat = "Jan 2 15:04"
	DefaultAPIAddr    = "127.0.0.1:8417"
)

var (
	userHome, _        = os.UserHomeDir()
	DefaultDatabaseURL = path.Join(userHome, ".daytrack", "daytrack.db")
	DefaultLogPath     = path.Join(userHome, ".daytrack", "daytrack.log")
)

// DefaultConfFile returns the conf file location under the user config dir.
func DefaultConfFile() string {
	cfgDir, _ := os.UserConfigDir()
	return path.Join(cfgDir, "daytrack", "daytrack.conf")
}

// LoadConfig resolves each setting from the environment, then confFile, then
// the defaults. A default conf file is written if confFile does not exist.
func LoadConfig(confFile string) (Config, error) {
	fromEnv := configFromLookup(os.Getenv)

	if _, err := os.Stat(confFile); err != nil {
		if err := writeDefaultConf(confFile); err != nil {
			return Config{}, fmt.Errorf("failed to create default conf file: %w", err)
		}
	}
	values, err := godotenv.Read(confFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read conf file %s: %w", confFile, err)
	}
	fromFile := configFromLookup(func(k string) string { return values[k] })

	cfg := Config{
		Storage:     coalesce(fromEnv.Storage, fromFile.Storage, DefaultStorage),
		DatabaseURL: coalesce(fromEnv.DatabaseURL, fromFile.DatabaseURL, DefaultDatabaseURL),
		RedisAddr:   coalesce(fromEnv.RedisAddr, fromFile.RedisAddr, DefaultRedisAddr),
		LogLevel:    coalesce(fromEnv.LogLevel, fromFile.LogLevel, DefaultLogLevel),
		LogPath:     coalesce(fromEnv.LogPath, fromFile.LogPath, DefaultLogPath),
		TimeFormat:  coalesce(fromEnv.TimeFormat, fromFile.TimeFormat, DefaultTimeFormat),
		APIAddr:     coalesce(fromEnv.APIAddr, fromFile.APIAddr, DefaultAPIAddr),
		DevMode:     fromEnv.DevMode || fromFile.DevMode,
	}

	if cfg.DevMode {
		cfg.LogLevel = "DEBUG"
		cfg.DatabaseURL = path.Join(os.TempDir(), "daytrack-dev.db")
	}

	switch cfg.Storage {
	case StorageSQLite, StorageRedis:
	default:
		return Config{}, fmt.Errorf("%s must be %q or %q, got %q", KeyStorage, StorageSQLite, StorageRedis, cfg.Storage)
	}

	return cfg, nil
}

func configFromLookup(get func(string) string) Config {
	dev := strings.TrimSpace(get(KeyDevMode))
	return Config{
		Storage:     get(KeyStorage),
		DatabaseURL: get(KeyDatabaseURL),
		RedisAddr:   get(KeyRedisAddr),
		LogLevel:    get(KeyLogLevel),
		LogPath:     get(KeyLogPath),
		TimeFormat:  get(KeyTimeFormat),
		APIAddr:     get(KeyAPIAddr),
		DevMode:     dev != "" && dev != "0" && !strings.EqualFold(dev, "false"),
	}
}

func writeDefaultConf(confFile string) error {
	if err := os.MkdirAll(path.Dir(confFile), 0o744); err != nil {
		return err
	}
	return godotenv.Write(map[string]string{
		KeyStorage:     DefaultStorage,
		KeyDatabaseURL: DefaultDatabaseURL,
		KeyLogLevel:    DefaultLogLevel,
		KeyLogPath:     DefaultLogPath,
		KeyTimeFormat:  DefaultTimeFormat,
	}, confFile)
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}
