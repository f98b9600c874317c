package cli

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/hupe1980/symnmf/errs"
	"github.com/hupe1980/symnmf/kmeans"
	"github.com/hupe1980/symnmf/nmf"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SYMNMF_NMF_SEED.
const EnvPrefix = "SYMNMF"

// Config is the effective tool configuration.
type Config struct {
	NMF         NMFConfig    `mapstructure:"nmf"`
	KMeans      KMeansConfig `mapstructure:"kmeans"`
	Log         LogConfig    `mapstructure:"log"`
	Workers     int          `mapstructure:"workers"`
	MemoryLimit int64        `mapstructure:"memory_limit"`
	IOLimit     int64        `mapstructure:"io_limit"`
	Report      string       `mapstructure:"report"`
	MetricsFile string       `mapstructure:"metrics_file"`
	Insecure    bool         `mapstructure:"insecure"`
}

// NMFConfig mirrors nmf.Config.
type NMFConfig struct {
	Seed    int64   `mapstructure:"seed"`
	Beta    float64 `mapstructure:"beta"`
	Epsilon float64 `mapstructure:"epsilon"`
	MaxIter int     `mapstructure:"max_iter"`
	Floor   float64 `mapstructure:"floor"`
}

// KMeansConfig mirrors kmeans.Config.
type KMeansConfig struct {
	MaxIter int     `mapstructure:"max_iter"`
	Epsilon float64 `mapstructure:"epsilon"`
}

// LogConfig selects the log sink. An empty File logs to stderr; otherwise
// the file is rotated by size.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	nc := nmf.DefaultConfig()
	v.SetDefault("nmf.seed", nc.Seed)
	v.SetDefault("nmf.beta", nc.Beta)
	v.SetDefault("nmf.epsilon", nc.Epsilon)
	v.SetDefault("nmf.max_iter", nc.MaxIter)
	v.SetDefault("nmf.floor", nc.Floor)

	kc := kmeans.DefaultConfig()
	v.SetDefault("kmeans.max_iter", kc.MaxIter)
	v.SetDefault("kmeans.epsilon", kc.Epsilon)

	v.SetDefault("log.level", "error")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)

	v.SetDefault("workers", 1)
	v.SetDefault("memory_limit", 0)
	v.SetDefault("io_limit", 0)
	v.SetDefault("report", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("insecure", false)
}

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":    "log.level",
	"log-format":   "log.format",
	"log-file":     "log.file",
	"workers":      "workers",
	"report":       "report",
	"metrics-file": "metrics_file",
	"insecure":     "insecure",
}

func addFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (yaml, toml or json)")
	fs.String("log-level", "error", "log level: debug, info, warn or error")
	fs.String("log-format", "text", "log format: text or json")
	fs.String("log-file", "", "write logs to a rotated file instead of stderr")
	fs.Int("workers", 1, "goroutines for similarity rows and k-means assignment")
	fs.String("report", "", "archive the analysis report (path, s3://, minio:// or dynamodb://table)")
	fs.String("metrics-file", "", "write prometheus metrics to this textfile on exit")
	fs.Bool("insecure", false, "use plain http for minio endpoints")
}

// LoadConfig resolves the configuration from defaults, the file named by
// the --config flag, the environment and the flags in fs.
func LoadConfig(v *viper.Viper, fs *pflag.FlagSet) (Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, errs.Usage("cli.LoadConfig", "bind flag %s: %v", name, err)
			}
		}
	}

	if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
		v.SetConfigFile(f.Value.String())
		if err := v.ReadInConfig(); err != nil {
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				return Config{}, errs.Usage("cli.LoadConfig", "parse %s: %v", f.Value.String(), err)
			}
			return Config{}, errs.IO("cli.LoadConfig", err, "read %s", f.Value.String())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Usage("cli.LoadConfig", "decode config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the parts of cfg not covered by the engine configs.
func (c Config) Validate() error {
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errs.Usage("cli", "unknown log format %q", c.Log.Format)
	}
	if c.Workers < 0 {
		return errs.Usage("cli", "workers must not be negative, got %d", c.Workers)
	}
	if c.MemoryLimit < 0 || c.IOLimit < 0 {
		return errs.Usage("cli", "resource limits must not be negative")
	}
	return c.NMFConfig().Validate()
}

// NMFConfig returns the factorization parameters.
func (c Config) NMFConfig() nmf.Config {
	return nmf.Config{
		Seed:    c.NMF.Seed,
		Beta:    c.NMF.Beta,
		Epsilon: c.NMF.Epsilon,
		MaxIter: c.NMF.MaxIter,
		Floor:   c.NMF.Floor,
	}
}

// KMeansConfig returns the K-means parameters.
func (c Config) KMeansConfig() kmeans.Config {
	return kmeans.Config{
		MaxIter: c.KMeans.MaxIter,
		Epsilon: c.KMeans.Epsilon,
		Workers: c.Workers,
	}
}

func (c LogConfig) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, errs.Usage("cli", "unknown log level %q", c.Level)
	}
	return l, nil
}
