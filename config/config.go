package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDataPath       = "data-path"
	ConfigLexiconPath    = "lexicon-path"
	ConfigDefaultLexicon = "default-lexicon"
	ConfigDefaultSort    = "default-sort"
	ConfigMaxResults     = "max-results"
	ConfigDebug          = "debug"
	ConfigNatsURL        = "nats-url"
	ConfigNatsSubject    = "nats-subject"
	ConfigCPUProfile     = "cpu-profile"
	ConfigMemProfile     = "mem-profile"
)

const configFileName = "solver"

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config with every default set and nothing read
// from flags, the environment or a file.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDataPath, "./data")
	c.SetDefault(ConfigLexiconPath, "./data/lexica")
	c.SetDefault(ConfigDefaultLexicon, "TWL06")
	c.SetDefault(ConfigDefaultSort, "score")
	c.SetDefault(ConfigMaxResults, 0)
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	c.SetDefault(ConfigNatsSubject, "solver.solve")
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigMemProfile, "")
}

// Load reads flags from args, then SOLVER_* environment variables, then an
// optional solver.yaml in the data path. Flags win over the environment,
// which wins over the file.
func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		c.Viper = viper.New()
	}
	c.setDefaults()

	fs := c.flagSet()
	flags, _ := c.splitArgs(args)
	err := fs.Parse(flags)
	if err != nil {
		return err
	}
	err = c.BindPFlags(fs)
	if err != nil {
		return err
	}

	c.SetEnvPrefix("solver")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetConfigName(configFileName)
	c.SetConfigType("yaml")
	c.AddConfigPath(c.GetString(ConfigDataPath))
	err = c.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		log.Debug().Msg("no config file found; using flags and environment only")
	}
	return nil
}

func (c *Config) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("solver", pflag.ContinueOnError)
	fs.String(ConfigDataPath, c.GetString(ConfigDataPath), "directory holding data files")
	fs.String(ConfigLexiconPath, c.GetString(ConfigLexiconPath), "directory holding lexicon files")
	fs.String(ConfigDefaultLexicon, c.GetString(ConfigDefaultLexicon), "the default lexicon to use")
	fs.String(ConfigDefaultSort, c.GetString(ConfigDefaultSort), "the default sort order: score, length or none")
	fs.Int(ConfigMaxResults, c.GetInt(ConfigMaxResults), "maximum number of results to display (0 for all)")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigNatsURL, c.GetString(ConfigNatsURL), "the NATS server URL")
	fs.String(ConfigNatsSubject, c.GetString(ConfigNatsSubject), "the NATS subject the solver listens on")
	fs.String(ConfigCPUProfile, "", "file to write a CPU profile to")
	fs.String(ConfigMemProfile, "", "file to write a memory profile to")
	return fs
}

// CommandArgs returns args without the configuration flags, leaving only
// the command meant for the shell.
func (c *Config) CommandArgs(args []string) []string {
	_, rest := c.splitArgs(args)
	return rest
}

// splitArgs separates the `--name[=value]` configuration flags from
// everything else. Single-dash words belong to shell commands and are never
// treated as flags.
func (c *Config) splitArgs(args []string) (flags, rest []string) {
	fs := c.flagSet()
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "--") {
			rest = append(rest, a)
			continue
		}
		name, _, hasValue := strings.Cut(a[2:], "=")
		f := fs.Lookup(name)
		if f == nil {
			rest = append(rest, a)
			continue
		}
		flags = append(flags, a)
		if !hasValue && f.Value.Type() != "bool" && i+1 < len(args) {
			// the value is the next argument
			i++
			flags = append(flags, args[i])
		}
	}
	return flags, rest
}

// AdjustRelativePaths makes the data paths relative to basepath when they
// are given as relative paths.
func (c *Config) AdjustRelativePaths(basepath string) {
	for _, key := range []string{ConfigDataPath, ConfigLexiconPath} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		c.Set(key, filepath.Join(basepath, p))
	}
}

// SanitizedSettings returns all settings minus anything that looks like a
// credential, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	all := c.AllSettings()
	out := make(map[string]any, len(all))
	for k, v := range all {
		lk := strings.ToLower(k)
		if strings.Contains(lk, "token") || strings.Contains(lk, "password") ||
			strings.Contains(lk, "secret") {
			out[k] = "********"
			continue
		}
		out[k] = v
	}
	return out
}

// Write saves the current configuration to solver.yaml in the data path.
func (c *Config) Write() error {
	p := filepath.Join(c.GetString(ConfigDataPath), configFileName+".yaml")
	return c.WriteConfigAs(p)
}
