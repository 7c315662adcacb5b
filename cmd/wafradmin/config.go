package main

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/wafr/wafradmin/internal/logger"
)

const (
	defaultListenAddr   = "localhost:8000"
	defaultLoggingLevel = logger.LevelInfo
	defaultEnvironment  = logger.EnvProduction
	defaultSessionFile  = "wafradmin-sessions.json"
	defaultUserCount    = 50
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the admin API will be run
	ListenAddr string

	// Secret key
	// Session tokens are signed symmetrically, so this key is used for that purpose
	SecretKey string

	// Path of the file persisted operator sessions are kept in
	SessionFile string

	// How many roster records to generate at startup
	UserCount int

	// Operator credential override. Empty means the built-in credential.
	AdminEmail    string
	AdminPassword string

	// Environment
	Environment string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:    defaultLoggingLevel,
		ListenAddr:  defaultListenAddr,
		SessionFile: defaultSessionFile,
		UserCount:   defaultUserCount,
		Environment: defaultEnvironment,
	}
}

// Load variables from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}
	setInt := func(o *int) func(value string) {
		return func(value string) {
			if parsed, err := strconv.Atoi(value); err == nil {
				*o = parsed
			}
		}
	}

	envMap := map[string]func(string){
		"RUN_ADDRESS":  setString(&c.ListenAddr),
		"SECRET_KEY":   setString(&c.SecretKey),
		"LOG_LEVEL":    setString(&c.LogLevel),
		"SESSION_FILE": setString(&c.SessionFile),
		"USER_COUNT":   setInt(&c.UserCount),
		"ENVIRONMENT":  setString(&c.Environment),

		"ADMIN_EMAIL":    setString(&c.AdminEmail),
		"ADMIN_PASSWORD": setString(&c.AdminPassword),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("wafradmin", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.SecretKey, "secret-key", "s", c.SecretKey, "Secret key")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.SessionFile, "session-file", "f", c.SessionFile, "Path of the session store file")
	fs.IntVarP(&c.UserCount, "user-count", "c", c.UserCount, "Number of roster records to generate")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")

	return fs.Parse(args)
}
