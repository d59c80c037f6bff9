package config

import (
	"fmt"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"net"
	"strconv"
)

// Config process settings, read from HOST, PORT and DEBUG and overridable by flags
type Config struct {
	Host  string
	Port  int
	Debug bool
}

// Addr the address to listen on
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Load reads configuration from the environment. flags may be nil; flags that were
// set explicitly take precedence over environment variables.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("debug", false)

	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	port, err := strconv.Atoi(v.GetString("port"))
	if err != nil {
		return Config{}, &Error{Field: "port", Message: fmt.Sprintf("not a number: %q", v.GetString("port"))}
	}
	// anything that is not a boolean leaves debug off
	debug, _ := strconv.ParseBool(v.GetString("debug"))

	cfg := Config{
		Host:  v.GetString("host"),
		Port:  port,
		Debug: debug,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks if the configuration is usable
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return &Error{Field: "port", Message: fmt.Sprintf("out of range: %d", c.Port)}
	}
	return nil
}

// Error a configuration error
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
