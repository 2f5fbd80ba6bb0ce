package trainlights

import (
	"fmt"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"trainlights/leds"
)

// DefaultConfigPath is where the config file is looked for when the
// -config flag is not given. The file is optional.
const DefaultConfigPath = "/etc/trainlights.toml"

// Flags holds the command line values that participate in config
// resolution.
type Flags struct {
	ConfigPath string
}

type configTOML struct {
	Host                  string `toml:"host"`
	Port                  int    `toml:"port"`
	AllOffFailFast        bool   `toml:"all_off_fail_fast"`
	StopBlinkOnWriteError bool   `toml:"stop_blink_on_write_error"`
}

// Config resolves settings from defaults, then the TOML config file,
// then environment variables. Later sources win.
type Config struct {
	toml configTOML
}

func NewConfig(fs TrainFS, flags Flags, getenv func(string) string) (*Config, error) {
	c := &Config{
		toml: configTOML{
			Host: "0.0.0.0",
			Port: 8080,
		},
	}

	path := flags.ConfigPath
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}
	path, err := fs.Abs(path)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(fs, path)
	if err == nil {
		if err := toml.Unmarshal(data, &c.toml); err != nil {
			return nil, fmt.Errorf("parsing config file %q: %w", path, err)
		}
	} else if explicit {
		// Only an explicitly requested config file is required to exist
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}

	if host := getenv("HOST"); host != "" {
		c.toml.Host = host
	}
	if port := getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("PORT must be a number: %w", err)
		}
		c.toml.Port = p
	}

	return c, nil
}

func (c *Config) Host() string {
	return c.toml.Host
}

func (c *Config) Port() int {
	return c.toml.Port
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.toml.Host, c.toml.Port)
}

// LedOptions returns the failure policies for the LED controller.
func (c *Config) LedOptions() leds.Options {
	return leds.Options{
		AllOffFailFast:        c.toml.AllOffFailFast,
		StopBlinkOnWriteError: c.toml.StopBlinkOnWriteError,
	}
}
