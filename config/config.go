// Package config loads the push tool's settings from the environment.
// Every variable is prefixed FTPARCHIVE_, e.g. FTPARCHIVE_HOST.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the connection settings for one archive server.
type Config struct {
	Host     string        `envconfig:"HOST"`
	Port     int           `envconfig:"PORT" default:"21"`
	User     string        `envconfig:"USER"`
	Password string        `envconfig:"PASSWORD"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"20s"`

	// Secure selects transport encryption (explicit TLS). Plaintext FTP
	// has to be asked for.
	Secure             bool `envconfig:"SECURE" default:"true"`
	InsecureSkipVerify bool `envconfig:"INSECURE_SKIP_VERIFY" default:"false"`

	// Dir is the base directory on the server; uploads land in
	// Dir/<current year>.
	Dir string `envconfig:"DIR"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("ftparchive", &c); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return c, nil
}

// Addr returns the host:port dial address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
