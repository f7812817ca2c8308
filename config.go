package mrq

import (
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/mrq/logger"
)

const defaultMaxRedirects = 10

// Config configures a Client.
type Config struct {
	// Timeout is the default connect/read/write timeout applied when a
	// request carries none. Zero defers to the MRQ_TIMEOUT environment
	// variable; if that is unset too, requests have no timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MaxRedirects bounds the redirect chain followed by a single send.
	// Defaults to 10.
	MaxRedirects int `yaml:"max_redirects" mapstructure:"max_redirects"`

	// DisableTLS rejects https URLs before any network activity. Sending
	// an encrypted request through a client with TLS disabled is a
	// configuration error, not a transport error.
	DisableTLS bool `yaml:"disable_tls" mapstructure:"disable_tls"`

	// TLS configures certificate verification for https connections.
	// Nil verifies against the system root store.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are default headers applied to every request unless the
	// request sets the same key itself.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Logger receives dispatch-time debug logging. Nil is silent.
	Logger *logger.Logger `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.MaxRedirects == 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("mrq: timeout must not be negative")
	}
	if c.MaxRedirects < 0 {
		return fmt.Errorf("mrq: max_redirects must not be negative")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}

var loadEnvFileOnce sync.Once

// envDefaultTimeout resolves the MRQ_TIMEOUT environment variable (whole
// seconds) into a timeout. A local .env file is loaded once, best-effort,
// before the first lookup. Returns zero when unset or unparsable.
func envDefaultTimeout() time.Duration {
	loadEnvFileOnce.Do(func() {
		_ = godotenv.Load()
	})
	v := viper.New()
	v.SetEnvPrefix("mrq")
	v.AutomaticEnv()
	secs := v.GetInt("timeout")
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// resolveTimeout picks the effective timeout for a request: the request's
// explicit value, else the config value, else the environment default,
// else none.
func (c *Config) resolveTimeout(r Request) time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	if c.Timeout > 0 {
		return c.Timeout
	}
	return envDefaultTimeout()
}
