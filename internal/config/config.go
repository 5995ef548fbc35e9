package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Valores de respaldo heredados. Son inseguros: se mantienen para desarrollo local y se
// reportan con InsecureDefaults.
const (
	FallbackJWTSecret  = "your_jwt_secret_key"
	FallbackDBPassword = "kny"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config centraliza la configuración del servicio.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	JWTSecret    string        `env:"JWT_SECRET" envDefault:"your_jwt_secret_key"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"1h"`
	JWTIssuer    string        `env:"JWT_ISSUER" envDefault:"user-auth"`
	BcryptCost   int           `env:"BCRYPT_COST" envDefault:"10"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"127.0.0.1"`
	DBPort      int    `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD" envDefault:"kny"`
	DBName      string `env:"DB_NAME" envDefault:"real_estate_db"`
	DBDialect   string `env:"DB_DIALECT" envDefault:"postgres"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction indica si el servicio corre en modo produccion.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), EnvProduction)
}

// DSN devuelve la cadena de conexion a Postgres. DATABASE_URL tiene prioridad sobre DB_*.
func (c *Config) DSN() string {
	if strings.TrimSpace(c.DatabaseURL) != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:   "/" + c.DBName,
	}
	if c.DBSSLMode != "" {
		q := url.Values{}
		q.Set("sslmode", c.DBSSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// InsecureDefaults lista las variables que siguen usando un valor de respaldo hardcodeado.
func (c *Config) InsecureDefaults() []string {
	var out []string
	if c.JWTSecret == "" || c.JWTSecret == FallbackJWTSecret {
		out = append(out, "JWT_SECRET")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" && c.DBPassword == FallbackDBPassword {
		out = append(out, "DB_PASSWORD")
	}
	return out
}

// Validate rechaza configuraciones que no pueden arrancar.
func (c *Config) Validate() error {
	var errs []error
	if !strings.EqualFold(c.DBDialect, "postgres") {
		errs = append(errs, fmt.Errorf("unsupported DB_DIALECT %q", c.DBDialect))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost))
	}
	if c.JWTExpiresIn < 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must not be negative"))
	}
	if c.IsProduction() {
		for _, name := range c.InsecureDefaults() {
			errs = append(errs, fmt.Errorf("%s must be set explicitly in production", name))
		}
	}
	return errors.Join(errs...)
}
