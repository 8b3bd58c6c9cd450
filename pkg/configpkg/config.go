// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config stores the database connection settings.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBHost      string `mapstructure:"DB_HOST" validate:"required"`
	DBPort      int    `mapstructure:"DB_PORT" validate:"required,min=1,max=65535"`
	DBUser      string `mapstructure:"DB_USER" validate:"required"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME" validate:"required"`
	SSLMode     string `mapstructure:"DB_SSL_MODE" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	PoolSize    int    `mapstructure:"POOL_SIZE" validate:"omitempty,min=1"`
	Environment string `mapstructure:"GO_ENV"`
}

// Load reads configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	if err = validator.New().Struct(c); err != nil {
		return c, err
	}

	return c, nil
}

// DSN assembles the connection string for the postgres driver.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}

	return u.String()
}
