// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/emi-calculator/pkg/amortization"
	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/iwvelando/emi-calculator/pkg/format"
	"github.com/iwvelando/emi-calculator/pkg/validation"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Configuration holds all configuration for emi-calculator.
type Configuration struct {
	Loan    amortization.LoanInput `yaml:"loan"`
	Method  string                 `yaml:"method,omitempty"` // linear-proxy, reducing-balance
	Logging LoggingConfig          `yaml:"logging,omitempty"`
	Output  OutputConfig           `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"`   // pretty, csv, summary, clipboard
	View     string `yaml:"view,omitempty"`     // yearly, monthly, summary
	Currency string `yaml:"currency,omitempty"` // indian, western
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Keys absent from the file keep their defaults and
// EMI_-prefixed environment variables override both.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// Defaults returns the configuration used when no file is present, still
// honoring environment overrides.
func Defaults() (*Configuration, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("loan.principal", constants.DefaultPrincipal)
	v.SetDefault("loan.annualRatePercent", constants.DefaultAnnualRatePercent)
	v.SetDefault("loan.tenureYears", constants.DefaultTenureYears)
	v.SetDefault("method", constants.MethodLinearProxy)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.view", constants.ViewYearly)
	v.SetDefault("output.currency", constants.CurrencyIndian)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration checks every enumerated setting and the loan input.
// Values that compute but look unusual are returned as warnings.
func (c *Configuration) ValidateConfiguration() ([]string, error) {
	if _, err := amortization.ParseInterestMethod(c.Method); err != nil {
		return nil, err
	}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return nil, err
	}
	if err := validation.ValidateView(c.Output.View); err != nil {
		return nil, err
	}
	if _, ok := format.ParseStyle(c.Output.Currency); !ok {
		return nil, fmt.Errorf("expected currency of %s or %s, got %s",
			constants.CurrencyIndian, constants.CurrencyWestern, c.Output.Currency)
	}
	if err := amortization.Validate(c.Loan); err != nil {
		return nil, err
	}
	return validation.LoanWarnings(c.Loan), nil
}

// CurrencyStyle returns the configured currency style, defaulting to Indian.
func (c *Configuration) CurrencyStyle() format.Style {
	style, ok := format.ParseStyle(c.Output.Currency)
	if !ok {
		return format.Indian
	}
	return style
}

// NewCalculator builds a calculator for the configured interest method.
func (c *Configuration) NewCalculator(logger *zap.Logger) (*amortization.Calculator, error) {
	method, err := amortization.ParseInterestMethod(c.Method)
	if err != nil {
		return nil, err
	}
	return amortization.NewCalculator(logger, amortization.WithMethod(method)), nil
}
