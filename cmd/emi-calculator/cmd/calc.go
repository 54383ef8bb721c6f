package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/iwvelando/emi-calculator/internal/config"
	"github.com/iwvelando/emi-calculator/pkg/amortization"
	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/iwvelando/emi-calculator/pkg/loaninput"
	"github.com/iwvelando/emi-calculator/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type calcOptions struct {
	configPath   string
	principal    string
	rate         string
	tenure       string
	method       string
	outputFormat string
	view         string
	currency     string
	lenient      bool
}

func newCalcCommand() *cobra.Command {
	opts := &calcOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the EMI and amortization schedule for a loan",
		Long: `Compute the EMI, totals and amortization schedule for a loan.

Loan values come from the configuration file when present and are
overridden by flags. Empty flag values count as zero. With --lenient,
unparseable or negative values also count as zero and a fractional tenure
is truncated, the way the calculator form treats half-typed fields.

Example:
  emi-calculator calc --principal 1000000 --rate 8.5 --tenure 20 --view monthly`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVarP(&opts.principal, "principal", "p", "", "loan principal")
	flags.StringVarP(&opts.rate, "rate", "r", "", "annual interest rate in percent")
	flags.StringVarP(&opts.tenure, "tenure", "t", "", "tenure in whole years")
	flags.StringVar(&opts.method, "method", "", "interest method override: linear-proxy, reducing-balance")
	flags.StringVarP(&opts.outputFormat, "output-format", "o", "", "output format override: pretty, csv, summary, clipboard")
	flags.StringVar(&opts.view, "view", "", "pretty output view override: yearly, monthly, summary")
	flags.StringVar(&opts.currency, "currency", "", "currency style override: indian, western")
	flags.BoolVar(&opts.lenient, "lenient", false, "treat unparseable loan values as zero instead of failing")

	return cmd
}

func runCalc(cmd *cobra.Command, opts *calcOptions) error {
	conf, err := loadCalcConfiguration(opts.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	logLevel, _ := cmd.Flags().GetString("log-level")
	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := applyCalcOverrides(cmd, opts, conf); err != nil {
		return err
	}

	warnings, err := conf.ValidateConfiguration()
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "cmd.calc"),
		)
	}

	calc, err := conf.NewCalculator(logger)
	if err != nil {
		return err
	}

	result, err := calc.Calculate(conf.Loan)
	if err != nil {
		return fmt.Errorf("failed to compute schedule: %w", err)
	}

	return writeResult(cmd.OutOrStdout(), conf, result)
}

// loadCalcConfiguration reads the configuration file. A missing default file
// falls back to built-in defaults; a missing explicit file is an error.
func loadCalcConfiguration(path string, explicit bool) (*config.Configuration, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Defaults()
		}
	}

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}
	return conf, nil
}

func applyCalcOverrides(cmd *cobra.Command, opts *calcOptions, conf *config.Configuration) error {
	flags := cmd.Flags()

	principal := strconv.FormatFloat(conf.Loan.Principal, 'f', -1, 64)
	rate := strconv.FormatFloat(conf.Loan.AnnualRatePercent, 'f', -1, 64)
	tenure := strconv.Itoa(conf.Loan.TenureYears)
	if flags.Changed("principal") {
		principal = opts.principal
	}
	if flags.Changed("rate") {
		rate = opts.rate
	}
	if flags.Changed("tenure") {
		tenure = opts.tenure
	}

	if opts.lenient {
		input := loaninput.Coerce(principal, rate, tenure)
		if err := loaninput.CheckTenure(input.TenureYears); err != nil {
			return err
		}
		conf.Loan = input
	} else {
		input, err := loaninput.Parse(principal, rate, tenure)
		if err != nil {
			return err
		}
		conf.Loan = input
	}

	if opts.method != "" {
		conf.Method = opts.method
	}
	if opts.outputFormat != "" {
		conf.Output.Format = opts.outputFormat
	}
	if opts.view != "" {
		conf.Output.View = opts.view
	}
	if opts.currency != "" {
		conf.Output.Currency = opts.currency
	}
	return nil
}

func writeResult(w io.Writer, conf *config.Configuration, result amortization.Result) error {
	style := conf.CurrencyStyle()

	switch conf.Output.Format {
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, result)
	case constants.OutputFormatSummary:
		_, err := fmt.Fprintln(w, output.Summary(result, style))
		return err
	case constants.OutputFormatClipboard:
		_, err := fmt.Fprintln(w, output.ClipboardText(result, style))
		return err
	default:
		output.PrettyFormat(w, result, style, conf.Output.View)
		return nil
	}
}
