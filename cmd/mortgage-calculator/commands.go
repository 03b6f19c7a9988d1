package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/form"
	"github.com/iwvelando/mortgage-calculator/internal/logging"
	"github.com/iwvelando/mortgage-calculator/internal/server"
	"github.com/iwvelando/mortgage-calculator/internal/session"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cli struct {
	out        io.Writer
	configPath string
	logLevel   string
	envFile    string

	conf   *config.Configuration
	logger *zap.Logger
}

type loanFlags struct {
	amount       string
	term         string
	rate         string
	loanType     string
	outputFormat string
}

func newRootCommand(out io.Writer) *cobra.Command {
	c := &cli{out: out, envFile: defaultEnvFile}

	root := &cobra.Command{
		Use:           "mortgage-calculator",
		Short:         "Mortgage repayment calculator (CLI or web)",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(c.calculateCommand(), c.scheduleCommand(), c.serveCommand())
	return root
}

// defaultEnvFile is read before configuration so MORTGAGE_* variables may
// live beside the binary instead of in the shell.
const defaultEnvFile = ".env"

// loadDotenv loads path into the environment. A missing file is not an error.
func loadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (c *cli) setup() error {
	envErr := loadDotenv(c.envFile)

	conf, err := config.LoadConfiguration(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", c.configPath, err)
	}

	logger, err := logging.New(conf.Logging, c.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if envErr != nil {
		logger.Warn("failed to load env file",
			zap.String("op", "main"),
			zap.String("path", c.envFile),
			zap.Error(envErr),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	c.conf = conf
	c.logger = logger
	return nil
}

func addLoanFlags(cmd *cobra.Command, f *loanFlags) {
	cmd.Flags().StringVar(&f.amount, "amount", "", "mortgage amount, e.g. 200000 or £200,000")
	cmd.Flags().StringVar(&f.term, "term", "", "mortgage term in whole years")
	cmd.Flags().StringVar(&f.rate, "rate", "", "annual interest rate in percent, e.g. 5.25")
	cmd.Flags().StringVar(&f.loanType, "type", constants.RepaymentTypeRepayment, "repayment or interestOnly")
	cmd.Flags().StringVar(&f.outputFormat, "output-format", "", "type of output override: pretty, csv, json, yaml")
}

// prepare validates the loan flags and builds the output writer.
func (c *cli) prepare(f *loanFlags) (mortgage.LoanSpecification, *output.Writer, error) {
	outputFormat := c.conf.Output.Format
	if f.outputFormat != "" {
		outputFormat = strings.ToLower(f.outputFormat)
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return mortgage.LoanSpecification{}, nil, err
	}

	spec, err := form.Validate(form.Values{
		Amount: f.amount,
		Term:   f.term,
		Rate:   f.rate,
		Type:   f.loanType,
	})
	if err != nil {
		return mortgage.LoanSpecification{}, nil, err
	}

	formatter, err := format.NewCurrencyFormatter(c.conf.Display.Locale, c.conf.Display.CurrencySymbol)
	if err != nil {
		return mortgage.LoanSpecification{}, nil, err
	}
	return spec, output.NewWriter(c.out, outputFormat, formatter), nil
}

func (c *cli) calculateCommand() *cobra.Command {
	var f loanFlags
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the monthly and total repayment of a mortgage",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, writer, err := c.prepare(&f)
			if err != nil {
				return err
			}

			result := mortgage.Calculate(spec)
			c.logger.Debug("repayment calculated",
				zap.String("op", "main.calculate"),
				zap.Float64("monthlyPayment", result.MonthlyPayment),
				zap.Float64("totalRepayment", result.TotalRepayment),
			)
			return writer.WriteResult(result)
		},
	}
	addLoanFlags(cmd, &f)
	return cmd
}

func (c *cli) scheduleCommand() *cobra.Command {
	var (
		f         loanFlags
		startDate string
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the month-by-month amortization schedule of a mortgage",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, writer, err := c.prepare(&f)
			if err != nil {
				return err
			}

			payments, err := mortgage.NewScheduleGenerator(c.logger).GenerateSchedule(spec, startDate)
			if err != nil {
				return fmt.Errorf("failed to generate schedule: %w", err)
			}
			return writer.WriteSchedule(output.SchedulePayload{
				Result:   mortgage.Calculate(spec),
				Payments: payments,
			})
		},
	}
	addLoanFlags(cmd, &f)
	cmd.Flags().StringVar(&startDate, "start-date", "", "first payment month (YYYY-MM), default current month")
	return cmd
}

func (c *cli) serveCommand() *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator web UI and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				c.conf.Server.Address = address
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address override, e.g. :8080")
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	store, err := session.NewStore(c.logger, c.conf.Session)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			c.logger.Warn("failed to close session store",
				zap.String("op", "main.serve"),
				zap.Error(closeErr),
			)
		}
	}()

	handler, err := server.NewHandler(c.logger, *c.conf, store, version)
	if err != nil {
		return fmt.Errorf("failed to build HTTP handler: %w", err)
	}

	srv := &http.Server{
		Addr:         c.conf.Server.Address,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		c.logger.Info("serving mortgage calculator",
			zap.String("op", "main.serve"),
			zap.String("address", srv.Addr),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		c.logger.Info("shutting down", zap.String("op", "main.serve"))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	return nil
}
