package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/iho/txrecon/internal/adapter/loader"
	"github.com/iho/txrecon/internal/adapter/report"
	"github.com/iho/txrecon/internal/domain"
	"github.com/iho/txrecon/internal/infrastructure/config"
	"github.com/iho/txrecon/internal/infrastructure/idgen"
	"github.com/iho/txrecon/internal/infrastructure/logger"
	"github.com/iho/txrecon/internal/usecase"
)

const (
	exitOK       = 0
	exitError    = 1
	exitFailures = 2
)

// errFailuresDetected signals failures with --fail-on-mismatch set.
var errFailuresDetected = errors.New("failed transactions detected")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errFailuresDetected):
		return exitFailures
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return exitError
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "reconcile",
		Short:         "Transaction reconciliation tool",
		Long:          `Reconciles an XML transaction log against a companion CSV record set and reports failed transactions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(runCmd(), reportCmd())

	return rootCmd
}

func runCmd() *cobra.Command {
	var (
		primaryPath    string
		companionPath  string
		dumpPath       string
		csvPath        string
		failOnMismatch bool
		summary        bool
		logLevel       string
		logFormat      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile the sources and write the failure report",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			// Flags win over the environment.
			setDefault(cmd, "primary", &primaryPath, cfg.PrimaryPath)
			setDefault(cmd, "companion", &companionPath, cfg.CompanionPath)
			setDefault(cmd, "dump", &dumpPath, cfg.ReportDumpPath)
			setDefault(cmd, "csv", &csvPath, cfg.ReportCSVPath)
			logLevel = cfg.LogLevel
			logFormat = cfg.LogFormat
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New(logger.Config{Level: logLevel, Format: logFormat, Output: cmd.ErrOrStderr()})

			sink := report.NewFileSink(dumpPath, csvPath, report.NewRetrier(log))
			uc := usecase.NewReconciliationUseCase(
				loader.NewXMLLoader(primaryPath),
				loader.NewCSVLoader(companionPath),
				sink,
				idgen.NewULIDGenerator(),
				nil,
			)

			ctx, cancel := context.WithTimeout(cmd.Context(), usecase.DefaultRunTimeout)
			defer cancel()

			run, err := uc.Run(ctx)
			if err != nil {
				return err
			}

			log.Debug().
				Str("run_id", run.ID).
				Int("primary", run.PrimaryCount).
				Int("companion", run.CompanionCount).
				Int("failures", len(run.Failures)).
				Dur("duration", run.Duration()).
				Msg("reconciliation finished")

			out := cmd.OutOrStdout()
			if run.Verified() {
				fmt.Fprintln(out, "All transactions have been verified.")
				return nil
			}

			fmt.Fprintf(out, "Failed transactions detected. See the report: %s\n", sink.CSVPath())
			if summary {
				if err := printSummary(out, run); err != nil {
					return err
				}
			}
			if failOnMismatch {
				return errFailuresDetected
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&primaryPath, "primary", "", "Path to the primary XML transaction log (env PRIMARY_SOURCE_PATH)")
	cmd.Flags().StringVar(&companionPath, "companion", "", "Path to the companion CSV records (env COMPANION_SOURCE_PATH)")
	cmd.Flags().StringVar(&dumpPath, "dump", "", "Path of the JSON audit dump (env REPORT_DUMP_PATH)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Path of the CSV report (env REPORT_CSV_PATH)")
	cmd.Flags().BoolVar(&failOnMismatch, "fail-on-mismatch", false, "Exit with status 2 when failures are found")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print failure counts per rule")

	return cmd
}

// printSummary renders failure counts per rule as a table.
func printSummary(out io.Writer, run *domain.ReconciliationRun) error {
	counts := usecase.Result{Failures: run.Failures}.CountByRule()

	data := pterm.TableData{{"Rule", "Failures"}}
	for _, rule := range domain.Rules {
		data = append(data, []string{string(rule), strconv.Itoa(counts[rule])})
	}
	data = append(data, []string{"total", strconv.Itoa(len(run.Failures))})

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}

	_, err = fmt.Fprintln(out, table)
	return err
}

// setDefault fills target from the environment when the flag was not given.
func setDefault(cmd *cobra.Command, flag string, target *string, value string) {
	if !cmd.Flags().Changed(flag) {
		*target = value
	}
}

func reportCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch the CSV report from a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchReport(cmd.Context(), baseURL, timeout, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the reconciliation server")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	return cmd
}

func fetchReport(ctx context.Context, baseURL string, timeout time.Duration, out io.Writer) error {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("report request failed (status: %d): %s", resp.StatusCode, string(body))
	}

	_, err = out.Write(body)
	return err
}
