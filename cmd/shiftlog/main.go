// Package main provides the CLI entrypoint for shiftlog.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/shiftlog/internal/clock"
	"github.com/verte-zerg/shiftlog/internal/config"
	"github.com/verte-zerg/shiftlog/internal/errlog"
	"github.com/verte-zerg/shiftlog/internal/export"
	"github.com/verte-zerg/shiftlog/internal/model"
	"github.com/verte-zerg/shiftlog/internal/punch"
	"github.com/verte-zerg/shiftlog/internal/search"
	"github.com/verte-zerg/shiftlog/internal/searchui"
	"github.com/verte-zerg/shiftlog/internal/store"
	"github.com/verte-zerg/shiftlog/internal/summary"
)

const (
	defaultShiftStart = "09:00"
	defaultShiftEnd   = "18:00"
	defaultLateLimit  = "09:30"
	defaultEarlyLimit = "17:00"
	defaultTZOffset   = "+06:00"
	defaultJSONOut    = "attendance_summary.json"
	defaultTableOut   = "attendance_summary.xlsx"
	defaultErrorsOut  = "error_log.txt"
	defaultFormat     = "xlsx"
)

var (
	processInput     string
	processJSONOut   string
	processTableOut  string
	processErrorsOut string
	processFormat    string
	processNoStore   bool

	policyShiftStart string
	policyShiftEnd   string
	policyLateLimit  string
	policyEarlyLimit string
	policyTZOffset   string

	searchEmp    string
	searchDate   string
	searchJSON   string
	searchFromDB bool
	searchPlain  bool

	historyLast int
	historyRun  int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "shiftlog",
		Short:         "Attendance punch log processor",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runProcessCmd,
	}

	rootCmd.Flags().StringVar(&processInput, "input", "", "punch log file to process")
	rootCmd.Flags().StringVar(&processJSONOut, "json-out", defaultJSONOut, "JSON export path")
	rootCmd.Flags().StringVar(&processTableOut, "table-out", defaultTableOut, "tabular export path")
	rootCmd.Flags().StringVar(&processErrorsOut, "errors-out", defaultErrorsOut, "skipped-line diagnostics path")
	rootCmd.Flags().StringVar(&processFormat, "format", defaultFormat, "tabular format (xlsx or csv)")
	rootCmd.Flags().BoolVar(&processNoStore, "no-store", false, "skip recording the run in the history database")
	addPolicyFlags(rootCmd)
	if err := rootCmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addPolicyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&policyShiftStart, "shift-start", defaultShiftStart, "shift start (HH:MM)")
	cmd.Flags().StringVar(&policyShiftEnd, "shift-end", defaultShiftEnd, "shift end (HH:MM)")
	cmd.Flags().StringVar(&policyLateLimit, "late-entry-limit", defaultLateLimit, "late entry threshold (HH:MM)")
	cmd.Flags().StringVar(&policyEarlyLimit, "early-exit-limit", defaultEarlyLimit, "early exit threshold (HH:MM)")
	cmd.Flags().StringVar(&policyTZOffset, "tz-offset", defaultTZOffset, "fixed UTC offset of the punch clock (+HH:MM)")
}

func runProcessCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "shift-start", &policyShiftStart, fileCfg.Policy.ShiftStart)
	applyStringConfig(cmd, "shift-end", &policyShiftEnd, fileCfg.Policy.ShiftEnd)
	applyStringConfig(cmd, "late-entry-limit", &policyLateLimit, fileCfg.Policy.LateEntryLimit)
	applyStringConfig(cmd, "early-exit-limit", &policyEarlyLimit, fileCfg.Policy.EarlyExitLimit)
	applyStringConfig(cmd, "tz-offset", &policyTZOffset, fileCfg.Policy.TimezoneOffset)
	applyStringConfig(cmd, "json-out", &processJSONOut, fileCfg.Output.JSONPath)
	applyStringConfig(cmd, "table-out", &processTableOut, fileCfg.Output.TablePath)
	applyStringConfig(cmd, "errors-out", &processErrorsOut, fileCfg.Output.ErrorsPath)
	applyStringConfig(cmd, "format", &processFormat, fileCfg.Output.Format)

	policy, err := clock.NewPolicy(policyShiftStart, policyShiftEnd, policyLateLimit, policyEarlyLimit, policyTZOffset)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(processFormat)
	if err != nil {
		return err
	}

	punches, skipped, err := punch.ReadLogFile(processInput, policy.TZOffset)
	if err != nil {
		return fmt.Errorf("failed to read punch log: %w", err)
	}
	collector := errlog.New()
	collector.RecordAll(skipped)

	report := summary.BuildReport(punches, policy)

	if err := export.WriteJSONFile(processJSONOut, report); err != nil {
		return err
	}
	logErrf("Wrote %s\n", processJSONOut)

	rows := summary.Flatten(report)
	tablePath, fellBack, err := export.WriteTabular(processTableOut, format, rows)
	if err != nil {
		return err
	}
	if fellBack {
		logErrf("Spreadsheet write failed; wrote CSV instead: %s\n", tablePath)
	} else {
		logErrf("Wrote %s\n", tablePath)
	}

	if err := collector.FlushToFile(processErrorsOut); err != nil {
		return err
	}
	if collector.Len() > 0 {
		logErrf("Skipped %d line(s). Check: %s\n", collector.Len(), processErrorsOut)
	}

	if !processNoStore {
		if err := recordRun(processInput, report, collector.Entries()); err != nil {
			// History is best-effort; the run's outputs are already on disk.
			logErrf("failed to record run history: %v\n", err)
		}
	}

	return summary.RenderStats(cmd.OutOrStdout(), summary.Stats(report, collector.Len()))
}

func recordRun(source string, report model.Report, skipped []model.ParseError) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	_, err = st.InsertRun(context.Background(), source, time.Now().UTC(), report, skipped)
	return err
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Look up attendance summaries",
		Args:  cobra.NoArgs,
		RunE:  runSearchCmd,
	}
	cmd.Flags().StringVar(&searchEmp, "emp", "", "employee code (exact match)")
	cmd.Flags().StringVar(&searchDate, "date", "", "date filter (YYYY-MM-DD)")
	cmd.Flags().StringVar(&searchJSON, "json", defaultJSONOut, "JSON export to search")
	cmd.Flags().BoolVar(&searchFromDB, "from-db", false, "search the run-history database instead of a JSON export")
	cmd.Flags().BoolVar(&searchPlain, "plain", false, "print a plain table instead of the interactive view")
	return cmd
}

func runSearchCmd(cmd *cobra.Command, _ []string) error {
	if searchDate != "" {
		if _, err := time.Parse("2006-01-02", searchDate); err != nil {
			return fmt.Errorf("invalid --date value %q: expected YYYY-MM-DD", searchDate)
		}
	}
	query := model.SearchQuery{EmpCode: searchEmp, Date: searchDate}

	records, err := loadSearchRecords(cmd)
	if err != nil {
		return err
	}

	if searchPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return search.RenderTable(cmd.OutOrStdout(), search.Filter(records, query))
	}

	ui := searchui.NewModel(records, query)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run search TUI: %w", err)
	}
	return nil
}

func loadSearchRecords(cmd *cobra.Command) ([]model.Record, error) {
	if !searchFromDB {
		return search.LoadJSON(searchJSON)
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	// Filters are applied again in memory; the store query just narrows the read.
	records, err := st.ListSummaries(cmd.Context(), model.SearchQuery{EmpCode: searchEmp, Date: searchDate})
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	return records, nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past processing runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().Int64Var(&historyRun, "run", 0, "show the skipped lines of one run")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if historyRun > 0 {
		entries, err := st.ListSkipped(cmd.Context(), historyRun)
		if err != nil {
			return fmt.Errorf("failed to list skipped lines: %w", err)
		}
		if len(entries) == 0 {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "No skipped lines recorded.")
			return err
		}
		for _, entry := range entries {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), entry); err != nil {
				return err
			}
		}
		return nil
	}

	runs, err := st.ListRuns(cmd.Context(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return err
	}
	for _, run := range runs {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d record(s)\t%d skipped\n",
			run.RunID,
			run.ProcessedAt.Format(time.RFC3339),
			run.Source,
			run.Records,
			run.Skipped,
		); err != nil {
			return err
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# shiftlog configuration
# Uncomment a value to enable it. CLI flags override config values.

[policy]
# shift-start = %q        # Shift start (HH:MM)
# shift-end = %q          # Shift end (HH:MM)
# late-entry-limit = %q   # First punch after this is a late entry
# early-exit-limit = %q   # Last punch before this is an early exit
# timezone-offset = %q    # Fixed UTC offset of the punch clock

[output]
# json = %q
# table = %q
# errors = %q
# format = %q             # xlsx or csv
`,
		defaultShiftStart,
		defaultShiftEnd,
		defaultLateLimit,
		defaultEarlyLimit,
		defaultTZOffset,
		defaultJSONOut,
		defaultTableOut,
		defaultErrorsOut,
		defaultFormat,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
