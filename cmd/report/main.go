// Command report writes the PDF expense report of the stored ledger.
//
//	report -out ./reports -group -from 2026-10-01 -to 2026-10-31 -title "October"
//
// Settings not given as flags come from the environment (see config).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/warp/expense-tracker/config"
	"github.com/warp/expense-tracker/format"
	"github.com/warp/expense-tracker/ledger"
	"github.com/warp/expense-tracker/logging"
	"github.com/warp/expense-tracker/report"
	"github.com/warp/expense-tracker/session"
	"github.com/warp/expense-tracker/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "report: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	envFile := flag.String("env", ".env", "dotenv file to load")
	dbPath := flag.String("db", "", "SQLite database path (overrides DB_PATH)")
	outDir := flag.String("out", "", "output directory (overrides REPORT_DIR)")
	title := flag.String("title", "", "report title (overrides REPORT_TITLE)")
	group := flag.Bool("group", false, "include the category breakdown")
	from := flag.String("from", "", "first day, YYYY-MM-DD")
	to := flag.String("to", "", "last day, YYYY-MM-DD")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *outDir != "" {
		cfg.ReportDir = *outDir
	}
	if *title != "" {
		cfg.ReportTitle = *title
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	opts := report.Options{
		Title:           cfg.ReportTitle,
		GroupByCategory: *group,
		Company:         report.CompanyInfo{Name: cfg.CompanyName},
		Location:        loc,
	}
	if opts.DateRange, err = parseRange(*from, *to, loc); err != nil {
		return err
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	persister := ledger.NewPersister(store, logger)
	persister.Key = cfg.StorageKey
	sess := session.Open(ctx, persister, session.WithLogger(logger))

	res, err := sess.ExportReport(cfg.ReportDir, opts)
	if errors.Is(err, ledger.ErrNotInitialized) {
		return errors.New("no ledger stored yet: set an initial balance first")
	}
	if err != nil {
		return err
	}

	fmt.Printf("Report saved to %s\n", res.Path)
	fmt.Printf("  transactions:   %d\n", res.TransactionCount)
	fmt.Printf("  total income:   %s\n", format.FormatCurrency(res.TotalIncome))
	fmt.Printf("  total expenses: %s\n", format.FormatCurrency(res.TotalExpenses))
	fmt.Printf("  net:            %s\n", format.FormatCurrency(res.Net))
	fmt.Printf("  pages:          %d\n", res.Pages)
	if at, ok, err := store.UpdatedAt(ctx, cfg.StorageKey); err == nil && ok {
		fmt.Printf("  ledger saved:   %s\n", format.FormatDate(at.In(loc)))
	}
	return nil
}

func parseRange(from, to string, loc *time.Location) (*report.DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, errors.New("-from and -to must be given together")
	}
	f, err := format.ParseISODay(from, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid -from: %w", err)
	}
	t, err := format.ParseISODay(to, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid -to: %w", err)
	}
	dr := &report.DateRange{From: f, To: t}
	if err := dr.Validate(); err != nil {
		return nil, err
	}
	return dr, nil
}
