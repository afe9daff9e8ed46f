package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	naturaldate "github.com/tj/go-naturaldate"
	"go.uber.org/zap"

	"github.com/effortscope/effortscope/internal/analytics"
	"github.com/effortscope/effortscope/internal/config"
	"github.com/effortscope/effortscope/internal/loader"
	"github.com/effortscope/effortscope/internal/mapping"
	"github.com/effortscope/effortscope/internal/render"
	"github.com/effortscope/effortscope/internal/store"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "effortscope",
	Short: "Team enablement and role profile analytics from time-tracking logs",
	Long:  "effortscope ingests timestamped activity records and derives team enablement rollups and personal role profiles mined from task comments.",
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a time-tracking CSV export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var importCalendarCmd = &cobra.Command{
	Use:   "import-calendar <url-or-file>",
	Short: "Import calendar events as activity records",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportCalendar,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show enablement hour rollups by team and person",
	RunE:  runReport,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Generate a personal role profile from task comments",
	RunE:  runProfile,
}

var unmappedCmd = &cobra.Command{
	Use:   "unmapped",
	Short: "List actors on enablement records missing from the team mapping",
	RunE:  runUnmapped,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open config file in your editor",
	RunE:  runConfig,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	importCalendarCmd.Flags().String("actor", "", "Actor name assigned to imported events (default from config)")
	importCalendarCmd.Flags().String("category", "", "Category assigned to imported events (default from config)")
	importCalendarCmd.Flags().String("from", "", "Ignore events starting before this date")
	importCalendarCmd.Flags().String("to", "", "Ignore events starting after this date")

	for _, cmd := range []*cobra.Command{reportCmd, profileCmd} {
		cmd.Flags().String("from", "", "Start of the date window (ISO date or natural language)")
		cmd.Flags().String("to", "", "End of the date window (ISO date or natural language)")
		cmd.Flags().String("range", "", "Preset window: last-30-days, last-90-days, last-6-months, this-year")
		cmd.Flags().StringP("output", "o", "", "Write the plain-text report to a file")
	}
	reportCmd.Flags().Bool("weekly", false, "Show the weekly breakdown instead of monthly")
	profileCmd.Flags().String("actor", "", "Restrict the profile to one actor")
	profileCmd.Flags().Int("top", 0, "Number of top keywords in the summary (default from config)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(importCalendarCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(unmappedCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func openStore(cfg *config.Config) (*store.DB, error) {
	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

func loadResolver(cfg *config.Config) (*mapping.Resolver, error) {
	path, err := cfg.MappingPath()
	if err != nil {
		return nil, err
	}
	m, err := mapping.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading team mapping: %w", err)
	}
	return mapping.NewResolver(m), nil
}

// loadAnalyzer assembles the full pipeline: stored records, annotated by
// the team resolver, wrapped in an immutable analyzer.
func loadAnalyzer(cfg *config.Config) (*analytics.Analyzer, *mapping.Resolver, error) {
	db, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	records, err := db.ListRecords()
	if err != nil {
		return nil, nil, fmt.Errorf("loading records: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no records imported yet — run 'effortscope import' first")
	}

	resolver, err := loadResolver(cfg)
	if err != nil {
		return nil, nil, err
	}

	return analytics.NewAnalyzer(resolver.Annotate(records)), resolver, nil
}

// parseWhen accepts an ISO date or a natural-language expression like
// "last month".
func parseWhen(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := naturaldate.Parse(s, time.Now(), naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return t, nil
}

func window(cmd *cobra.Command) (time.Time, time.Time, error) {
	preset, _ := cmd.Flags().GetString("range")
	if preset != "" {
		now := time.Now()
		switch preset {
		case "last-30-days":
			return now.AddDate(0, 0, -30), time.Time{}, nil
		case "last-90-days":
			return now.AddDate(0, 0, -90), time.Time{}, nil
		case "last-6-months":
			return now.AddDate(0, -6, 0), time.Time{}, nil
		case "this-year":
			return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), time.Time{}, nil
		default:
			return time.Time{}, time.Time{}, fmt.Errorf("unknown range preset %q", preset)
		}
	}

	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	from, err := parseWhen(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseWhen(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func writeOutput(cmd *cobra.Command, text string) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Printf("Report written to %s\n", path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	records, err := loader.ReadCSV(args[0], logger)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	added := 0
	for _, r := range records {
		inserted, err := db.InsertRecord(r, "csv")
		if err != nil {
			return err
		}
		if inserted {
			added++
		}
	}

	total, err := db.CountRecords()
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d new records (%d parsed, %d total in store)\n", added, len(records), total)
	return nil
}

func runImportCalendar(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	actor, _ := cmd.Flags().GetString("actor")
	if actor == "" {
		actor = cfg.Calendar.Actor
	}
	category, _ := cmd.Flags().GetString("category")
	if category == "" {
		category = cfg.Calendar.Category
	}

	from, to, err := window(cmd)
	if err != nil {
		return err
	}

	records, err := loader.ReadCalendar(context.Background(), args[0], actor, category, from, to, logger)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	added := 0
	for _, r := range records {
		inserted, err := db.InsertRecord(r, "calendar")
		if err != nil {
			return err
		}
		if inserted {
			added++
		}
	}

	fmt.Printf("Imported %d new records from calendar (%d events)\n", added, len(records))
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	analyzer, _, err := loadAnalyzer(cfg)
	if err != nil {
		return err
	}

	from, to, err := window(cmd)
	if err != nil {
		return err
	}

	fmt.Print(render.TeamTable(analyzer.HoursByTeam(from, to)))
	fmt.Println()
	fmt.Print(render.PersonTable(analyzer.HoursByPerson(from, to)))
	fmt.Println()

	weekly, _ := cmd.Flags().GetBool("weekly")
	if weekly {
		rows := analytics.FilterPeriods(analyzer.WeeklyHoursByTeam(), weekBound(from), weekBound(to))
		fmt.Print(render.PeriodTable("Weekly enablement hours", rows))
	} else {
		rows := analytics.FilterPeriods(analyzer.MonthlyHoursByTeam(), monthBound(from), monthBound(to))
		fmt.Print(render.PeriodTable("Monthly enablement hours", rows))
	}

	return writeOutput(cmd, analyzer.EnablementReport(from, to))
}

func monthBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01")
}

func weekBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	analyzer, _, err := loadAnalyzer(cfg)
	if err != nil {
		return err
	}

	from, to, err := window(cmd)
	if err != nil {
		return err
	}

	actor, _ := cmd.Flags().GetString("actor")
	profile, err := analyzer.BuildProfileMinLength(actor, from, to, cfg.Report.KeywordMinLength)
	if err != nil {
		return err
	}

	topN, _ := cmd.Flags().GetInt("top")
	if topN <= 0 {
		topN = cfg.Report.TopKeywords
	}

	summary := profile.Summary(topN)
	fmt.Print(summary)
	return writeOutput(cmd, summary)
}

func runUnmapped(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	analyzer, resolver, err := loadAnalyzer(cfg)
	if err != nil {
		return err
	}

	actors := resolver.Unmapped(analyzer.Records())
	if len(actors) == 0 {
		fmt.Println("All actors on enablement records are mapped to teams.")
		return nil
	}

	fmt.Printf("%d actors on enablement records have no team:\n\n", len(actors))
	for _, actor := range actors {
		fmt.Printf("  %s\n", actor)
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		data := fmt.Sprintf(`[storage]
data_dir = "%s"

[mapping]
path = "%s"

[report]
top_keywords = %d
keyword_min_length = %d

[calendar]
actor = "%s"
category = "%s"
`,
			cfg.Storage.DataDir,
			cfg.Mapping.Path,
			cfg.Report.TopKeywords,
			cfg.Report.KeywordMinLength,
			cfg.Calendar.Actor,
			cfg.Calendar.Category,
		)
		if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Opening %s with %s...\n", configPath, editor)

	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}
	process, err := os.StartProcess(editor, []string{editor, configPath}, &proc)
	if err != nil {
		fmt.Printf("Could not open editor. Config file is at: %s\n", configPath)
		return nil
	}
	_, err = process.Wait()
	return err
}
