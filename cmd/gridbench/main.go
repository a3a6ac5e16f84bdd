// cmd/gridbench/main.go
//
// Entry point for the gridbench CLI.
//
//	gridbench generate   synthesize a fresh experiment suite (wipes the tree)
//	gridbench analyze    aggregate simulator results, print the report
//	gridbench report     write the markdown report and JSON summary to disk
//	gridbench view       browse the report interactively

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kearns/gridbench/internal/config"
	"github.com/kearns/gridbench/internal/logbook"
	"github.com/kearns/gridbench/internal/report"
	"github.com/kearns/gridbench/internal/results"
	"github.com/kearns/gridbench/internal/store"
	"github.com/kearns/gridbench/internal/store/sqlite"
	"github.com/kearns/gridbench/internal/suite"
	"github.com/kearns/gridbench/internal/tui"
)

const usage = `usage: gridbench <command> [flags]

commands:
  generate   synthesize environments for every grid size and iteration
             (destructive: the experiment tree is reset first)
  analyze    aggregate simulator results and print the comparison report
  report     write report.md and experiment_analysis.json to the report dir
  view       browse aggregated results in the terminal

run 'gridbench <command> -h' for command flags
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	switch os.Args[1] {
	case "generate":
		runGenerate(os.Args[2:])
	case "analyze":
		runAnalyze(os.Args[2:])
	case "report":
		runReport(os.Args[2:])
	case "view":
		runView(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

type commonFlags struct {
	configPath string
	root       string
}

func registerCommon(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{}
	fs.StringVar(&cf.configPath, "config", "gridbench.yaml", "path to the configuration file")
	fs.StringVar(&cf.root, "root", "", "experiment tree root (overrides the config)")
	return cf
}

func (cf *commonFlags) load() config.Config {
	cfg, err := config.Load(cf.configPath)
	if err != nil {
		die("load config: %v", err)
	}
	if cf.root != "" {
		cfg.Root = cf.root
	}
	return cfg
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cf := registerCommon(fs)
	repeat := fs.Int("repeat", 0, "environments per grid size (overrides the config)")
	writeConfig := fs.Bool("init-config", false, "write the default config file if absent")
	fs.Parse(args)

	if *writeConfig {
		if err := config.EnsureFile(cf.configPath); err != nil {
			die("write default config: %v", err)
		}
	}
	cfg := cf.load()
	if *repeat > 0 {
		cfg.Repeat = *repeat
	}

	st, err := store.NewFS(cfg.Root)
	if err != nil {
		die("open experiment tree: %v", err)
	}
	book := openLogbook(cfg)
	manifest, err := suite.New(cfg, st, suite.WithLogbook(book)).Generate()
	if err != nil {
		book.Error("generation failed: %v", err)
		die("generate suite: %v", err)
	}
	fmt.Printf("generated %d grid sizes x %d iterations under %s (run %s)\n",
		len(manifest.GridSizes), manifest.Repeat, cfg.Root, manifest.RunID)
	if manifest.Skipped > 0 {
		fmt.Printf("note: %d placements skipped (corners exhausted)\n", manifest.Skipped)
	}
}

func runAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cf := registerCommon(fs)
	dbPath := fs.String("db", "", "also persist runs and aggregates to this sqlite database")
	fs.Parse(args)
	cfg := cf.load()

	summary, records := analyze(cfg)
	if *dbPath != "" {
		persistDB(*dbPath, summary, records)
	}
	fmt.Print(report.NewRenderer(cfg).Styled(summary))
	fmt.Println()
}

func runReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	cf := registerCommon(fs)
	outDir := fs.String("out", "", "output directory (overrides the config report_dir)")
	fs.Parse(args)
	cfg := cf.load()
	if *outDir != "" {
		cfg.ReportDir = *outDir
	}

	summary, _ := analyze(cfg)
	renderer := report.NewRenderer(cfg)
	if err := os.MkdirAll(cfg.ReportDir, 0o755); err != nil {
		die("create report dir: %v", err)
	}
	mdPath := filepath.Join(cfg.ReportDir, "report.md")
	if err := os.WriteFile(mdPath, []byte(renderer.Markdown(summary)), 0o644); err != nil {
		die("write markdown report: %v", err)
	}
	jsonDoc, err := renderer.JSON(summary)
	if err != nil {
		die("render summary document: %v", err)
	}
	jsonPath := filepath.Join(cfg.ReportDir, "experiment_analysis.json")
	if err := os.WriteFile(jsonPath, jsonDoc, 0o644); err != nil {
		die("write summary document: %v", err)
	}
	fmt.Printf("wrote %s and %s\n", mdPath, jsonPath)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	cf := registerCommon(fs)
	fs.Parse(args)
	cfg := cf.load()

	summary, _ := analyze(cfg)
	if err := tui.Run(cfg, summary, openLogbook(cfg)); err != nil {
		die("%v", err)
	}
}

func analyze(cfg config.Config) (results.Summary, []results.RunRecord) {
	st, err := store.NewFS(cfg.Root)
	if err != nil {
		die("open experiment tree: %v", err)
	}
	summary, records, err := results.NewAggregator(cfg, st).Analyze()
	if err != nil {
		die("analyze results: %v", err)
	}
	return summary, records
}

func persistDB(path string, summary results.Summary, records []results.RunRecord) {
	db, err := sqlite.Open(path)
	if err != nil {
		die("open results database: %v", err)
	}
	defer db.Close()
	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		die("migrate results database: %v", err)
	}
	if err := db.SaveRuns(ctx, records); err != nil {
		die("save run records: %v", err)
	}
	if err := db.SaveSummary(ctx, summary); err != nil {
		die("save aggregates: %v", err)
	}
}

// openLogbook places the log in the report directory, which survives the
// destructive reset of the experiment tree.
func openLogbook(cfg config.Config) *logbook.Logbook {
	book, err := logbook.New(filepath.Join(cfg.ReportDir, logbook.FileName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: no logbook: %v\n", err)
		return nil
	}
	return book
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "gridbench: "+format+"\n", args...)
	os.Exit(1)
}
