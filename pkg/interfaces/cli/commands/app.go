package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vsinha/pcp/pkg/application/services/lotsizing"
	"github.com/vsinha/pcp/pkg/application/services/orchestration"
	"github.com/vsinha/pcp/pkg/application/services/planning"
	"github.com/vsinha/pcp/pkg/infrastructure/catalog"
	"github.com/vsinha/pcp/pkg/infrastructure/config"
	"github.com/vsinha/pcp/pkg/infrastructure/events"
	"github.com/vsinha/pcp/pkg/infrastructure/logging"
	"github.com/vsinha/pcp/pkg/interfaces/cli/output"
)

// Options are the flags shared by every subcommand
type Options struct {
	ConfigFile string
	DataDir    string
	Format     string
	OutputFile string
	Verbose    bool
}

func (o *Options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", "", "Path to YAML config file (optional)")
	fs.StringVar(&o.DataDir, "data", "", "Directory with CSV data files (default: built-in dataset)")
	fs.StringVar(&o.Format, "format", output.FormatText, "Output format: text, json, csv, xlsx")
	fs.StringVar(&o.OutputFile, "output", "", "Write results to this file instead of stdout")
	fs.BoolVar(&o.Verbose, "verbose", false, "Enable debug logging")
}

// Environment is everything a subcommand needs once flags are parsed
type Environment struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Service *orchestration.PlanningService
	Journal *events.InMemoryEventStore
}

type command struct {
	summary string
	run     func(ctx context.Context, a *App, args []string) error
}

// App dispatches subcommands
type App struct {
	stdout   io.Writer
	stderr   io.Writer
	commands map[string]command
}

// NewApp creates the CLI writing results to stdout and diagnostics to stderr
func NewApp(stdout, stderr io.Writer) *App {
	return &App{
		stdout: stdout,
		stderr: stderr,
		commands: map[string]command{
			"catalog": {"List SKUs and machines", runCatalog},
			"bom":     {"Explode and cost a SKU's bill of materials", runBOM},
			"stock":   {"Classify stock levels and coverage", runStock},
			"eoq":     {"Compute economic order quantity", runEOQ},
			"pmp":     {"Reconcile the master plan under a scenario", runPMP},
			"orders":  {"Cost production orders and machine load", runOrders},
			"report":  {"Full planning snapshot", runReport},
			"serve":   {"Serve the read-only planning API", runServe},
		},
	}
}

// Run executes the subcommand named by args[0]
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "-help" {
		a.usage()
		return nil
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		a.usage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
	return cmd.run(ctx, a, args[1:])
}

func (a *App) usage() {
	fmt.Fprintln(a.stderr, "Usage: pcp <command> [flags]")
	fmt.Fprintln(a.stderr)
	fmt.Fprintln(a.stderr, "Commands:")
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.stderr, "  %-8s %s\n", name, a.commands[name].summary)
	}
	fmt.Fprintln(a.stderr)
	fmt.Fprintln(a.stderr, "Run 'pcp <command> -h' for command flags.")
}

func (a *App) flagSet(name string, opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	opts.register(fs)
	return fs
}

// setup loads config, logging and the catalog, then wires the planning service
func (a *App) setup(opts Options) (*Environment, error) {
	if err := output.ValidateFormat(opts.Format); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.DataDir != "" {
		cfg.Data.Dir = opts.DataDir
	}

	level := cfg.Log.Level
	if opts.Verbose {
		level = "debug"
	}
	logger, err := logging.NewWithOutput(level, cfg.Log.Format, a.stderr)
	if err != nil {
		return nil, err
	}

	c, err := catalog.Bootstrap(cfg.Data.Dir, logger)
	if err != nil {
		return nil, err
	}

	ssPolicy, err := lotsizing.PolicyByName(cfg.LotSizing.SafetyStockPolicy, cfg.LotSizing.SafetyStockFraction,
		cfg.LotSizing.ServiceLevelZ, cfg.LotSizing.DemandStdDev, cfg.LotSizing.LeadTimePeriods)
	if err != nil {
		return nil, err
	}
	statusPolicy, err := planning.StatusPolicyByName(cfg.Planning.StatusPolicy)
	if err != nil {
		return nil, err
	}

	journal := events.NewInMemoryEventStore(logger)
	if err := (events.LogHandler{Logger: logger}).Subscribe(journal); err != nil {
		return nil, err
	}

	svc, err := orchestration.NewPlanningService(orchestration.Repositories{
		SKUs:     c.SKUs,
		Machines: c.Machines,
		BOM:      c.BOM,
		Stock:    c.Stock,
		Plan:     c.Plan,
	}, orchestration.Options{
		CriticalRatio:     cfg.Inventory.CriticalRatio,
		SafetyStockPolicy: ssPolicy,
		StatusPolicy:      statusPolicy,
		Scenarios:         cfg.Planning.Scenarios,
		CostCacheEntries:  cfg.Cache.CostEntries,
		Journal:           journal,
		Logger:            logger,
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"data":          cfg.Data.Dir,
		"status_policy": statusPolicy.Name(),
		"safety_stock":  ssPolicy.Name(),
	}).Debug("planning service ready")
	return &Environment{Config: cfg, Logger: logger, Service: svc, Journal: journal}, nil
}

// emit writes a report to the output file, or to stdout
func (a *App) emit(env *Environment, opts Options, report output.Report) error {
	// let journal subscribers finish logging before results are printed
	env.Journal.Flush()

	if opts.OutputFile == "" {
		if opts.Format == output.FormatXLSX {
			return fmt.Errorf("xlsx output requires -output")
		}
		return output.Write(a.stdout, opts.Format, report)
	}
	if err := output.WriteFile(opts.OutputFile, opts.Format, report); err != nil {
		return err
	}
	fmt.Fprintf(a.stderr, "Results saved to: %s\n", opts.OutputFile)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
