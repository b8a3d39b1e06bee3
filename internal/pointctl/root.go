// Package pointctl implements the pointctl command line over chart files.
package pointctl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/pointchart/internal/adapters/repository"
	service "github.com/okian/pointchart/internal/app"
	"github.com/okian/pointchart/internal/config"
	"github.com/okian/pointchart/pkg/logger"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// ErrUsage marks invalid flags or arguments.
var ErrUsage = errors.New("usage")

// cli carries the state shared by every subcommand.
type cli struct {
	chartsDir string
	output    string
	strict    bool
	verbose   bool

	cfg *config.Config
	svc *service.Service
}

// NewRootCommand builds the pointctl command tree.
func NewRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "pointctl",
		Short: "Inspect point charts and price stays from the command line",
		Long: `pointctl reads <resort>_<year>.json|.yaml chart files and prices stays,
renders heat maps and evaluates what-if booking scenarios against them.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVar(&c.chartsDir, "charts-dir", "", "chart directory (default from POINTCHART_CHARTS_DIR or ./charts)")
	root.PersistentFlags().StringVarP(&c.output, "output", "o", OutputText, "output format: text or json")
	root.PersistentFlags().BoolVar(&c.strict, "strict", false, "fail on the first invalid chart file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log chart loading to stderr")

	root.AddCommand(
		c.chartsCommand(),
		c.roomsCommand(),
		c.daysCommand(),
		c.heatmapCommand(),
		c.stayCommand(),
		c.compareCommand(),
		c.scenarioCommand(),
		c.exploreCommand(),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// setup loads configuration and charts before any subcommand runs.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if c.output != OutputText && c.output != OutputJSON {
		return fmt.Errorf("%w: unknown output %q", ErrUsage, c.output)
	}

	level := "warn"
	if c.verbose {
		level = "debug"
	}
	if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr())); err != nil {
		return err
	}
	if err := logger.SetLevelString(level); err != nil {
		return err
	}
	log := logger.Named("pointctl")

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if c.chartsDir != "" {
		cfg.ChartsDir = c.chartsDir
	}
	c.cfg = cfg

	store := repository.NewFileStore(cfg.ChartsDir,
		repository.WithLogger(log),
		repository.WithStrict(c.strict),
	)
	if err := store.Load(ctx); err != nil {
		if c.strict || store.Count(ctx) == 0 {
			return err
		}
		log.Warn(ctx, "some chart files were skipped", logger.Error(err))
	}
	c.svc = service.New(
		service.WithStore(store),
		service.WithCatalog(cfg.Catalog()),
		service.WithEligibility(cfg.Eligibility()),
		service.WithMaxNights(cfg.MaxStayNights),
		service.WithMaxBookings(cfg.MaxScenarioBookings),
		service.WithLogger(log),
	)
	return nil
}

// render writes v as JSON, or calls text for the text format.
func (c *cli) render(w io.Writer, v any, text func(io.Writer) error) error {
	if c.output == OutputJSON {
		return writeJSON(w, v)
	}
	return text(w)
}
