package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/coregx/cmpnet"
	"github.com/coregx/cmpnet/oracle"
	"github.com/coregx/cmpnet/rules"
	"github.com/coregx/cmpnet/search"
	"github.com/coregx/cmpnet/space"
)

// progressEvery is the node interval between progress samples; the
// --progress interval throttles them further.
const progressEvery = 1024

// report is the --json output of the search command.
type report struct {
	RunID           string   `json:"run_id"`
	Rule            string   `json:"rule"`
	Wires           int      `json:"wires"`
	MaxSwaps        int      `json:"max_swaps"`
	Start           string   `json:"start,omitempty"`
	Found           bool     `json:"found"`
	Length          int      `json:"length,omitempty"`
	Path            string   `json:"path,omitempty"`
	Pairs           [][2]int `json:"pairs,omitempty"`
	Verified        bool     `json:"verified,omitempty"`
	DistinctOutputs uint64   `json:"distinct_outputs,omitempty"`
	Nodes           int64    `json:"nodes"`
	Passes          int      `json:"passes"`
	TableEntries    int      `json:"table_entries"`
	HitRate         float64  `json:"hit_rate"`
	ElapsedMS       float64  `json:"elapsed_ms"`
}

func newSearchCmd() *cobra.Command {
	var (
		configPath string
		flags      = defaultFileConfig()
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find a shortest network for a rule",
		Example: `  cmpnet search --rule sorted --wires 5 --max 10
  cmpnet search --rule conway --max 19 --start "0-4,1-5,2-6,3-7,0-2,1-3,4-6,5-7,2-4,3-5"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := defaultFileConfig()
			if configPath != "" {
				var err error
				if cfg, err = loadFileConfig(configPath); err != nil {
					return err
				}
			}
			cfg.overlay(cmd.Flags(), &flags)
			return runSearch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}

	flags.bindFlags(cmd.Flags())
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file with search settings")
	return cmd
}

func runSearch(ctx context.Context, stdout, stderr io.Writer, cfg FileConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Rule == "" {
		return fmt.Errorf("--rule is required")
	}
	if cfg.Max < 0 {
		return fmt.Errorf("--max is required and must be >= 0")
	}

	rule, err := rules.Lookup(cfg.Rule)
	if err != nil {
		return err
	}
	wires, err := rule.WiresFor(cfg.Wires)
	if err != nil {
		return err
	}
	prefix, err := space.ParsePath(cfg.Start)
	if err != nil {
		return err
	}
	strategy, err := search.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	logger := cmpnet.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	sc := search.DefaultConfig().
		WithStrategy(strategy).
		WithWorkers(cfg.Workers).
		WithMaxNodes(cfg.MaxNodes).
		WithMaxTableEntries(cfg.MaxTableEntries)
	sc.ProgressEvery = progressEvery

	opts := []cmpnet.Option{
		cmpnet.WithLogger(logger),
		cmpnet.WithSearchConfig(sc),
	}
	if cfg.Progress > 0 {
		// Progress is reported at info level, so make sure it is visible.
		if level > slog.LevelInfo {
			logger = cmpnet.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
			opts[0] = cmpnet.WithLogger(logger)
		}
		opts = append(opts, cmpnet.WithProgress(func(p search.Progress) {
			logger.LogProgress(ctx, p)
		}, cfg.Progress))
	}

	syn, err := cmpnet.New(wires, rule.Predicate, opts...)
	if err != nil {
		return err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	res, err := syn.Find(ctx, prefix, cfg.Max)
	if err != nil {
		return err
	}

	rep := report{
		RunID:        res.RunID,
		Rule:         rule.Name,
		Wires:        wires,
		MaxSwaps:     cfg.Max,
		Start:        prefix.String(),
		Found:        res.Found,
		Nodes:        res.Stats.Nodes,
		Passes:       res.Stats.Passes,
		TableEntries: res.Stats.Table.Entries,
		HitRate:      res.Stats.Table.HitRate(),
		ElapsedMS:    float64(res.Elapsed.Microseconds()) / 1000,
	}
	if res.Found {
		rep.Length = len(res.Path)
		rep.Path = res.Path.String()
		for _, p := range res.Path {
			rep.Pairs = append(rep.Pairs, [2]int{p.I, p.J})
		}
		if err := syn.Verify(res.Path); err != nil {
			return fmt.Errorf("network failed verification: %w", err)
		}
		rep.Verified = true
		rep.DistinctOutputs = oracle.Images(wires, res.Path).GetCardinality()
	}

	if cfg.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		printReport(stdout, rep)
	}

	if !res.Found {
		return &exitStatus{code: exitNotFound}
	}
	return nil
}

func printReport(w io.Writer, r report) {
	if r.Found {
		fmt.Fprintf(w, "found %d swaps: %s\n", r.Length, r.Path)
		fmt.Fprintf(w, "distinct outputs: %d\n", r.DistinctOutputs)
	} else {
		fmt.Fprintf(w, "no network within %d swaps\n", r.MaxSwaps)
	}
	fmt.Fprintf(w, "nodes: %d  passes: %d  table: %d entries, %.1f%% hits  time: %.1fms\n",
		r.Nodes, r.Passes, r.TableEntries, 100*r.HitRate, r.ElapsedMS)
}
