package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/pickup-planner/internal/cluster"
	"github.com/sells-group/pickup-planner/internal/ingest"
	"github.com/sells-group/pickup-planner/internal/names"
	"github.com/sells-group/pickup-planner/internal/render"
	"github.com/sells-group/pickup-planner/pkg/geocode"
)

var (
	planAddresses  string
	planTeams      int
	planSeed       int64
	planMaxPerTeam int
	planOutputDir  string
	planCachePath  string
	planShapefile  string
	planNoMap      bool
	planMapWidth   int
	planMapHeight  int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Partition an address roster into balanced pickup teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		runID := uuid.NewString()
		log := zap.L().With(zap.String("run_id", runID))

		// Config supplies defaults; explicit flags win.
		if !cmd.Flags().Changed("seed") {
			planSeed = cfg.Plan.Seed
		}
		if !cmd.Flags().Changed("max-per-team") {
			planMaxPerTeam = cfg.Plan.MaxPerTeam
		}
		if !cmd.Flags().Changed("output-dir") {
			planOutputDir = cfg.Plan.OutputDir
		}

		if planMaxPerTeam < 1 {
			return eris.Errorf("plan: --max-per-team must be at least 1, got %d", planMaxPerTeam)
		}

		roster, err := ingest.FromFile(planAddresses)
		if err != nil {
			return err
		}
		log.Info("plan: roster loaded",
			zap.String("file", planAddresses),
			zap.Int("addresses", len(roster)),
		)

		// K-means does not balance group sizes, so running close to the
		// theoretical capacity risks an unrepairable partition. Keep a 20%
		// buffer and fail early with advice instead.
		if float64(len(roster)) >= float64(planTeams*planMaxPerTeam)*0.8 {
			return eris.Errorf(
				"plan: %d addresses with %d teams at %d max per team exceeds safe capacity; raise --teams or --max-per-team",
				len(roster), planTeams, planMaxPerTeam)
		}

		client, closeCache := buildGeocoder(ctx)
		defer closeCache()

		resolved, err := client.Resolve(ctx, roster)
		if err != nil {
			return err
		}

		planner := cluster.NewPlanner(cluster.Thresholds{
			PairOutlierKm:   cfg.Cluster.PairOutlierKm,
			GlobalOutlierKm: cfg.Cluster.GlobalOutlierKm,
			SpreadWarnKm:    cfg.Cluster.SpreadWarnKm,
		})

		result, err := planner.Plan(cluster.Request{
			Addresses: resolved,
			Teams:     planTeams,
			Names:     names.Teams(planTeams),
			Capacity:  planMaxPerTeam,
			Seed:      planSeed,
		})
		if err != nil {
			return err
		}

		styler := render.NewStyler()
		styler.Table(os.Stdout, result)
		if !planNoMap {
			styler.Map(os.Stdout, result, render.MapOptions{Width: planMapWidth, Height: planMapHeight})
		}

		path, err := render.ExportText(planOutputDir, result, runID, planMaxPerTeam, time.Now())
		if err != nil {
			return err
		}
		log.Info("plan: complete", zap.String("export", path))

		if planShapefile != "" {
			if err := render.ExportShapefile(planShapefile, result); err != nil {
				return err
			}
		}

		return nil
	},
}

// buildGeocoder assembles the cache-fronted Nominatim client. A cache that
// fails to open is logged and skipped rather than blocking the run.
func buildGeocoder(ctx context.Context) (*geocode.Client, func()) {
	provider := geocode.NewNominatim(cfg.Geocode.UserAgent,
		geocode.WithBaseURL(cfg.Geocode.BaseURL),
		geocode.WithRateLimit(rate.NewLimiter(rate.Limit(cfg.Geocode.RequestsPerSec), 1)),
	)

	cachePath := planCachePath
	if cachePath == "" {
		cachePath = cfg.Geocode.CachePath
	}

	cache, err := geocode.OpenCache(cachePath)
	if err == nil {
		err = cache.Migrate(ctx)
	}
	if err != nil {
		zap.L().Warn("plan: geocode cache unavailable, continuing without it",
			zap.String("path", cachePath),
			zap.Error(err),
		)
		return geocode.NewClient(provider, nil), func() {}
	}

	return geocode.NewClient(provider, cache), func() { _ = cache.Close() }
}

func init() {
	planCmd.Flags().StringVarP(&planAddresses, "addresses", "a", "", "path to CSV or XLSX roster with an 'address' column")
	planCmd.Flags().IntVarP(&planTeams, "teams", "t", 0, "number of teams to create")
	planCmd.Flags().Int64VarP(&planSeed, "seed", "s", 42, "random seed for reproducible assignments")
	planCmd.Flags().IntVarP(&planMaxPerTeam, "max-per-team", "m", 8, "maximum addresses per team")
	planCmd.Flags().StringVarP(&planOutputDir, "output-dir", "o", ".", "directory for the results file")
	planCmd.Flags().StringVarP(&planCachePath, "cache", "c", "", "geocode cache path (defaults to config)")
	planCmd.Flags().StringVar(&planShapefile, "shapefile", "", "also export assignments as a point shapefile at this path")
	planCmd.Flags().BoolVar(&planNoMap, "no-map", false, "skip the ASCII map")
	planCmd.Flags().IntVar(&planMapWidth, "map-width", 100, "map width in terminal columns")
	planCmd.Flags().IntVar(&planMapHeight, "map-height", 30, "map height in terminal rows")

	_ = planCmd.MarkFlagRequired("addresses")
	_ = planCmd.MarkFlagRequired("teams")

	rootCmd.AddCommand(planCmd)
}
