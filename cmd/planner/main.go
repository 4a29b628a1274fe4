package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/mealchain/internal/cache"
	"github.com/andresuchdata/mealchain/internal/config"
	"github.com/andresuchdata/mealchain/internal/domain"
	"github.com/andresuchdata/mealchain/internal/forecast"
	"github.com/andresuchdata/mealchain/internal/repository"
	"github.com/andresuchdata/mealchain/internal/repository/postgres"
	"github.com/andresuchdata/mealchain/internal/service"
	"github.com/andresuchdata/mealchain/internal/storage"
	"github.com/andresuchdata/mealchain/pkg/logger"
)

func main() {
	cfg := config.Load()

	// stdout carries the JSON result
	logger.Setup(os.Stderr, cfg.Log.Format)
	logger.SetLevel(cfg.Log.Level)

	app := &cli.App{
		Name:  "planner",
		Usage: "Run stock forecasts and recipe scaling previews from the command line",
		Commands: []*cli.Command{
			{
				Name:  "forecast",
				Usage: "Forecast consumption and reorders for active items",
				Flags: []cli.Flag{
					newDBURLFlag(cfg),
					&cli.IntFlag{Name: "period", Usage: "Prediction period in days (0 uses the configured default)"},
					&cli.StringSliceFlag{Name: "items", Usage: "Item IDs to forecast (default: all active items)"},
					&cli.BoolFlag{Name: "no-seasonality", Usage: "Disable seasonal adjustment"},
					&cli.Float64Flag{Name: "threshold", Usage: "Low stock alert threshold, 0..1", Value: -1},
				},
				Action: func(c *cli.Context) error {
					return runForecast(c, cfg)
				},
			},
			{
				Name:  "scale",
				Usage: "Preview material requirements for a recipe at a target yield",
				Flags: []cli.Flag{
					newDBURLFlag(cfg),
					&cli.StringFlag{Name: "recipe", Usage: "Recipe ID", Required: true},
					&cli.IntFlag{Name: "portions", Usage: "Target portions", Required: true},
				},
				Action: runScale,
			},
			{
				Name:  "profiles",
				Usage: "List seasonal profiles stored in the bucket",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "prefix", Value: "seasonality/"},
				},
				Action: func(c *cli.Context) error {
					return runListProfiles(c, cfg)
				},
			},
			{
				Name:      "publish-profile",
				Usage:     "Validate a seasonal profile TOML file and upload it to the bucket",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Usage: "Object key (default: the configured profile key)", Value: cfg.Forecast.SeasonalProfileKey},
				},
				Action: func(c *cli.Context) error {
					return runPublishProfile(c, cfg)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("planner failed")
	}
}

func newDBURLFlag(cfg *config.Config) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection URL",
		EnvVars: []string{"DATABASE_URL"},
		Value:   cfg.Database.URL,
	}
}

func runForecast(c *cli.Context, cfg *config.Config) error {
	db, err := postgres.Open(c.Context, c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := openStorage(cfg, false)
	if err != nil {
		return err
	}

	engine, err := service.NewForecastEngine(c.Context, cfg.Forecast, store)
	if err != nil {
		return err
	}

	svc := service.NewForecastService(
		repository.NewLedgerRepository(db.DB),
		repository.NewInventoryRepository(db.DB),
		engine,
		cache.NewNoopForecastCache(),
		cfg.Forecast,
	)

	req := domain.ForecastRequest{
		PredictionPeriod: c.Int("period"),
		TargetItems:      splitItems(c.StringSlice("items")),
	}
	if c.IsSet("no-seasonality") {
		include := !c.Bool("no-seasonality")
		req.IncludeSeasonality = &include
	}
	if c.IsSet("threshold") {
		threshold := c.Float64("threshold")
		req.AlertThreshold = &threshold
	}

	resp, err := svc.Run(c.Context, req)
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, resp)
}

func runScale(c *cli.Context) error {
	db, err := postgres.Open(c.Context, c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	svc := service.NewScalingService(
		repository.NewRecipeRepository(db.DB),
		repository.NewInventoryRepository(db.DB),
	)

	resp, err := svc.Scale(c.Context, domain.ScalingRequest{
		RecipeID:       c.String("recipe"),
		TargetPortions: c.Int("portions"),
	})
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, resp)
}

func runListProfiles(c *cli.Context, cfg *config.Config) error {
	store, err := openStorage(cfg, true)
	if err != nil {
		return err
	}

	objects, err := store.ListObjects(c.Context, c.String("prefix"))
	if err != nil {
		return err
	}
	for _, obj := range objects {
		fmt.Fprintf(c.App.Writer, "%s\t%d\n", obj.Key, obj.Size)
	}
	return nil
}

func runPublishProfile(c *cli.Context, cfg *config.Config) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("profile file is required")
	}
	key := c.String("key")
	if key == "" {
		return fmt.Errorf("object key is required (--key or FORECAST_SEASONAL_PROFILE_KEY)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	profile, err := forecast.LoadSeasonalProfileBytes(data)
	if err != nil {
		return err
	}

	store, err := openStorage(cfg, true)
	if err != nil {
		return err
	}
	if err := store.UploadObject(c.Context, key, data); err != nil {
		return err
	}

	log.Info().Str("key", key).Strs("categories", profile.Categories()).Msg("seasonal profile published")
	return nil
}

// openStorage returns nil when storage is disabled and not required.
func openStorage(cfg *config.Config, required bool) (storage.ObjectStorage, error) {
	if !cfg.Storage.Enabled {
		if required {
			return nil, fmt.Errorf("object storage is disabled (set STORAGE_ENABLED=true)")
		}
		return nil, nil
	}
	client, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// splitItems accepts both repeated flags and comma separated lists.
func splitItems(values []string) []string {
	var ids []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
