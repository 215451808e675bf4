package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beanlog/beanlog/internal/naver"
	"github.com/beanlog/beanlog/pkg/beanlog"
	"github.com/beanlog/beanlog/pkg/beanlog/queue"
	"github.com/beanlog/beanlog/pkg/beanlog/store/sqlite"
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Fill coordinates for cafés that have an address but no coordinates",
	Long: `Fill coordinates for cafés that have an address but no coordinates.

Cafés already carrying coordinates are left alone; a provider "no
result" is logged and skipped.

Examples:
  beanlog geocode --config beanlog.yaml`,
	RunE: runGeocode,
}

func runGeocode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateGeocode(); err != nil {
		return err
	}

	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	st, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	enricher := beanlog.New(beanlog.Options{
		Store: st,
		Geocoder: &naver.Geocoder{
			KeyID:    cfg.Geocode.KeyID,
			Key:      cfg.Geocode.Key,
			Endpoint: cfg.Geocode.Endpoint,
			Logger:   logger,
		},
		Dispatcher: queue.NewDispatcher(cfg.RequestInterval()),
		Logger:     logger,
	})

	report, err := enricher.GeocodeAll(ctx)
	printReport(report)
	return err
}
