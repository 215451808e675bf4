package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beanlog/beanlog/pkg/beanlog/store/sqlite"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print enrichment coverage for the record store",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cafes, err := st.ListCafes(ctx)
	if err != nil {
		return err
	}

	var withAddress, withCoords, withCategory, withThumbnail int
	for _, c := range cafes {
		if c.Address != "" {
			withAddress++
		}
		if c.Coordinates != nil {
			withCoords++
		}
		if c.Category != "" {
			withCategory++
		}
		if c.ThumbnailURL != "" {
			withThumbnail++
		}
	}

	fmt.Printf("cafés:      %d\n", len(cafes))
	fmt.Printf("address:    %d\n", withAddress)
	fmt.Printf("coordinates: %d\n", withCoords)
	fmt.Printf("category:   %d\n", withCategory)
	fmt.Printf("thumbnail:  %d\n", withThumbnail)
	return nil
}
