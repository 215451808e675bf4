package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beanlog/beanlog/internal/seed"
	"github.com/beanlog/beanlog/pkg/beanlog/store"
	"github.com/beanlog/beanlog/pkg/beanlog/store/sqlite"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load café seed records from a JSONL file",
	Long: `Load café seed records from a JSONL file into the record store.

Each line is one café: {"name": "...", "address": "...",
"location_tags": ["서울", "성수"]}. Malformed lines are skipped with a
warning.

Examples:
  beanlog seed --db beanlog.db --file cafes.jsonl`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "JSONL seed file (required)")
	seedCmd.MarkFlagRequired("file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	records, err := seed.LoadFromJSONL(seedFile, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	added := 0
	for _, rec := range records {
		cafe := store.Cafe{
			Name:         rec.Name,
			Address:      rec.Address,
			LocationTags: rec.LocationTags,
			ThumbnailURL: rec.ThumbnailURL,
		}
		if _, err := st.AddCafe(ctx, cafe); err != nil {
			return fmt.Errorf("add %q: %w", rec.Name, err)
		}
		added++
	}

	fmt.Printf("seeded %d cafés from %s\n", added, seedFile)
	return nil
}
