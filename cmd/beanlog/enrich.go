package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beanlog/beanlog/internal/naver"
	"github.com/beanlog/beanlog/pkg/beanlog"
	"github.com/beanlog/beanlog/pkg/beanlog/queue"
	"github.com/beanlog/beanlog/pkg/beanlog/store"
	"github.com/beanlog/beanlog/pkg/beanlog/store/sqlite"
)

var missingOnly bool

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich café records from the place-search provider",
	Long: `Enrich café records from the place-search provider.

For each café the strategies name+district, name+city, name+keyword and
bare name are tried in order; the first candidate with a café-like
category wins. Cafés with no match get a deterministic placeholder
thumbnail. Re-running is safe.

Examples:
  # Enrich every café
  beanlog enrich --config beanlog.yaml

  # Only cafés that have no category yet
  beanlog enrich --config beanlog.yaml --missing-only`,
	RunE: runEnrich,
}

func init() {
	enrichCmd.Flags().BoolVar(&missingOnly, "missing-only", false, "skip cafés that already have a category")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Credential problems fail the whole run before any entity is touched.
	if err := cfg.ValidateSearch(); err != nil {
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

	cafes, err := st.ListCafes(ctx)
	if err != nil {
		return err
	}
	if missingOnly {
		cafes = withoutCategory(cafes)
	}
	if len(cafes) == 0 {
		fmt.Println("nothing to enrich")
		return nil
	}

	enricher := beanlog.New(beanlog.Options{
		Store: st,
		Searcher: &naver.Client{
			ClientID:     cfg.Search.ClientID,
			ClientSecret: cfg.Search.ClientSecret,
			Endpoint:     cfg.Search.Endpoint,
			Logger:       logger,
		},
		Dispatcher:     queue.NewDispatcher(cfg.RequestInterval()),
		Logger:         logger,
		ResultLimit:    cfg.Batch.Display,
		EntityInterval: cfg.EntityInterval(),
	})

	report, err := enricher.Run(ctx, cafes)
	printReport(report)
	return err
}

func withoutCategory(cafes []store.Cafe) []store.Cafe {
	out := cafes[:0]
	for _, c := range cafes {
		if c.Category == "" {
			out = append(out, c)
		}
	}
	return out
}

func printReport(r beanlog.Report) {
	fmt.Printf("processed %d, succeeded %d, failed %d\n",
		r.Processed, r.Succeeded, r.Failed)
	for _, res := range r.Results {
		if res.Err != "" {
			fmt.Printf("  FAIL %s: %s\n", res.Name, res.Err)
		}
	}
}
