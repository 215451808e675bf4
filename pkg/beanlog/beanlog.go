package beanlog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/beanlog/beanlog/pkg/beanlog/geo"
	"github.com/beanlog/beanlog/pkg/beanlog/internalerr"
	"github.com/beanlog/beanlog/pkg/beanlog/match"
	"github.com/beanlog/beanlog/pkg/beanlog/merge"
	"github.com/beanlog/beanlog/pkg/beanlog/queue"
	"github.com/beanlog/beanlog/pkg/beanlog/store"
	"github.com/beanlog/beanlog/pkg/beanlog/strategy"
)

// Searcher executes one place-search query against the provider.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]match.Candidate, error)
}

// Geocoder resolves a postal address to WGS84 coordinates. ok is false
// when the provider has no result for the address.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, ok bool, err error)
}

// Enricher drives the place enrichment pipeline: per café it generates
// query strategies, tries them in order against the search provider,
// filters candidates by category, normalizes coordinates, and merges
// the result back into the record store.
type Enricher struct {
	store      store.Store
	searcher   Searcher
	geocoder   Geocoder
	dispatcher *queue.Dispatcher
	logger     *zap.Logger
	limit      int
	entityWait time.Duration
	now        func() time.Time
}

// Options configures an Enricher instance.
type Options struct {
	Store      store.Store
	Searcher   Searcher
	Geocoder   Geocoder
	Dispatcher *queue.Dispatcher
	Logger     *zap.Logger

	// ResultLimit is the candidate count requested per query (default 5).
	ResultLimit int
	// EntityInterval is the pause between entities (default 250ms).
	EntityInterval time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// New creates an Enricher with the given dependencies.
func New(opts Options) *Enricher {
	e := &Enricher{
		store:      opts.Store,
		searcher:   opts.Searcher,
		geocoder:   opts.Geocoder,
		dispatcher: opts.Dispatcher,
		logger:     opts.Logger,
		limit:      opts.ResultLimit,
		entityWait: opts.EntityInterval,
		now:        opts.Now,
	}
	if e.dispatcher == nil {
		e.dispatcher = queue.NewDispatcher(queue.DefaultInterval)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.limit <= 0 {
		e.limit = 5
	}
	if e.entityWait <= 0 {
		e.entityWait = 250 * time.Millisecond
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Report aggregates one batch run.
type Report struct {
	Processed int
	Succeeded int
	Failed    int
	Results   []Result
}

// Result records the outcome for one café.
type Result struct {
	CafeID  string
	Name    string
	Matched bool
	// Strategy is the description of the winning query strategy.
	Strategy string
	// MatchedTitle is the provider title with markup stripped.
	MatchedTitle string
	Err          string
}

// Run enriches each café in input order, strictly sequentially. A
// per-entity failure (transport error, no match, write failure) is
// logged and counted; the batch always proceeds to the next entity.
// Re-running is safe: the merge step is idempotent for fields that are
// already enriched.
func (e *Enricher) Run(ctx context.Context, cafes []store.Cafe) (Report, error) {
	report := Report{Results: make([]Result, 0, len(cafes))}

	for i, cafe := range cafes {
		if i > 0 {
			if err := sleepCtx(ctx, e.entityWait); err != nil {
				return report, err
			}
		}

		res := e.enrichOne(ctx, cafe, i)
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		report.Processed++
		if res.Matched && res.Err == "" {
			report.Succeeded++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, res)
	}

	e.logger.Info("enrichment batch finished",
		zap.Int("processed", report.Processed),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
	return report, nil
}

func (e *Enricher) enrichOne(ctx context.Context, cafe store.Cafe, index int) Result {
	res := Result{CafeID: cafe.ID, Name: cafe.Name}

	var (
		best  match.Candidate
		found bool
	)
	for _, st := range strategy.Generate(cafe.Name, cafe.LocationTags) {
		var candidates []match.Candidate
		err := e.dispatcher.Do(ctx, func(ctx context.Context) error {
			var serr error
			candidates, serr = e.searcher.Search(ctx, st.Query, e.limit)
			return serr
		})
		if err != nil {
			if ctx.Err() != nil {
				res.Err = err.Error()
				return res
			}
			// One failed strategy produces nothing; the next may still hit.
			e.logger.Warn("strategy failed",
				zap.String("cafe", cafe.Name),
				zap.String("strategy", st.Description),
				zap.Error(err))
			continue
		}

		if c, ok := match.SelectBest(candidates); ok {
			c.StrategyDescription = st.Description
			best, found = c, true
			break
		}
	}

	var update store.Update
	if found {
		res.Matched = true
		res.Strategy = best.StrategyDescription
		res.MatchedTitle = match.CleanTitle(best.Title)
		update = merge.Apply(cafe, &best, index, e.now())
		if best.MapX != "" && best.MapY != "" && update.Coordinates == nil {
			e.logger.Warn("candidate coordinates rejected",
				zap.String("cafe", cafe.Name),
				zap.String("mapx", best.MapX),
				zap.String("mapy", best.MapY))
		}
		e.logger.Info("café matched",
			zap.String("cafe", cafe.Name),
			zap.String("title", res.MatchedTitle),
			zap.String("strategy", best.StrategyDescription))
	} else {
		update = merge.Apply(cafe, nil, index, e.now())
		e.logger.Warn("no match, applying placeholder",
			zap.String("cafe", cafe.Name))
	}

	if err := e.store.UpdateCafe(ctx, cafe.ID, update); err != nil {
		e.logger.Error("persist failed",
			zap.String("cafe", cafe.Name),
			zap.Error(err))
		res.Err = err.Error()
	}
	return res
}

// GeocodeAll fills coordinates for cafés that have an address but no
// coordinates yet. A provider "no result" is logged and skipped, never
// fatal. Cafés already carrying coordinates are left alone.
func (e *Enricher) GeocodeAll(ctx context.Context) (Report, error) {
	if e.geocoder == nil {
		return Report{}, fmt.Errorf("%w: geocoder not configured", internalerr.ErrInvalidConfig)
	}

	cafes, err := e.store.ListCafes(ctx)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, cafe := range cafes {
		if cafe.Address == "" || cafe.Coordinates != nil {
			continue
		}
		report.Processed++
		res := Result{CafeID: cafe.ID, Name: cafe.Name}

		var (
			lat, lng float64
			ok       bool
		)
		err := e.dispatcher.Do(ctx, func(ctx context.Context) error {
			var gerr error
			lat, lng, ok, gerr = e.geocoder.Geocode(ctx, cafe.Address)
			return gerr
		})
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			e.logger.Warn("geocode failed",
				zap.String("cafe", cafe.Name),
				zap.Error(err))
			res.Err = err.Error()
			report.Failed++
			report.Results = append(report.Results, res)
			continue
		}
		if !ok {
			e.logger.Info("no geocode result",
				zap.String("cafe", cafe.Name),
				zap.String("address", cafe.Address))
			report.Failed++
			report.Results = append(report.Results, res)
			continue
		}
		if !geo.Plausible(lat, lng) {
			e.logger.Warn("implausible geocode result",
				zap.String("cafe", cafe.Name),
				zap.Float64("lat", lat),
				zap.Float64("lng", lng))
			report.Failed++
			report.Results = append(report.Results, res)
			continue
		}

		update := store.Update{
			Coordinates: &store.Coordinates{Latitude: lat, Longitude: lng},
			UpdatedAt:   e.now(),
		}
		if err := e.store.UpdateCafe(ctx, cafe.ID, update); err != nil {
			e.logger.Error("persist failed",
				zap.String("cafe", cafe.Name),
				zap.Error(err))
			res.Err = err.Error()
			report.Failed++
			report.Results = append(report.Results, res)
			continue
		}
		res.Matched = true
		report.Succeeded++
		report.Results = append(report.Results, res)
	}

	e.logger.Info("geocode batch finished",
		zap.Int("processed", report.Processed),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
	return report, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
