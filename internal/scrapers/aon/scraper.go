package aon

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"aonscraper/internal/assert"
	"aonscraper/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	report_scraper_scrape_spell = "scraper.scrape-spell"
	report_scraper_scrape_trait = "scraper.scrape-trait"
	report_scraper_trait_index  = "scraper.trait-index"
	report_scraper_spells_done  = "scraper.spells-done"
	report_scraper_traits_done  = "scraper.traits-done"
	report_scraper_assemble     = "scraper.assemble"
)

var tracer = otel.Tracer("aonscraper/internal/scrapers/aon")

// Scraper drives the per-page fetches of both record kinds. A failed page
// fails only its own record, the rest of the batch still completes.
type Scraper struct {
	fetch       Fetcher
	tel         telemetry.API
	concurrency int
}

// NewScraper creates a scraper running at most concurrency page fetches at
// once, values below 1 mean sequential.
func NewScraper(fetch Fetcher, tel telemetry.API, concurrency int) Scraper {
	assert.NotNil(fetch, "fetch")
	assert.NotNil(tel, "tel")
	if concurrency < 1 {
		concurrency = 1
	}
	return Scraper{
		fetch:       fetch,
		tel:         telemetry.Scope(tel, "aon_scraper"),
		concurrency: concurrency,
	}
}

// forEach runs fn for 0..n-1 on the bounded pool. Once ctx is done no new
// index is scheduled.
func (s Scraper) forEach(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	group := errgroup.Group{}
	group.SetLimit(s.concurrency)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			fn(ctx, i)
			return nil
		})
	}
	_ = group.Wait()
	return ctx.Err()
}

// ScrapeSpellPage fetches and parses the page of one spell, the page's own
// heading must agree with id.
func (s Scraper) ScrapeSpellPage(ctx context.Context, id int) (SpellPage, error) {
	ctx, span := tracer.Start(ctx, "ScrapeSpellPage", trace.WithAttributes(
		attribute.Int("id", id),
	))
	defer span.End()

	doc, err := s.fetch.Fetch(ctx, SpellPath(id))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return SpellPage{}, fmt.Errorf("spell %d: %w", id, err)
	}

	page := ParseSpellPage(doc)
	if page.Id != 0 && page.Id != id {
		err := fmt.Errorf("spell %d: %w (page shows %d)", id, ErrIdentityMismatch, page.Id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "identity mismatch")
		return SpellPage{}, err
	}
	page.Id = id

	return page, nil
}

// ScrapeSpells enriches every seed with its page. Every seed produces a
// spell in input order, those whose page failed keep only seed fields and
// their failures are joined into the returned error.
func (s Scraper) ScrapeSpells(ctx context.Context, seeds []SpellSeed) ([]Spell, error) {
	ctx, span := tracer.Start(ctx, "ScrapeSpells", trace.WithAttributes(
		attribute.Int("count", len(seeds)),
	))
	defer span.End()

	pages := make([]*SpellPage, len(seeds))
	failures := make([]error, len(seeds))
	var done atomic.Int64

	cancelled := s.forEach(ctx, len(seeds), func(ctx context.Context, i int) {
		page, err := s.ScrapeSpellPage(ctx, seeds[i].Id)
		if err != nil {
			s.tel.ReportBroken(report_scraper_scrape_spell, err)
			failures[i] = err
		} else {
			pages[i] = &page
			s.tel.ReportDebug("scraped spell", seeds[i].Id, seeds[i].Name)
		}
		s.tel.ReportCount(report_scraper_spells_done, done.Add(1))
	})

	spells := make([]Spell, len(seeds))
	for i, seed := range seeds {
		if pages[i] == nil {
			spells[i] = spellFromSeed(seed)
			continue
		}
		spell, err := AssembleSpell(seed, *pages[i])
		if err != nil {
			s.tel.ReportBroken(report_scraper_assemble, err)
			failures[i] = err
		}
		spells[i] = spell
	}

	err := errors.Join(append(failures, cancelled)...)
	if err != nil {
		span.RecordError(err)
	}
	return spells, err
}

// ScrapeTraits reads the trait index then fetches each trait's description.
// Only a failed index fetch aborts the job, a failed description leaves
// that trait's description empty.
func (s Scraper) ScrapeTraits(ctx context.Context) ([]Trait, error) {
	ctx, span := tracer.Start(ctx, "ScrapeTraits")
	defer span.End()

	index, err := s.fetch.Fetch(ctx, TraitsPath)
	if err != nil {
		s.tel.ReportBroken(report_scraper_trait_index, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "index fetch failed")
		return nil, fmt.Errorf("trait index: %w", err)
	}

	bare, dropped := ParseTraitIndex(index)
	if dropped > 0 {
		s.tel.ReportWarning(report_scraper_trait_index, fmt.Errorf("%w: dropped %d trait markers", ErrMissingIdentity, dropped))
	}
	span.SetAttributes(attribute.Int("count", len(bare)))

	descriptions := make([]string, len(bare))
	failures := make([]error, len(bare))
	var done atomic.Int64

	cancelled := s.forEach(ctx, len(bare), func(ctx context.Context, i int) {
		description, err := s.scrapeTraitDescription(ctx, bare[i].Id)
		if err != nil {
			s.tel.ReportBroken(report_scraper_scrape_trait, err)
			failures[i] = err
		} else {
			descriptions[i] = description
			s.tel.ReportDebug("scraped trait", bare[i].Id, bare[i].Name)
		}
		s.tel.ReportCount(report_scraper_traits_done, done.Add(1))
	})

	traits := make([]Trait, len(bare))
	for i, t := range bare {
		t.Description = descriptions[i]
		traits[i] = t
	}

	err = errors.Join(append(failures, cancelled)...)
	if err != nil {
		span.RecordError(err)
	}
	return traits, err
}

func (s Scraper) scrapeTraitDescription(ctx context.Context, id int) (string, error) {
	ctx, span := tracer.Start(ctx, "ScrapeTraitDescription", trace.WithAttributes(
		attribute.Int("id", id),
	))
	defer span.End()

	doc, err := s.fetch.Fetch(ctx, TraitPath(id))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return "", fmt.Errorf("trait %d: %w", id, err)
	}
	return ParseTraitDescription(doc), nil
}
