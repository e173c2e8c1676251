package catalog

import (
	"context"

	"github.com/saturnines/polar-sync/pkg/errors"
	"github.com/saturnines/polar-sync/pkg/polar"
)

// CatalogAPI is everything a sync run calls on the commerce API.
type CatalogAPI interface {
	LinkAPI
	ListProducts(ctx context.Context, limit int) ([]polar.Product, error)
}

// Record is one entry of the generated products file.
type Record struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       int64   `json:"price"`
	Currency    string  `json:"currency"`
	Image       *string `json:"image"`
	CheckoutURL *string `json:"checkoutUrl"`
}

// Report summarises one run.
type Report struct {
	Found    int
	Written  int
	Existing int
	Created  int
	Skipped  []string // products without any price
	Failed   []string // products whose checkout link could not be resolved
}

// Options configures a Syncer.
type Options struct {
	Category         string
	PaymentProcessor string
	Limit            int
	Out              Logger // progress
	Warn             Logger // skips and per-product failures
}

// Syncer turns the catalog into output records, one product at a time.
type Syncer struct {
	api      CatalogAPI
	resolver *Resolver
	category string
	limit    int
	out      Logger
	warn     Logger
}

func NewSyncer(api CatalogAPI, opts Options) *Syncer {
	return &Syncer{
		api:      api,
		resolver: NewResolver(api, opts.PaymentProcessor, opts.Out),
		category: opts.Category,
		limit:    opts.Limit,
		out:      opts.Out,
		warn:     opts.Warn,
	}
}

// Run fetches one page of products and builds a record for every product
// that has a price, in API order. Only the product fetch can fail the run;
// per-product problems are logged and recorded in the report.
func (s *Syncer) Run(ctx context.Context) ([]Record, *Report, error) {
	products, err := s.api.ListProducts(ctx, s.limit)
	if err != nil {
		return nil, nil, errors.WrapError(err, errors.ErrExtraction, "fetch products")
	}

	report := &Report{Found: len(products)}
	s.out.Printf("Found %d product(s)\n\n", len(products))

	records := make([]Record, 0, len(products))
	for _, p := range products {
		price, ok := SelectPrice(p.Prices)
		if !ok {
			s.warn.Printf("  [skipped]  %q: no price found", p.Name)
			report.Skipped = append(report.Skipped, p.ID)
			continue
		}

		var checkoutURL *string
		url, source, err := s.resolver.Resolve(ctx, p)
		switch {
		case err != nil:
			s.warn.Printf("  [warning]  checkout link failed for %q: %v", p.Name, err)
			report.Failed = append(report.Failed, p.ID)
		case source == LinkExisting:
			report.Existing++
			checkoutURL = &url
		case source == LinkCreated:
			report.Created++
			checkoutURL = &url
		}

		records = append(records, s.record(p, price, checkoutURL))
	}

	report.Written = len(records)
	return records, report, nil
}

func (s *Syncer) record(p polar.Product, price polar.Price, checkoutURL *string) Record {
	var image *string
	if len(p.Medias) > 0 && p.Medias[0].PublicURL != "" {
		u := p.Medias[0].PublicURL
		image = &u
	}

	return Record{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    s.category,
		Price:       price.PriceAmount,
		Currency:    CurrencyCode(price),
		Image:       image,
		CheckoutURL: checkoutURL,
	}
}
