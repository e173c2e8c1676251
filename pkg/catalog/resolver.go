package catalog

import (
	"context"

	"github.com/saturnines/polar-sync/pkg/polar"
)

// Logger is satisfied by *log.Logger.
type Logger interface {
	Printf(format string, v ...any)
}

// LinkAPI is the part of the commerce API the resolver needs.
type LinkAPI interface {
	ListCheckoutLinks(ctx context.Context, productID string, limit int) ([]polar.CheckoutLink, error)
	CreateCheckoutLink(ctx context.Context, in polar.CheckoutLinkCreate) (*polar.CheckoutLink, error)
}

// LinkSource tells how a checkout URL was obtained.
type LinkSource int

const (
	LinkNone LinkSource = iota
	LinkExisting
	LinkCreated
)

func (s LinkSource) String() string {
	switch s {
	case LinkExisting:
		return "existing"
	case LinkCreated:
		return "created"
	default:
		return "none"
	}
}

// Resolver finds or creates the checkout link of a product.
type Resolver struct {
	api       LinkAPI
	processor string
	log       Logger
}

// NewResolver creates a Resolver that creates links with the given payment processor.
func NewResolver(api LinkAPI, processor string, log Logger) *Resolver {
	return &Resolver{api: api, processor: processor, log: log}
}

// Resolve returns a checkout URL for p. A product without prices resolves
// to ("", LinkNone, nil).
//
// The lookup is best effort: if listing existing links fails for any
// reason the error is dropped and a new link is created. A transient
// lookup failure can therefore leave a duplicate link behind.
func (r *Resolver) Resolve(ctx context.Context, p polar.Product) (string, LinkSource, error) {
	price, ok := SelectPrice(p.Prices)
	if !ok {
		return "", LinkNone, nil
	}

	if links, err := r.api.ListCheckoutLinks(ctx, p.ID, 1); err == nil && len(links) > 0 {
		r.log.Printf("  [existing] %s", p.Name)
		return links[0].URL, LinkExisting, nil
	}

	link, err := r.api.CreateCheckoutLink(ctx, polar.CheckoutLinkCreate{
		ProductPriceID:   price.ID,
		PaymentProcessor: r.processor,
	})
	if err != nil {
		return "", LinkNone, err
	}

	r.log.Printf("  [created]  %s", p.Name)
	return link.URL, LinkCreated, nil
}
