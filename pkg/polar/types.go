package polar

// Price types reported by the API.
const (
	PriceTypeOneTime   = "one_time"
	PriceTypeRecurring = "recurring"
)

// Product is the subset of the product resource the sync reads.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"` // null decodes to ""
	IsArchived  bool    `json:"is_archived"`
	Prices      []Price `json:"prices"`
	Medias      []Media `json:"medias"`
}

// Price is one price variant of a product.
type Price struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	AmountType    string `json:"amount_type,omitempty"`
	PriceAmount   int64  `json:"price_amount"` // minor units
	PriceCurrency string `json:"price_currency"`
}

// Media is a file attached to a product.
type Media struct {
	ID        string `json:"id"`
	PublicURL string `json:"public_url"`
}

// CheckoutLink is a hosted checkout page. Only URL is used downstream.
type CheckoutLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutLinkCreate is the body of POST /checkout-links.
type CheckoutLinkCreate struct {
	ProductPriceID   string `json:"product_price_id"`
	PaymentProcessor string `json:"payment_processor"`
}

// ListResource is the envelope of every list endpoint.
type ListResource[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	TotalCount int `json:"total_count"`
	MaxPage    int `json:"max_page"`
}
