package collectr

// Product is a raw showcase record as returned by the Collectr API. Fields
// are loosely typed upstream; missing values are normalized downstream by
// the importer, never here.
type Product struct {
	ProductName   string  `json:"product_name"`
	CatalogGroup  string  `json:"catalog_group"`
	CardNumber    string  `json:"card_number"`
	Rarity        string  `json:"rarity"`
	Variant       string  `json:"variant"`
	Grade         string  `json:"grade"`
	Condition     string  `json:"condition"`
	CostPaid      string  `json:"cost_paid"`
	Quantity      int     `json:"quantity"`
	MarketPrice   float64 `json:"market_price"`
	PriceOverride string  `json:"price_override"`
	Watchlist     bool    `json:"watchlist"`
	Notes         string  `json:"notes"`
	ImageURL      string  `json:"image_url"`
}

// ShowcasePage is one page of a paginated showcase fetch.
type ShowcasePage struct {
	TotalCards int       `json:"total_cards"`
	Products   []Product `json:"products"`
}
