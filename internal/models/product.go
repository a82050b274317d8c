package models

// Review is a customer review attached to a product. Reviews are embedded in
// the product document and have no update path of their own.
type Review struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId"`
	UserName string  `json:"userName"`
	Rating   float64 `json:"rating"` // expected 0-5
	Comment  string  `json:"comment"`
	Date     string  `json:"date"`
	Verified bool    `json:"verified"`
}

// Seller is the merchant behind a product. Embedded value object, not
// independently addressable.
type Seller struct {
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	Location    string  `json:"location"`
	Contact     string  `json:"contact"`
	TotalSales  *int    `json:"totalSales,omitempty"`
	MemberSince string  `json:"memberSince,omitempty"`
}

type ShippingInfo struct {
	FreeShipping  bool     `json:"freeShipping"`
	EstimatedDays int      `json:"estimatedDays"`
	Cost          *float64 `json:"cost,omitempty"`
	Methods       []string `json:"methods,omitempty"`
}

// Product is the catalog record persisted as one JSON document.
type Product struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Images             []string          `json:"images"`
	BasePrice          float64           `json:"basePrice"`
	DiscountedPrice    *float64          `json:"discountedPrice,omitempty"`
	DiscountPercentage *float64          `json:"discountPercentage,omitempty"`
	Currency           string            `json:"currency"`
	PaymentMethods     []string          `json:"paymentMethods"`
	Seller             Seller            `json:"seller"`
	Specifications     map[string]string `json:"specifications"`
	Reviews            []Review          `json:"reviews"`
	StockQuantity      int               `json:"stockQuantity"`
	ShippingInfo       ShippingInfo      `json:"shippingInfo"`
	Category           string            `json:"category,omitempty"`
	Condition          string            `json:"condition,omitempty"` // new | used | refurbished
	Warranty           string            `json:"warranty,omitempty"`
	Tags               []string          `json:"tags,omitempty"`
}

// AverageRating returns the arithmetic mean of the product's review ratings,
// 0 when there are none.
func (p Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return sum / float64(len(p.Reviews))
}

// EffectivePrice is the price a buyer pays before discount rules run: the
// pre-set discounted price when one exists and undercuts the base price,
// otherwise the base price.
func (p Product) EffectivePrice() float64 {
	if p.DiscountedPrice != nil && *p.DiscountedPrice < p.BasePrice {
		return *p.DiscountedPrice
	}
	return p.BasePrice
}

// ProductUpdate enumerates the fields a partial update may change. Nil means
// "leave untouched"; a non-nil specifications map replaces the whole mapping.
type ProductUpdate struct {
	Title          *string           `json:"title,omitempty"`
	Description    *string           `json:"description,omitempty"`
	BasePrice      *float64          `json:"basePrice,omitempty"`
	StockQuantity  *int              `json:"stockQuantity,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// Apply shallow-merges the provided fields over p.
func (u ProductUpdate) Apply(p Product) Product {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.BasePrice != nil {
		p.BasePrice = *u.BasePrice
	}
	if u.StockQuantity != nil {
		p.StockQuantity = *u.StockQuantity
	}
	if u.Specifications != nil {
		p.Specifications = u.Specifications
	}
	return p
}
