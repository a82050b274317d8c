package models

// Discount rule types. "conditional" exists in the data but the engine treats
// it like any unknown type (no effect).
const (
	DiscountTypePercentage  = "percentage"
	DiscountTypeFixed       = "fixed"
	DiscountTypeConditional = "conditional"
)

// DiscountConditions carries targeting metadata for a rule. The pricing
// engine does not evaluate any of these fields; every active rule applies
// regardless. Kept in the model for compatibility with the stored data.
type DiscountConditions struct {
	Category     string `json:"category,omitempty"`
	ValidUntil   string `json:"validUntil,omitempty"`
	ValidFrom    string `json:"validFrom,omitempty"`
	MaxUsage     *int   `json:"maxUsage,omitempty"`
	CurrentUsage *int   `json:"currentUsage,omitempty"`
}

type DiscountRule struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"` // percentage | fixed | conditional
	Value       float64             `json:"value"`
	Conditions  *DiscountConditions `json:"conditions,omitempty"`
	IsActive    bool                `json:"isActive"`
	Name        string              `json:"name,omitempty"`
	Description string              `json:"description,omitempty"`
}

// DiscountCalculation is the derived pricing result returned on product
// detail reads. Never persisted.
type DiscountCalculation struct {
	OriginalPrice      float64        `json:"originalPrice"`
	DiscountedPrice    float64        `json:"discountedPrice"`
	DiscountAmount     float64        `json:"discountAmount"`
	DiscountPercentage int            `json:"discountPercentage"`
	AppliedDiscounts   []DiscountRule `json:"appliedDiscounts"`
}
