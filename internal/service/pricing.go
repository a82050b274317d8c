package service

import (
	"math"

	"github.com/andreworkgit/MELI-list-products/internal/models"
)

// CalculateDiscount prices one product against the discount rule collection.
// Rules are applied in collection order, each compounding on the running
// price rather than the original one. It never fails: an empty rule list
// yields a pass-through calculation seeded from the product's own pre-set
// discounted price.
func CalculateDiscount(p models.Product, rules []models.DiscountRule) models.DiscountCalculation {
	finalPrice := p.EffectivePrice()
	totalDiscount := p.BasePrice - finalPrice

	// Every active rule is considered applicable. Rule conditions (category,
	// validity window, usage caps) are carried in the data model but not
	// evaluated here; changing that would change prices for existing data.
	applied := []models.DiscountRule{}
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		amount := ruleAmount(finalPrice, rule)
		if amount > 0 {
			finalPrice -= amount
			totalDiscount += amount
			applied = append(applied, rule)
		}
	}

	pct := 0
	if totalDiscount > 0 {
		pct = int(math.Round(totalDiscount / p.BasePrice * 100))
	}
	return models.DiscountCalculation{
		OriginalPrice:      p.BasePrice,
		DiscountedPrice:    math.Max(0, finalPrice),
		DiscountAmount:     totalDiscount,
		DiscountPercentage: pct,
		AppliedDiscounts:   applied,
	}
}

// ruleAmount is the monetary effect of one rule on the running price. A fixed
// rule never discounts below zero; unknown types (including "conditional")
// contribute nothing.
func ruleAmount(price float64, rule models.DiscountRule) float64 {
	switch rule.Type {
	case models.DiscountTypePercentage:
		return price * rule.Value / 100
	case models.DiscountTypeFixed:
		return math.Min(rule.Value, price)
	default:
		return 0
	}
}
