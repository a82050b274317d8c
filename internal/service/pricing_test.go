package service

import (
	"testing"

	"github.com/andreworkgit/MELI-list-products/internal/models"
)

func fptr(v float64) *float64 { return &v }

func pctRule(id string, value float64, active bool) models.DiscountRule {
	return models.DiscountRule{ID: id, Type: models.DiscountTypePercentage, Value: value, IsActive: active}
}

func fixedRule(id string, value float64) models.DiscountRule {
	return models.DiscountRule{ID: id, Type: models.DiscountTypeFixed, Value: value, IsActive: true}
}

func TestCalculateDiscount_SinglePercentage(t *testing.T) {
	p := models.Product{ID: "1", BasePrice: 100}
	got := CalculateDiscount(p, []models.DiscountRule{pctRule("d1", 10, true)})

	if got.OriginalPrice != 100 {
		t.Errorf("originalPrice=%v, want 100", got.OriginalPrice)
	}
	if got.DiscountedPrice != 90 {
		t.Errorf("discountedPrice=%v, want 90", got.DiscountedPrice)
	}
	if got.DiscountAmount != 10 {
		t.Errorf("discountAmount=%v, want 10", got.DiscountAmount)
	}
	if got.DiscountPercentage != 10 {
		t.Errorf("discountPercentage=%v, want 10", got.DiscountPercentage)
	}
	if len(got.AppliedDiscounts) != 1 || got.AppliedDiscounts[0].ID != "d1" {
		t.Errorf("appliedDiscounts=%v, want [d1]", got.AppliedDiscounts)
	}
}

// Two 10% rules compound on the running price: 100 -> 90 -> 81, total 19,
// not the additive 20.
func TestCalculateDiscount_SequentialCompounding(t *testing.T) {
	p := models.Product{ID: "1", BasePrice: 100}
	rules := []models.DiscountRule{pctRule("d1", 10, true), pctRule("d2", 10, true)}
	got := CalculateDiscount(p, rules)

	if got.DiscountedPrice != 81 {
		t.Errorf("discountedPrice=%v, want 81", got.DiscountedPrice)
	}
	if got.DiscountAmount != 19 {
		t.Errorf("discountAmount=%v, want 19", got.DiscountAmount)
	}
	if got.DiscountPercentage != 19 {
		t.Errorf("discountPercentage=%v, want 19", got.DiscountPercentage)
	}
	if len(got.AppliedDiscounts) != 2 {
		t.Errorf("applied %d rules, want 2", len(got.AppliedDiscounts))
	}
}

func TestCalculateDiscount_FixedNeverBelowZero(t *testing.T) {
	p := models.Product{ID: "1", BasePrice: 50}
	got := CalculateDiscount(p, []models.DiscountRule{fixedRule("d1", 80)})

	if got.DiscountedPrice != 0 {
		t.Errorf("discountedPrice=%v, want 0", got.DiscountedPrice)
	}
	if got.DiscountAmount != 50 {
		t.Errorf("discountAmount=%v, want 50", got.DiscountAmount)
	}
	if got.DiscountPercentage != 100 {
		t.Errorf("discountPercentage=%v, want 100", got.DiscountPercentage)
	}
}

func TestCalculateDiscount_InactiveAndUnknownTypesSkipped(t *testing.T) {
	p := models.Product{ID: "1", BasePrice: 100}
	rules := []models.DiscountRule{
		pctRule("inactive", 50, false),
		{ID: "cond", Type: models.DiscountTypeConditional, Value: 50, IsActive: true},
		{ID: "garbage", Type: "bogo", Value: 50, IsActive: true},
	}
	got := CalculateDiscount(p, rules)

	if got.DiscountedPrice != 100 || got.DiscountAmount != 0 || got.DiscountPercentage != 0 {
		t.Errorf("got %+v, want pass-through pricing", got)
	}
	if got.AppliedDiscounts == nil || len(got.AppliedDiscounts) != 0 {
		t.Errorf("appliedDiscounts=%v, want empty non-nil slice", got.AppliedDiscounts)
	}
}

// A rule's conditions are not evaluated: an active rule applies even when its
// category or validity window would rule it out.
func TestCalculateDiscount_ConditionsIgnored(t *testing.T) {
	p := models.Product{ID: "1", BasePrice: 100, Category: "Books"}
	r := pctRule("d1", 10, true)
	r.Conditions = &models.DiscountConditions{Category: "Electronics", ValidUntil: "2000-01-01"}
	got := CalculateDiscount(p, []models.DiscountRule{r})

	if got.DiscountedPrice != 90 {
		t.Errorf("discountedPrice=%v, want 90 (conditions must not be evaluated)", got.DiscountedPrice)
	}
}

func TestCalculateDiscount_PresetDiscountedPriceSeeds(t *testing.T) {
	p := models.Product{ID: "1", BasePrice: 100, DiscountedPrice: fptr(80)}
	got := CalculateDiscount(p, []models.DiscountRule{pctRule("d1", 10, true)})

	// seed 80, rule takes 8 more
	if got.DiscountedPrice != 72 {
		t.Errorf("discountedPrice=%v, want 72", got.DiscountedPrice)
	}
	if got.DiscountAmount != 28 {
		t.Errorf("discountAmount=%v, want 28", got.DiscountAmount)
	}
	if got.DiscountPercentage != 28 {
		t.Errorf("discountPercentage=%v, want 28", got.DiscountPercentage)
	}
}

func TestCalculateDiscount_PresetAboveBaseIgnored(t *testing.T) {
	p := models.Product{ID: "1", BasePrice: 100, DiscountedPrice: fptr(120)}
	got := CalculateDiscount(p, nil)

	if got.DiscountedPrice != 100 || got.DiscountAmount != 0 {
		t.Errorf("got %+v, want seed from basePrice", got)
	}
}

func TestCalculateDiscount_NoRulesPassThrough(t *testing.T) {
	p := models.Product{ID: "1", BasePrice: 49.99}
	got := CalculateDiscount(p, []models.DiscountRule{})

	if got.OriginalPrice != 49.99 || got.DiscountedPrice != 49.99 {
		t.Errorf("got %+v, want unchanged prices", got)
	}
	if got.DiscountPercentage != 0 {
		t.Errorf("discountPercentage=%v, want 0", got.DiscountPercentage)
	}
}

func TestCalculateDiscount_ZeroValueRuleNotRecorded(t *testing.T) {
	p := models.Product{ID: "1", BasePrice: 100}
	got := CalculateDiscount(p, []models.DiscountRule{pctRule("d1", 0, true)})

	if len(got.AppliedDiscounts) != 0 {
		t.Errorf("zero-amount rule must not be recorded as applied: %v", got.AppliedDiscounts)
	}
}

func TestCalculateDiscount_PercentageRounding(t *testing.T) {
	p := models.Product{ID: "1", BasePrice: 90}
	got := CalculateDiscount(p, []models.DiscountRule{fixedRule("d1", 14)})

	// 14/90 = 15.55..% rounds to 16
	if got.DiscountPercentage != 16 {
		t.Errorf("discountPercentage=%v, want 16", got.DiscountPercentage)
	}
}
