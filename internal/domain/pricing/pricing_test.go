package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewhouse/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	rules, err := NewRules("0.0625", "3.99", map[string]int{"welcome20": 10, "CAFE10": 10})
	require.NoError(t, err)

	return NewEngine(rules)
}

func line(price string, category entity.Category, size entity.Size, qty int) entity.CartLine {
	l := entity.NewQuickAddLine(entity.Item{ID: 1, Name: "Drink", Category: category, Price: dec(price)})
	l.Size = size
	l.Quantity = qty

	return l
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func TestQuote_HotPickupNoExtras(t *testing.T) {
	engine := newTestEngine(t)

	b := engine.Quote(Input{
		Lines:         []entity.CartLine{line("4.50", entity.CategoryEspresso, entity.SizeMedium, 1)},
		Method:        entity.FulfillmentPickup,
		Authenticated: true,
	})

	assertDec(t, "5.625", b.Subtotal, "subtotal")
	assertDec(t, "0", b.Tax, "tax")
	assertDec(t, "0", b.DeliveryFee, "fee")
	assertDec(t, "5.625", b.GrandTotal, "total")
	assert.Equal(t, "5.63", b.GrandTotal.StringFixed(2))
	assert.Equal(t, 5, b.CreditsEarned)
}

func TestQuote_ColdDeliveryIsTaxed(t *testing.T) {
	engine := newTestEngine(t)

	b := engine.Quote(Input{
		Lines:  []entity.CartLine{line("5.00", entity.CategoryIced, entity.SizeLarge, 2)},
		Method: entity.FulfillmentDelivery,
	})

	assertDec(t, "15", b.ColdSubtotal, "cold subtotal")
	assertDec(t, "0", b.HotSubtotal, "hot subtotal")
	assertDec(t, "0.9375", b.Tax, "tax")
	assertDec(t, "3.99", b.DeliveryFee, "fee")
	assertDec(t, "19.9275", b.GrandTotal, "total")
	assert.Equal(t, "19.93", b.GrandTotal.StringFixed(2))
}

func TestQuote_CreditsCoverSubtotal(t *testing.T) {
	engine := newTestEngine(t)

	b := engine.Quote(Input{
		Lines:         []entity.CartLine{line("5.00", entity.CategoryEspresso, entity.SizeSmall, 4)},
		Method:        entity.FulfillmentPickup,
		UseCredits:    true,
		CreditBalance: 30,
		Authenticated: true,
	})

	assertDec(t, "20", b.Subtotal, "subtotal")
	assertDec(t, "20", b.CreditsDiscount, "credits discount")
	assertDec(t, "0", b.GrandTotal, "total")
	assert.Equal(t, 20, b.CreditsToSpend)
	assert.Equal(t, 0, b.CreditsEarned)
}

func TestQuote_CreditsCappedByBalance(t *testing.T) {
	engine := newTestEngine(t)

	b := engine.Quote(Input{
		Lines:         []entity.CartLine{line("5.00", entity.CategoryEspresso, entity.SizeSmall, 4)},
		Method:        entity.FulfillmentPickup,
		UseCredits:    true,
		CreditBalance: 7,
		Authenticated: true,
	})

	assertDec(t, "7", b.CreditsDiscount, "credits discount")
	assertDec(t, "13", b.GrandTotal, "total")
	assert.Equal(t, 7, b.CreditsToSpend)
	assert.Equal(t, 13, b.CreditsEarned)
}

func TestQuote_FractionalSubtotalSpendsWholeCredits(t *testing.T) {
	engine := newTestEngine(t)

	b := engine.Quote(Input{
		Lines:         []entity.CartLine{line("4.50", entity.CategoryEspresso, entity.SizeMedium, 1)},
		Method:        entity.FulfillmentPickup,
		UseCredits:    true,
		CreditBalance: 30,
		Authenticated: true,
	})

	assertDec(t, "5.625", b.CreditsDiscount, "credits discount")
	assert.Equal(t, 6, b.CreditsToSpend)
	assert.LessOrEqual(t, b.CreditsToSpend, 30)
	assertDec(t, "0", b.GrandTotal, "total")
}

func TestQuote_AmountsFitMoneyScale(t *testing.T) {
	cold := []entity.CartLine{line("5.25", entity.CategoryIced, entity.SizeMedium, 1)}

	b := newTestEngine(t).Quote(Input{Lines: cold, Method: entity.FulfillmentPickup})
	assertDec(t, "0.41015625", b.Tax, "tax")
	assertDec(t, "6.97265625", b.GrandTotal, "total")

	rules, err := NewRules("0.08875", "3.99", map[string]int{"CAFE10": 10})
	require.NoError(t, err)
	b = NewEngine(rules).Quote(Input{
		Lines:    cold,
		Method:   entity.FulfillmentPickup,
		Discount: Discount{Code: "CAFE10", Percentage: 10},
	})

	assertDec(t, "0.58242188", b.Tax, "tax")
	assertDec(t, "0.65625", b.Discount, "discount")
	assertDec(t, "6.48867188", b.GrandTotal, "total")
	for name, amount := range map[string]decimal.Decimal{
		"subtotal": b.Subtotal,
		"tax":      b.Tax,
		"discount": b.Discount,
		"total":    b.GrandTotal,
	} {
		assert.GreaterOrEqual(t, amount.Exponent(), int32(-MoneyScale), name)
	}
	assert.True(t, b.GrandTotal.Equal(b.Subtotal.Add(b.Tax).Sub(b.Discount)))
}

func TestQuote_DiscountIsTenPercentOnce(t *testing.T) {
	engine := newTestEngine(t)
	v := engine.ValidateCode("welcome20")
	require.True(t, v.Valid)

	b := engine.Quote(Input{
		Lines:    []entity.CartLine{line("5.00", entity.CategoryEspresso, entity.SizeSmall, 2)},
		Method:   entity.FulfillmentPickup,
		Discount: Discount{Code: v.Code, Percentage: v.Percentage},
	})

	assertDec(t, "1", b.Discount, "discount")
	assertDec(t, "9", b.GrandTotal, "total")
}

func TestQuote_GuestEarnsAndSpendsNothing(t *testing.T) {
	engine := newTestEngine(t)

	b := engine.Quote(Input{
		Lines:         []entity.CartLine{line("5.00", entity.CategoryEspresso, entity.SizeSmall, 2)},
		Method:        entity.FulfillmentPickup,
		UseCredits:    true,
		CreditBalance: 100,
		IsGuest:       true,
	})

	assertDec(t, "10", b.Subtotal, "subtotal")
	assertDec(t, "0", b.CreditsDiscount, "credits discount")
	assertDec(t, "10", b.GrandTotal, "total")
	assert.Equal(t, 0, b.CreditsEarned)
	assert.Equal(t, 0, b.CreditsToSpend)
}

func TestQuote_EmptyCartIsZero(t *testing.T) {
	engine := newTestEngine(t)

	b := engine.Quote(Input{Method: entity.FulfillmentDelivery, UseCredits: true, CreditBalance: 10, Authenticated: true})

	assertDec(t, "0", b.Subtotal, "subtotal")
	assertDec(t, "0", b.DeliveryFee, "fee")
	assertDec(t, "0", b.GrandTotal, "total")
	assert.Equal(t, 0, b.CreditsEarned)
}

func TestQuote_Properties(t *testing.T) {
	engine := newTestEngine(t)
	methods := []entity.FulfillmentMethod{entity.FulfillmentDelivery, entity.FulfillmentPickup, entity.FulfillmentDriveThru}
	carts := [][]entity.CartLine{
		{line("4.50", entity.CategoryEspresso, entity.SizeSmall, 1)},
		{line("5.25", entity.CategoryIced, entity.SizeLarge, 3), line("6.00", entity.CategorySpecialty, entity.SizeMedium, 1)},
		{line("7.50", entity.CategoryIced, entity.SizeMedium, 2)},
	}
	balances := []int{0, 3, 12, 500}

	for _, lines := range carts {
		for _, method := range methods {
			for _, balance := range balances {
				for _, discount := range []Discount{{}, {Code: "CAFE10", Percentage: 10}} {
					in := Input{
						Lines:         lines,
						Method:        method,
						Discount:      discount,
						UseCredits:    true,
						CreditBalance: balance,
						Authenticated: true,
					}
					b := engine.Quote(in)

					assert.True(t, b.Tax.Equal(b.ColdSubtotal.Mul(dec("0.0625"))))
					assert.False(t, b.GrandTotal.IsNegative())
					capped := decimal.Min(decimal.NewFromInt(int64(balance)), b.Subtotal)
					assert.True(t, b.CreditsDiscount.LessThanOrEqual(capped))
					assert.LessOrEqual(t, b.CreditsToSpend, balance)
					assert.Equal(t, b, engine.Quote(in))
				}
			}
		}
	}
}

func TestValidateCode(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		code  string
		valid bool
	}{
		{"WELCOME20", true},
		{"welcome20", true},
		{" Cafe10 ", true},
		{"FREECOFFEE", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			v := engine.ValidateCode(tt.code)
			assert.Equal(t, tt.valid, v.Valid)
			if tt.valid {
				assert.Equal(t, 10, v.Percentage)
			}
		})
	}
}

func TestCreditsFor(t *testing.T) {
	assert.Equal(t, 5, CreditsFor(dec("5.625")))
	assert.Equal(t, 19, CreditsFor(dec("19.9275")))
	assert.Equal(t, 0, CreditsFor(dec("0.99")))
	assert.Equal(t, 0, CreditsFor(dec("-3")))
}

func TestNewRules_RejectsBadValues(t *testing.T) {
	_, err := NewRules("abc", "3.99", nil)
	assert.Error(t, err)

	_, err = NewRules("0.0625", "-1", nil)
	assert.Error(t, err)

	_, err = NewRules("0.0625", "3.99", map[string]int{"BAD": 0})
	assert.Error(t, err)
}
