// Package pricing turns a cart into a priced breakdown. Everything here is a
// pure function of its inputs: no I/O, no mutation, no caching.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"brewhouse/internal/domain/entity"
	"brewhouse/internal/errors"
)

// MoneyScale is the number of decimal places every amount in a Breakdown is
// rounded to. Stored order amounts use the same scale, so a persisted total
// always equals the amount that was charged.
const MoneyScale = 8

// money rounds an amount to MoneyScale places.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// Rules are the tax, fee and promo code constants the engine prices with.
type Rules struct {
	TaxRate     decimal.Decimal // Applied to the cold subtotal only.
	DeliveryFee decimal.Decimal // Charged for delivery orders only.
	Codes       map[string]int  // Upper-cased promo code -> percentage off the subtotal.
}

// NewRules parses configuration values into Rules.
func NewRules(taxRate, deliveryFee string, codes map[string]int) (Rules, error) {
	rate, err := decimal.NewFromString(taxRate)
	if err != nil {
		return Rules{}, errors.Wrapf(err, "invalid tax rate %q", taxRate)
	}
	fee, err := decimal.NewFromString(deliveryFee)
	if err != nil {
		return Rules{}, errors.Wrapf(err, "invalid delivery fee %q", deliveryFee)
	}
	if rate.IsNegative() || fee.IsNegative() {
		return Rules{}, errors.New("tax rate and delivery fee must not be negative")
	}

	normalized := make(map[string]int, len(codes))
	for code, pct := range codes {
		if pct <= 0 || pct > 100 {
			return Rules{}, errors.Errorf("discount code %q has invalid percentage %d", code, pct)
		}
		normalized[strings.ToUpper(strings.TrimSpace(code))] = pct
	}

	return Rules{TaxRate: rate, DeliveryFee: fee, Codes: normalized}, nil
}

// Discount is the promo code state of a cart. The zero value means no code.
type Discount struct {
	Code       string
	Percentage int
}

// Applied reports whether a code is in effect.
func (d Discount) Applied() bool {
	return d.Code != "" && d.Percentage > 0
}

// CodeValidation is the result of checking a promo code.
type CodeValidation struct {
	Valid      bool
	Code       string // Canonical upper-case form.
	Percentage int
}

// Input is everything a quote depends on.
type Input struct {
	Lines         []entity.CartLine
	Method        entity.FulfillmentMethod
	Discount      Discount
	UseCredits    bool
	CreditBalance int
	IsGuest       bool
	Authenticated bool
}

// Breakdown is the priced result of a quote.
type Breakdown struct {
	HotSubtotal     decimal.Decimal
	ColdSubtotal    decimal.Decimal
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	DeliveryFee     decimal.Decimal
	Discount        decimal.Decimal
	CreditsDiscount decimal.Decimal
	GrandTotal      decimal.Decimal
	CreditsEarned   int
	// CreditsToSpend is the whole number of credits that paying
	// CreditsDiscount costs. It never exceeds the available balance.
	CreditsToSpend int
}

// Engine prices carts under a fixed set of Rules.
type Engine struct {
	rules Rules
}

// NewEngine creates an Engine.
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the rules the engine prices with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// ValidateCode matches code case-insensitively against the allow-list.
func (e *Engine) ValidateCode(code string) CodeValidation {
	canonical := strings.ToUpper(strings.TrimSpace(code))
	pct, ok := e.rules.Codes[canonical]
	if !ok {
		return CodeValidation{}
	}

	return CodeValidation{Valid: true, Code: canonical, Percentage: pct}
}

// DiscountFor resolves a stored code back into a Discount. Codes that have
// since left the allow-list resolve to no discount.
func (e *Engine) DiscountFor(code string) Discount {
	if code == "" {
		return Discount{}
	}
	v := e.ValidateCode(code)
	if !v.Valid {
		return Discount{}
	}

	return Discount{Code: v.Code, Percentage: v.Percentage}
}

// Quote prices the input. An empty cart yields an all-zero breakdown.
func (e *Engine) Quote(in Input) Breakdown {
	b := Breakdown{
		HotSubtotal:     decimal.Zero,
		ColdSubtotal:    decimal.Zero,
		Subtotal:        decimal.Zero,
		Tax:             decimal.Zero,
		DeliveryFee:     decimal.Zero,
		Discount:        decimal.Zero,
		CreditsDiscount: decimal.Zero,
		GrandTotal:      decimal.Zero,
	}
	if len(in.Lines) == 0 {
		return b
	}

	for _, line := range in.Lines {
		if line.Item.IsCold() {
			b.ColdSubtotal = b.ColdSubtotal.Add(line.LineTotal())
		} else {
			b.HotSubtotal = b.HotSubtotal.Add(line.LineTotal())
		}
	}
	b.HotSubtotal = money(b.HotSubtotal)
	b.ColdSubtotal = money(b.ColdSubtotal)
	b.Subtotal = b.HotSubtotal.Add(b.ColdSubtotal)
	b.Tax = money(b.ColdSubtotal.Mul(e.rules.TaxRate))

	if in.Method == entity.FulfillmentDelivery {
		b.DeliveryFee = e.rules.DeliveryFee
	}

	if in.Discount.Applied() {
		b.Discount = money(b.Subtotal.Mul(decimal.NewFromInt(int64(in.Discount.Percentage))).Div(decimal.NewFromInt(100)))
	}

	if in.UseCredits && in.Authenticated && !in.IsGuest && in.CreditBalance > 0 {
		b.CreditsDiscount = decimal.Min(decimal.NewFromInt(int64(in.CreditBalance)), b.Subtotal)
		b.CreditsToSpend = int(b.CreditsDiscount.Ceil().IntPart())
	}

	total := b.Subtotal.Add(b.Tax).Add(b.DeliveryFee).Sub(b.Discount).Sub(b.CreditsDiscount)
	b.GrandTotal = decimal.Max(decimal.Zero, total)

	if in.Authenticated && !in.IsGuest {
		b.CreditsEarned = CreditsFor(b.GrandTotal)
	}

	return b
}

// CreditsFor floors a currency amount to whole credits. Negative amounts earn nothing.
func CreditsFor(amount decimal.Decimal) int {
	if !amount.IsPositive() {
		return 0
	}

	return int(amount.Floor().IntPart())
}
