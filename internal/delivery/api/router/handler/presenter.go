package handler

import (
	"time"

	"brewhouse/internal/domain/entity"
	"brewhouse/internal/domain/pricing"
	"brewhouse/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type itemResponse struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Price        string   `json:"price"`
	Description  string   `json:"description"`
	TastingNotes []string `json:"tasting_notes"`
	Ingredients  []string `json:"ingredients"`
	Image        string   `json:"image"`
	Cold         bool     `json:"cold"`
}

func toItemResponse(item entity.Item) itemResponse {
	return itemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Category:     item.Category.String(),
		Price:        money(item.Price),
		Description:  item.Description,
		TastingNotes: item.TastingNotes,
		Ingredients:  item.Ingredients,
		Image:        item.Image,
		Cold:         item.IsCold(),
	}
}

func toItemResponses(items []entity.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}

	return out
}

type cartLineResponse struct {
	Index     int          `json:"index"`
	Item      itemResponse `json:"item"`
	Quantity  int          `json:"quantity"`
	Size      entity.Size  `json:"size"`
	Milk      entity.Milk  `json:"milk"`
	Sweetness int          `json:"sweetness"`
	Ice       entity.Ice   `json:"ice"`
	UnitPrice string       `json:"unit_price"`
	LineTotal string       `json:"line_total"`
}

func toCartLineResponses(lines []entity.CartLine) []cartLineResponse {
	out := make([]cartLineResponse, 0, len(lines))
	for i, line := range lines {
		out = append(out, cartLineResponse{
			Index:     i,
			Item:      toItemResponse(line.Item),
			Quantity:  line.Quantity,
			Size:      line.Size,
			Milk:      line.Milk,
			Sweetness: line.Sweetness,
			Ice:       line.Ice,
			UnitPrice: money(line.UnitPrice()),
			LineTotal: money(line.LineTotal()),
		})
	}

	return out
}

type cartResponse struct {
	Lines []cartLineResponse `json:"lines"`
	Total string             `json:"total"`
	Count int                `json:"count"`
}

func toCartResponse(view *usecase.CartView) cartResponse {
	return cartResponse{
		Lines: toCartLineResponses(view.Lines),
		Total: money(view.Total),
		Count: view.Count,
	}
}

type sessionResponse struct {
	ID            uuid.UUID    `json:"id"`
	Authenticated bool         `json:"authenticated"`
	IsGuest       bool         `json:"is_guest"`
	DiscountCode  string       `json:"discount_code,omitempty"`
	Theme         entity.Theme `json:"theme"`
}

func toSessionResponse(s *entity.Session) sessionResponse {
	return sessionResponse{
		ID:            s.ID,
		Authenticated: s.IsAuthenticated(),
		IsGuest:       s.IsGuest,
		DiscountCode:  s.DiscountCode,
		Theme:         s.Theme,
	}
}

type addressResponse struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	FullName  string    `json:"full_name"`
	Street    string    `json:"street"`
	Apartment string    `json:"apartment,omitempty"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zip_code"`
	Phone     string    `json:"phone"`
	IsDefault bool      `json:"is_default"`
}

func toAddressResponse(a *entity.SavedAddress) addressResponse {
	return addressResponse{
		ID:        a.ID,
		Label:     a.Label,
		FullName:  a.FullName,
		Street:    a.Street,
		Apartment: a.Apartment,
		City:      a.City,
		State:     a.State,
		ZipCode:   a.ZipCode,
		Phone:     a.Phone,
		IsDefault: a.IsDefault,
	}
}

type cardResponse struct {
	ID         uuid.UUID       `json:"id"`
	Type       entity.CardType `json:"type"`
	LastFour   string          `json:"last_four"`
	HolderName string          `json:"holder_name,omitempty"`
	Expiry     string          `json:"expiry"`
	IsDefault  bool            `json:"is_default"`
}

func toCardResponse(c *entity.SavedCard) cardResponse {
	return cardResponse{
		ID:         c.ID,
		Type:       c.Type,
		LastFour:   c.LastFour,
		HolderName: c.HolderName,
		Expiry:     c.Expiry(),
		IsDefault:  c.IsDefault,
	}
}

type userResponse struct {
	ID             uuid.UUID         `json:"id"`
	Email          string            `json:"email"`
	Name           string            `json:"name"`
	Avatar         string            `json:"avatar,omitempty"`
	PreferredDrink string            `json:"preferred_drink,omitempty"`
	Credits        int               `json:"credits"`
	Addresses      []addressResponse `json:"addresses"`
	Cards          []cardResponse    `json:"cards"`
	CreatedAt      time.Time         `json:"created_at"`
}

func toUserResponse(u *entity.User) userResponse {
	resp := userResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Avatar:         u.Avatar,
		PreferredDrink: u.PreferredDrink,
		Credits:        u.Credits,
		Addresses:      make([]addressResponse, 0, len(u.Addresses)),
		Cards:          make([]cardResponse, 0, len(u.Cards)),
		CreatedAt:      u.CreatedAt,
	}
	for _, a := range u.Addresses {
		resp.Addresses = append(resp.Addresses, toAddressResponse(a))
	}
	for _, c := range u.Cards {
		resp.Cards = append(resp.Cards, toCardResponse(c))
	}

	return resp
}

type breakdownResponse struct {
	HotSubtotal     string `json:"hot_subtotal"`
	ColdSubtotal    string `json:"cold_subtotal"`
	Subtotal        string `json:"subtotal"`
	Tax             string `json:"tax"`
	DeliveryFee     string `json:"delivery_fee"`
	Discount        string `json:"discount"`
	CreditsDiscount string `json:"credits_discount"`
	GrandTotal      string `json:"grand_total"`
	CreditsEarned   int    `json:"credits_earned"`
	CreditsToSpend  int    `json:"credits_to_spend"`
}

func toBreakdownResponse(b pricing.Breakdown) breakdownResponse {
	return breakdownResponse{
		HotSubtotal:     money(b.HotSubtotal),
		ColdSubtotal:    money(b.ColdSubtotal),
		Subtotal:        money(b.Subtotal),
		Tax:             money(b.Tax),
		DeliveryFee:     money(b.DeliveryFee),
		Discount:        money(b.Discount),
		CreditsDiscount: money(b.CreditsDiscount),
		GrandTotal:      money(b.GrandTotal),
		CreditsEarned:   b.CreditsEarned,
		CreditsToSpend:  b.CreditsToSpend,
	}
}

type quoteResponse struct {
	Breakdown       breakdownResponse `json:"breakdown"`
	DiscountCode    string            `json:"discount_code,omitempty"`
	DiscountPercent int               `json:"discount_percent,omitempty"`
	CreditBalance   int               `json:"credit_balance"`
	CanUseCredits   bool              `json:"can_use_credits"`
}

func toQuoteResponse(q *usecase.QuoteOutput) quoteResponse {
	resp := quoteResponse{
		Breakdown:     toBreakdownResponse(q.Breakdown),
		CreditBalance: q.CreditBalance,
		CanUseCredits: q.CanUseCredits,
	}
	if q.Discount.Applied() {
		resp.DiscountCode = q.Discount.Code
		resp.DiscountPercent = q.Discount.Percentage
	}

	return resp
}

type orderResponse struct {
	ID                uuid.UUID                `json:"id"`
	ShortID           string                   `json:"short_id"`
	Lines             []cartLineResponse       `json:"lines"`
	ItemCount         int                      `json:"item_count"`
	Subtotal          string                   `json:"subtotal"`
	Tax               string                   `json:"tax"`
	DeliveryFee       string                   `json:"delivery_fee"`
	Discount          string                   `json:"discount"`
	CreditsDiscount   string                   `json:"credits_discount"`
	Total             string                   `json:"total"`
	DiscountCode      string                   `json:"discount_code,omitempty"`
	CreditsEarned     int                      `json:"credits_earned"`
	CreditsUsed       int                      `json:"credits_used"`
	Status            entity.OrderStatus       `json:"status"`
	FulfillmentMethod entity.FulfillmentMethod `json:"fulfillment_method"`
	IsGuestOrder      bool                     `json:"is_guest_order"`
	EstimatedMinutes  int                      `json:"estimated_minutes"`
	DeliveryAddress   string                   `json:"delivery_address,omitempty"`
	VehicleInfo       string                   `json:"vehicle_info,omitempty"`
	PaymentReference  string                   `json:"payment_reference,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

func toOrderResponse(o *entity.Order) orderResponse {
	return orderResponse{
		ID:                o.ID,
		ShortID:           o.ShortID(),
		Lines:             toCartLineResponses(o.Lines),
		ItemCount:         o.ItemCount(),
		Subtotal:          money(o.Subtotal),
		Tax:               money(o.Tax),
		DeliveryFee:       money(o.DeliveryFee),
		Discount:          money(o.Discount),
		CreditsDiscount:   money(o.CreditsDiscount),
		Total:             money(o.Total),
		DiscountCode:      o.DiscountCode,
		CreditsEarned:     o.CreditsEarned,
		CreditsUsed:       o.CreditsUsed,
		Status:            o.Status,
		FulfillmentMethod: o.FulfillmentMethod,
		IsGuestOrder:      o.IsGuestOrder,
		EstimatedMinutes:  o.EstimatedMinutes,
		DeliveryAddress:   o.DeliveryAddress,
		VehicleInfo:       o.VehicleInfo,
		PaymentReference:  o.PaymentReference,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func toOrderResponses(orders []*entity.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}

	return out
}

type trackingStepResponse struct {
	Status      entity.OrderStatus `json:"status"`
	Label       string             `json:"label"`
	Description string             `json:"description"`
	Completed   bool               `json:"completed"`
	Current     bool               `json:"current"`
}

type trackingResponse struct {
	Order       orderResponse          `json:"order"`
	StatusLabel string                 `json:"status_label"`
	Steps       []trackingStepResponse `json:"steps"`
}

func toTrackingResponse(t *usecase.TrackingOutput) trackingResponse {
	resp := trackingResponse{
		Order:       toOrderResponse(t.Order),
		StatusLabel: t.StatusLabel,
		Steps:       make([]trackingStepResponse, 0, len(t.Steps)),
	}
	for _, s := range t.Steps {
		resp.Steps = append(resp.Steps, trackingStepResponse(s))
	}

	return resp
}

type tierResponse struct {
	Name       string   `json:"name"`
	MinCredits int      `json:"min_credits"`
	Perks      []string `json:"perks"`
}

type creditHistoryResponse struct {
	OrderID   uuid.UUID `json:"order_id"`
	Earned    int       `json:"earned"`
	Used      int       `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

type rewardsResponse struct {
	Credits  int                     `json:"credits"`
	Tier     tierResponse            `json:"tier"`
	NextTier *tierResponse           `json:"next_tier,omitempty"`
	Progress int                     `json:"progress"`
	History  []creditHistoryResponse `json:"history"`
}

func toRewardsResponse(r *usecase.RewardsOutput) rewardsResponse {
	resp := rewardsResponse{
		Credits:  r.Credits,
		Tier:     tierResponse(r.Tier),
		Progress: r.Progress,
		History:  make([]creditHistoryResponse, 0, len(r.History)),
	}
	if r.NextTier != nil {
		next := tierResponse(*r.NextTier)
		resp.NextTier = &next
	}
	for _, h := range r.History {
		resp.History = append(resp.History, creditHistoryResponse(h))
	}

	return resp
}
