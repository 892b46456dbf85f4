package knowledge

import "strings"

// OffersRepository manages coupons and personalized promotions.
type OffersRepository interface {
	// PersonalizedOffers recommends offers for a customer, weighted by
	// weather context when available.
	PersonalizedOffers(customerID, weatherContext string) []Offer

	// ValidateCoupon checks whether a coupon code exists.
	ValidateCoupon(code string) CouponValidation

	// ApplyOffer applies a coupon to an order and computes the discount.
	ApplyOffer(items []OrderItem, code string) OfferApplication
}

type offersRepository struct {
	offers []Offer
}

// NewOffersRepository builds a repository over a fixed offer catalog.
func NewOffersRepository(offers []Offer) OffersRepository {
	return &offersRepository{offers: offers}
}

func (r *offersRepository) PersonalizedOffers(customerID, weatherContext string) []Offer {
	var recommended []Offer
	seen := make(map[string]bool)

	add := func(offer Offer) {
		if !seen[offer.ID] {
			seen[offer.ID] = true
			recommended = append(recommended, offer)
		}
	}

	if weatherContext != "" {
		weather := strings.ToLower(weatherContext)
		var category string
		switch {
		case strings.Contains(weather, "cold") || strings.Contains(weather, "winter"):
			category = "hot_drinks"
		case strings.Contains(weather, "hot") || strings.Contains(weather, "summer"):
			category = "cold_drinks"
		}
		if category != "" {
			for _, offer := range r.offers {
				if hasCategory(offer, category) || hasCategory(offer, "all") {
					add(offer)
				}
			}
		}
	}

	// Loyalty offers always apply.
	for _, offer := range r.offers {
		if strings.Contains(offer.ID, "LOYALTY") {
			add(offer)
		}
	}

	// Without any context, fall back to the most popular offers.
	if len(recommended) == 0 {
		limit := 3
		if len(r.offers) < limit {
			limit = len(r.offers)
		}
		recommended = append(recommended, r.offers[:limit]...)
	}

	return recommended
}

func (r *offersRepository) ValidateCoupon(code string) CouponValidation {
	for _, offer := range r.offers {
		if offer.Code == code {
			return CouponValidation{
				Valid:       true,
				Code:        code,
				Description: offer.Description,
				Discount:    offer.Discount,
				Type:        offer.Type,
			}
		}
	}
	return CouponValidation{
		Valid:   false,
		Code:    code,
		Message: "invalid or expired coupon code",
	}
}

func (r *offersRepository) ApplyOffer(items []OrderItem, code string) OfferApplication {
	var offer *Offer
	for i := range r.offers {
		if r.offers[i].Code == code {
			offer = &r.offers[i]
			break
		}
	}
	if offer == nil {
		return OfferApplication{Success: false, Message: "invalid offer code"}
	}

	var total float64
	for _, item := range items {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		total += item.Price * float64(qty)
	}

	var discount float64
	if offer.Type == "percentage" {
		discount = total * offer.Discount / 100
	} else {
		discount = offer.Discount
	}

	final := total - discount
	if final < 0 {
		final = 0
	}

	return OfferApplication{
		Success:        true,
		OfferCode:      code,
		OriginalTotal:  total,
		DiscountAmount: discount,
		FinalTotal:     final,
		Description:    offer.Description,
	}
}

func hasCategory(offer Offer, category string) bool {
	for _, c := range offer.Categories {
		if c == category {
			return true
		}
	}
	return false
}
