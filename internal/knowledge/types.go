package knowledge

import "time"

// Location is a geographic coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Store is one retail location.
type Store struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	Hours     map[string]string // weekday name -> "6:00 AM - 9:00 PM"
	Phone     string
	Address   string
}

// StoreHours is the hours/contact record returned for a store lookup.
type StoreHours struct {
	StoreName string            `json:"store_name"`
	Hours     map[string]string `json:"hours"`
	Phone     string            `json:"phone"`
	Address   string            `json:"address"`
}

// OpenStatus reports whether a store is currently open.
type OpenStatus struct {
	StoreName string `json:"store_name,omitempty"`
	IsOpen    bool   `json:"is_open"`
	Hours     string `json:"hours,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NearbyStore is a store within a search radius, with computed distance.
type NearbyStore struct {
	StoreID    string  `json:"store_id"`
	Name       string  `json:"name"`
	DistanceKM float64 `json:"distance_km"`
	Address    string  `json:"address"`
	Phone      string  `json:"phone"`
}

// Availability is the result of a single stock check. A miss is a valid
// value, never an error.
type Availability struct {
	StoreID   string  `json:"store_id,omitempty"`
	Product   string  `json:"product"`
	Available bool    `json:"available"`
	Quantity  int     `json:"quantity,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Message   string  `json:"message,omitempty"`
}

// ProductLocation is one store that stocks a product.
type ProductLocation struct {
	StoreID   string  `json:"store_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// MenuItem is one product on a store menu.
type MenuItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	InStock  bool    `json:"in_stock"`
	Quantity int     `json:"quantity"`
}

// Menu lists everything a store sells.
type Menu struct {
	StoreID  string     `json:"store_id"`
	Products []MenuItem `json:"products"`
}

// OrderStatus is the result of an order lookup. Found=false is a valid
// "not found" value.
type OrderStatus struct {
	OrderID    string    `json:"order_id"`
	Found      bool      `json:"found"`
	Status     string    `json:"status,omitempty"`
	Items      []string  `json:"items,omitempty"`
	Total      float64   `json:"total,omitempty"`
	StoreID    string    `json:"store,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	PickupTime string    `json:"pickup_time,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// OrderSummary is one entry in a customer's order history.
type OrderSummary struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Items     []string  `json:"items"`
	Total     float64   `json:"total"`
	StoreID   string    `json:"store"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderReceipt confirms a newly created order.
type OrderReceipt struct {
	OrderID        string   `json:"order_id"`
	Status         string   `json:"status"`
	Items          []string `json:"items"`
	Total          float64  `json:"total"`
	EstimatedReady string   `json:"estimated_ready"`
}

// Offer is a coupon or promotion.
type Offer struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Discount    float64  `json:"discount"`
	Type        string   `json:"type"` // "percentage" or "fixed"
	MinPurchase float64  `json:"min_purchase"`
	ValidUntil  string   `json:"valid_until"`
	Categories  []string `json:"categories"`
}

// CouponValidation is the result of validating a coupon code.
type CouponValidation struct {
	Valid       bool    `json:"valid"`
	Code        string  `json:"code"`
	Description string  `json:"description,omitempty"`
	Discount    float64 `json:"discount,omitempty"`
	Type        string  `json:"type,omitempty"`
	Message     string  `json:"message,omitempty"`
}

// OrderItem is a priced line item used when applying an offer.
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OfferApplication is the result of applying an offer to an order.
type OfferApplication struct {
	Success        bool    `json:"success"`
	OfferCode      string  `json:"offer_code,omitempty"`
	OriginalTotal  float64 `json:"original_total,omitempty"`
	DiscountAmount float64 `json:"discount_amount,omitempty"`
	FinalTotal     float64 `json:"final_total,omitempty"`
	Description    string  `json:"description,omitempty"`
	Message        string  `json:"message,omitempty"`
}
