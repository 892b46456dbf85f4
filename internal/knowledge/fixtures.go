package knowledge

import "time"

// FixtureStores returns the built-in store database.
func FixtureStores() []Store {
	return []Store{
		{
			ID:        "starbucks_downtown",
			Name:      "Starbucks Downtown",
			Latitude:  40.7128,
			Longitude: -74.0060,
			Hours: map[string]string{
				"monday":    "6:00 AM - 9:00 PM",
				"tuesday":   "6:00 AM - 9:00 PM",
				"wednesday": "6:00 AM - 9:00 PM",
				"thursday":  "6:00 AM - 9:00 PM",
				"friday":    "6:00 AM - 10:00 PM",
				"saturday":  "7:00 AM - 10:00 PM",
				"sunday":    "7:00 AM - 9:00 PM",
			},
			Phone:   "+1-555-0101",
			Address: "123 Main St, New York, NY",
		},
		{
			ID:        "starbucks_phoenix",
			Name:      "Starbucks Phoenix",
			Latitude:  33.4484,
			Longitude: -112.0742,
			Hours: map[string]string{
				"monday":    "5:30 AM - 10:00 PM",
				"tuesday":   "5:30 AM - 10:00 PM",
				"wednesday": "5:30 AM - 10:00 PM",
				"thursday":  "5:30 AM - 10:00 PM",
				"friday":    "5:30 AM - 11:00 PM",
				"saturday":  "6:00 AM - 11:00 PM",
				"sunday":    "6:00 AM - 10:00 PM",
			},
			Phone:   "+1-555-0102",
			Address: "456 Central Ave, Phoenix, AZ",
		},
		{
			ID:        "starbucks_la",
			Name:      "Starbucks Los Angeles",
			Latitude:  34.0522,
			Longitude: -118.2437,
			Hours: map[string]string{
				"monday":    "5:00 AM - 9:00 PM",
				"tuesday":   "5:00 AM - 9:00 PM",
				"wednesday": "5:00 AM - 9:00 PM",
				"thursday":  "5:00 AM - 9:00 PM",
				"friday":    "5:00 AM - 10:00 PM",
				"saturday":  "6:00 AM - 10:00 PM",
				"sunday":    "6:00 AM - 9:00 PM",
			},
			Phone:   "+1-555-0103",
			Address: "789 Sunset Blvd, Los Angeles, CA",
		},
	}
}

// FixtureInventory returns the built-in stock database.
func FixtureInventory() map[string]map[string]StockItem {
	return map[string]map[string]StockItem{
		"starbucks_downtown": {
			"hot_cocoa":   {Quantity: 50, Price: 4.95},
			"coffee":      {Quantity: 100, Price: 2.95},
			"latte":       {Quantity: 75, Price: 5.45},
			"cappuccino":  {Quantity: 60, Price: 5.45},
			"iced_coffee": {Quantity: 40, Price: 3.45},
			"pastry":      {Quantity: 120, Price: 5.99},
		},
		"starbucks_phoenix": {
			"hot_cocoa":   {Quantity: 80, Price: 4.95},
			"coffee":      {Quantity: 150, Price: 2.95},
			"latte":       {Quantity: 120, Price: 5.45},
			"cappuccino":  {Quantity: 100, Price: 5.45},
			"iced_coffee": {Quantity: 50, Price: 3.45},
			"pastry":      {Quantity: 200, Price: 5.99},
		},
		"starbucks_la": {
			"hot_cocoa":   {Quantity: 60, Price: 4.95},
			"coffee":      {Quantity: 120, Price: 2.95},
			"latte":       {Quantity: 90, Price: 5.45},
			"cappuccino":  {Quantity: 80, Price: 5.45},
			"iced_coffee": {Quantity: 30, Price: 3.45},
			"pastry":      {Quantity: 150, Price: 5.99},
		},
	}
}

// FixtureOrders returns the built-in order database. Timestamps are
// relative to now so "recent" orders stay recent.
func FixtureOrders() map[string]OrderRecord {
	now := time.Now()
	return map[string]OrderRecord{
		"1001": {
			CustomerID: "cust_001",
			Items:      []string{"Hot Cocoa", "Pastry"},
			Total:      10.94,
			Status:     "ready_for_pickup",
			StoreID:    "starbucks_downtown",
			CreatedAt:  now.Add(-2 * time.Hour),
			PickupTime: "2:00 PM today",
			Notes:      "Extra hot",
		},
		"1002": {
			CustomerID: "cust_002",
			Items:      []string{"Latte", "Croissant"},
			Total:      12.45,
			Status:     "in_progress",
			StoreID:    "starbucks_phoenix",
			CreatedAt:  now.Add(-15 * time.Minute),
			PickupTime: "5 minutes",
			Notes:      "Oat milk",
		},
		"1234": {
			CustomerID: "cust_001",
			Items:      []string{"Cappuccino", "Pastry"},
			Total:      11.44,
			Status:     "ready_for_pickup",
			StoreID:    "starbucks_phoenix",
			CreatedAt:  now.Add(-1 * time.Hour),
			PickupTime: "Now",
			Notes:      "No foam",
		},
		"1003": {
			CustomerID: "cust_003",
			Items:      []string{"Iced Coffee"},
			Total:      3.45,
			Status:     "completed",
			StoreID:    "starbucks_la",
			CreatedAt:  now.Add(-24 * time.Hour),
			PickupTime: "Yesterday",
			Notes:      "Extra ice",
		},
	}
}

// FixtureOffers returns the built-in offer catalog.
func FixtureOffers() []Offer {
	return []Offer{
		{
			ID:          "WELCOME10",
			Code:        "WELCOME10",
			Description: "10% off first order",
			Discount:    10,
			Type:        "percentage",
			MinPurchase: 5.0,
			ValidUntil:  "2026-12-31",
			Categories:  []string{"all"},
		},
		{
			ID:          "HOT_COCOA_COUPON",
			Code:        "HOT10",
			Description: "Hot Cocoa 10% coupon",
			Discount:    10,
			Type:        "percentage",
			MinPurchase: 0,
			ValidUntil:  "2026-12-31",
			Categories:  []string{"hot_drinks"},
		},
		{
			ID:          "SUMMER_COLD",
			Code:        "COLD15",
			Description: "15% off cold beverages",
			Discount:    15,
			Type:        "percentage",
			MinPurchase: 3.0,
			ValidUntil:  "2026-12-31",
			Categories:  []string{"cold_drinks"},
		},
		{
			ID:          "PASTRY_DEAL",
			Code:        "PASTRY20",
			Description: "$2 off any pastry",
			Discount:    2.0,
			Type:        "fixed",
			MinPurchase: 0,
			ValidUntil:  "2026-12-31",
			Categories:  []string{"pastries"},
		},
		{
			ID:          "LOYALTY_REWARD",
			Code:        "LOYALTY15",
			Description: "15% loyalty reward for frequent visitors",
			Discount:    15,
			Type:        "percentage",
			MinPurchase: 10.0,
			ValidUntil:  "2026-12-31",
			Categories:  []string{"all"},
		},
	}
}
