package knowledge

import (
	"fmt"
	"sort"
	"strings"
)

// InventoryRepository is a read-only view over per-store stock.
type InventoryRepository interface {
	// Availability checks whether a product is in stock at a store.
	Availability(storeID, product string) Availability

	// SearchProduct finds every store that stocks a product.
	SearchProduct(product string) []ProductLocation

	// Menu lists everything a store sells.
	Menu(storeID string) (Menu, bool)
}

// StockItem is one product's stock level at a store.
type StockItem struct {
	Quantity int
	Price    float64
}

type inventoryRepository struct {
	// storeID -> normalized product key -> stock
	stock map[string]map[string]StockItem
}

// NewInventoryRepository builds a repository over fixed stock data.
func NewInventoryRepository(stock map[string]map[string]StockItem) InventoryRepository {
	return &inventoryRepository{stock: stock}
}

// productKey normalizes a product name to its inventory key.
func productKey(product string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(product)), " ", "_")
}

func (r *inventoryRepository) Availability(storeID, product string) Availability {
	storeStock, ok := r.stock[storeID]
	if !ok {
		return Availability{
			StoreID:   storeID,
			Product:   product,
			Available: false,
			Message:   "store not found",
		}
	}

	item, ok := storeStock[productKey(product)]
	if !ok {
		return Availability{
			StoreID:   storeID,
			Product:   product,
			Available: false,
			Message:   "product not found in this store",
		}
	}

	if item.Quantity <= 0 {
		return Availability{
			StoreID:   storeID,
			Product:   product,
			Available: false,
			Price:     item.Price,
			Message:   "out of stock",
		}
	}

	return Availability{
		StoreID:   storeID,
		Product:   product,
		Available: true,
		Quantity:  item.Quantity,
		Price:     item.Price,
		Message:   fmt.Sprintf("in stock at %s", storeID),
	}
}

func (r *inventoryRepository) SearchProduct(product string) []ProductLocation {
	key := productKey(product)

	var results []ProductLocation
	for storeID, storeStock := range r.stock {
		item, ok := storeStock[key]
		if !ok || item.Quantity <= 0 {
			continue
		}
		results = append(results, ProductLocation{
			StoreID:   storeID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Available: true,
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].StoreID < results[j].StoreID })
	return results
}

func (r *inventoryRepository) Menu(storeID string) (Menu, bool) {
	storeStock, ok := r.stock[storeID]
	if !ok {
		return Menu{}, false
	}

	keys := make([]string, 0, len(storeStock))
	for k := range storeStock {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	menu := Menu{StoreID: storeID, Products: make([]MenuItem, 0, len(keys))}
	for _, key := range keys {
		item := storeStock[key]
		menu.Products = append(menu.Products, MenuItem{
			Name:     titleCase(strings.ReplaceAll(key, "_", " ")),
			Price:    item.Price,
			InStock:  item.Quantity > 0,
			Quantity: item.Quantity,
		})
	}
	return menu, true
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
