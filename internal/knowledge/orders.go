package knowledge

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// OrderRepository manages order tracking. Lookups never error for missing
// keys; Found=false carries the miss.
type OrderRepository interface {
	// Status returns the state of one order.
	Status(orderID string) OrderStatus

	// CustomerOrders returns a customer's orders, newest first.
	CustomerOrders(customerID string) []OrderSummary

	// Create registers a new order and returns its receipt.
	Create(customerID string, items []string, storeID, notes string) OrderReceipt
}

// OrderRecord is the stored form of an order.
type OrderRecord struct {
	CustomerID string
	Items      []string
	Total      float64
	Status     string
	StoreID    string
	CreatedAt  time.Time
	PickupTime string
	Notes      string
}

type orderRepository struct {
	mu     sync.RWMutex
	orders map[string]OrderRecord
}

// NewOrderRepository builds a repository seeded with existing orders.
func NewOrderRepository(orders map[string]OrderRecord) OrderRepository {
	if orders == nil {
		orders = make(map[string]OrderRecord)
	}
	return &orderRepository{orders: orders}
}

func (r *orderRepository) Status(orderID string) OrderStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return OrderStatus{OrderID: orderID, Found: false}
	}

	return OrderStatus{
		OrderID:    orderID,
		Found:      true,
		Status:     order.Status,
		Items:      order.Items,
		Total:      order.Total,
		StoreID:    order.StoreID,
		CreatedAt:  order.CreatedAt,
		PickupTime: order.PickupTime,
		Notes:      order.Notes,
	}
}

func (r *orderRepository) CustomerOrders(customerID string) []OrderSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var summaries []OrderSummary
	for id, order := range r.orders {
		if order.CustomerID != customerID {
			continue
		}
		summaries = append(summaries, OrderSummary{
			OrderID:   id,
			Status:    order.Status,
			Items:     order.Items,
			Total:     order.Total,
			StoreID:   order.StoreID,
			CreatedAt: order.CreatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries
}

func (r *orderRepository) Create(customerID string, items []string, storeID, notes string) OrderReceipt {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Next numeric ID after the highest existing one.
	maxID := 1000
	for id := range r.orders {
		if n, err := strconv.Atoi(id); err == nil && n > maxID {
			maxID = n
		}
	}
	orderID := strconv.Itoa(maxID + 1)

	total := float64(len(items)) * 5.0 // flat mock pricing

	r.orders[orderID] = OrderRecord{
		CustomerID: customerID,
		Items:      items,
		Total:      total,
		Status:     "pending",
		StoreID:    storeID,
		CreatedAt:  time.Now(),
		PickupTime: "10-15 minutes",
		Notes:      notes,
	}

	return OrderReceipt{
		OrderID:        orderID,
		Status:         "created",
		Items:          items,
		Total:          total,
		EstimatedReady: "10-15 minutes",
	}
}
