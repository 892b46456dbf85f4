package orchestrator

import (
	"auracx/internal/intent"
	"auracx/internal/knowledge"
	"auracx/internal/logging"
)

// recommendationRadiusKM is the tighter search radius used for product
// recommendations.
const recommendationRadiusKM = 3.0

// Dispatcher maps an intent category to a fixed sequence of repository
// lookups and assembles their results into an AgentData bag. Lookup misses
// are recorded as data; the dispatcher never aborts because one lookup
// came back empty.
type Dispatcher struct {
	stores    knowledge.StoreRepository
	inventory knowledge.InventoryRepository
	orders    knowledge.OrderRepository
	offers    knowledge.OffersRepository
	logger    logging.Logger
}

// NewDispatcher creates a dispatcher over the four knowledge repositories.
func NewDispatcher(
	stores knowledge.StoreRepository,
	inventory knowledge.InventoryRepository,
	orders knowledge.OrderRepository,
	offers knowledge.OffersRepository,
	logger logging.Logger,
) *Dispatcher {
	return &Dispatcher{
		stores:    stores,
		inventory: inventory,
		orders:    orders,
		offers:    offers,
		logger:    logging.OrNop(logger),
	}
}

// Dispatch runs the lookup sequence for the judged intent.
func (d *Dispatcher) Dispatch(judgment intent.Judgment, req ChatRequest) AgentData {
	data := AgentData{
		Intent:   judgment.Intent,
		Emotion:  judgment.Emotion,
		Entities: judgment.Entities,
	}

	switch judgment.Intent {
	case intent.StoreHours:
		nearby := d.stores.FindNearby(req.Location, knowledge.DefaultMaxDistanceKM)
		data.NearbyStores = nearby
		if len(nearby) > 0 {
			if hours, ok := d.stores.Hours(nearby[0].StoreID); ok {
				data.StoreHours = &hours
			}
		}

	case intent.StockCheck:
		product, ok := judgment.StringEntity("product")
		if !ok {
			product = "item"
		}
		nearby := d.stores.FindNearby(req.Location, knowledge.DefaultMaxDistanceKM)
		data.NearbyStores = nearby
		data.Inventory = make([]knowledge.Availability, 0, len(nearby))
		for _, store := range nearby {
			data.Inventory = append(data.Inventory, d.inventory.Availability(store.StoreID, product))
		}

	case intent.OrderStatus:
		orderID, ok := judgment.StringEntity("order_id")
		if !ok {
			// The classifier did not extract an order id; surface the
			// gap explicitly instead of leaving a silently empty bag.
			d.logger.Warn("order_status intent without order_id entity")
			data.MissingEntity = "order_id"
			break
		}
		status := d.orders.Status(orderID)
		data.Order = &status

	case intent.LocationRecommendation:
		data.NearbyStores = d.stores.FindNearby(req.Location, knowledge.DefaultMaxDistanceKM)

	case intent.ProductRecommendation:
		weather := ""
		if req.CustomerProfile != nil {
			weather = req.CustomerProfile.WeatherContext
		}
		data.Offers = d.offers.PersonalizedOffers(req.CustomerID, weather)
		data.NearbyStores = d.stores.FindNearby(req.Location, recommendationRadiusKM)

	default:
		// "other" and anything unrecognized: the bag carries only
		// intent, emotion and entities.
	}

	return data
}
