package enum

// --- Order lifecycle ---

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusDelivered = "delivered"
)

// --- Menu catalog ---

const (
	CategoryMain  = "main"
	CategorySide  = "side"
	CategoryDrink = "drink"
)

// --- User roles ---

const (
	RoleCustomer = "customer"
	RoleChef     = "chef"
)

// --- Websocket / mirror event types ---

const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventOrdersClear  = "orders.cleared"
)
