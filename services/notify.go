package services

// Merchant-side push message types.
const (
	NotifyNewOrder = 1
	NotifyReminder = 2
)

// Notifier pushes order events to connected merchant clients.
// Delivery is best-effort; order state never depends on it.
type Notifier interface {
	PushOrderMsg(typ int, orderID uint, content string)
}

// NopNotifier is used when no websocket hub is attached (tests, one-off tools).
type NopNotifier struct{}

func (NopNotifier) PushOrderMsg(int, uint, string) {}
