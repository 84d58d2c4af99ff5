package entity

// OrderStatus is a state of the fulfillment state machine.
type OrderStatus string

const (
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

var (
	deliverySequence = []OrderStatus{StatusConfirmed, StatusPreparing, StatusReady, StatusOutForDelivery, StatusDelivered}
	counterSequence  = []OrderStatus{StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered}
)

// StatusSequence returns the ordered states an order with the given method
// walks through. The first state is initial and the last is terminal.
func StatusSequence(method FulfillmentMethod) []OrderStatus {
	if method == FulfillmentDelivery {
		return append([]OrderStatus(nil), deliverySequence...)
	}

	return append([]OrderStatus(nil), counterSequence...)
}

func statusIndex(method FulfillmentMethod, status OrderStatus) int {
	seq := counterSequence
	if method == FulfillmentDelivery {
		seq = deliverySequence
	}
	for i, s := range seq {
		if s == status {
			return i
		}
	}

	return -1
}

// IsTerminal reports whether the order has reached the final state.
func (o *Order) IsTerminal() bool {
	seq := StatusSequence(o.FulfillmentMethod)
	return o.Status == seq[len(seq)-1]
}

// Advance moves the order exactly one state forward and lowers the estimated
// minutes by etaStep, floored at zero. It reports false and changes nothing
// when the order is terminal or in a state its method does not use.
func (o *Order) Advance(etaStep int) bool {
	seq := StatusSequence(o.FulfillmentMethod)
	idx := statusIndex(o.FulfillmentMethod, o.Status)
	if idx < 0 || idx == len(seq)-1 {
		return false
	}
	o.Status = seq[idx+1]
	o.EstimatedMinutes = max(0, o.EstimatedMinutes-etaStep)

	return true
}

// TrackingStep is one entry of the customer-facing timeline.
type TrackingStep struct {
	Status      OrderStatus
	Label       string
	Description string
	Completed   bool
	Current     bool
}

func stepLabel(method FulfillmentMethod, status OrderStatus) (label, description string) {
	switch status {
	case StatusConfirmed:
		return "Order Confirmed", "We've received your order"
	case StatusPreparing:
		return "Preparing", "Our baristas are crafting your drinks"
	case StatusReady:
		if method == FulfillmentDelivery {
			return "Ready", "Your order is packed and waiting for a courier"
		}
		return "Ready", "Your order is ready to collect"
	case StatusOutForDelivery:
		return "Out for Delivery", "Your order is on its way"
	case StatusDelivered:
		switch method {
		case FulfillmentPickup:
			return "Picked Up", "Enjoy your coffee!"
		case FulfillmentDriveThru:
			return "Completed", "Thanks for driving through!"
		default:
			return "Delivered", "Enjoy your coffee!"
		}
	}

	return string(status), ""
}

// TrackingSteps renders the order's status sequence with completion markers.
func (o *Order) TrackingSteps() []TrackingStep {
	seq := StatusSequence(o.FulfillmentMethod)
	current := statusIndex(o.FulfillmentMethod, o.Status)
	steps := make([]TrackingStep, len(seq))
	for i, status := range seq {
		label, desc := stepLabel(o.FulfillmentMethod, status)
		steps[i] = TrackingStep{
			Status:      status,
			Label:       label,
			Description: desc,
			Completed:   i <= current,
			Current:     i == current,
		}
	}

	return steps
}

// StatusLabel is the display label of the current status.
func (o *Order) StatusLabel() string {
	label, _ := stepLabel(o.FulfillmentMethod, o.Status)
	return label
}
