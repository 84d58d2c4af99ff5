package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusSequence(t *testing.T) {
	assert.Equal(t,
		[]OrderStatus{StatusConfirmed, StatusPreparing, StatusReady, StatusOutForDelivery, StatusDelivered},
		StatusSequence(FulfillmentDelivery))
	assert.Equal(t,
		[]OrderStatus{StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered},
		StatusSequence(FulfillmentPickup))
	assert.Equal(t, StatusSequence(FulfillmentPickup), StatusSequence(FulfillmentDriveThru))
}

func TestOrder_AdvanceDeliveryWalksEveryStep(t *testing.T) {
	order := &Order{FulfillmentMethod: FulfillmentDelivery, Status: StatusConfirmed, EstimatedMinutes: 15}

	var observed []OrderStatus
	for range 4 {
		assert.True(t, order.Advance(3))
		observed = append(observed, order.Status)
	}

	assert.Equal(t, []OrderStatus{StatusPreparing, StatusReady, StatusOutForDelivery, StatusDelivered}, observed)
	assert.Equal(t, 3, order.EstimatedMinutes)
	assert.True(t, order.IsTerminal())

	assert.False(t, order.Advance(3))
	assert.Equal(t, StatusDelivered, order.Status)
	assert.Equal(t, 3, order.EstimatedMinutes)
}

func TestOrder_AdvancePickupSkipsCourier(t *testing.T) {
	order := &Order{FulfillmentMethod: FulfillmentPickup, Status: StatusConfirmed, EstimatedMinutes: 4}

	for range 3 {
		order.Advance(3)
	}

	assert.Equal(t, StatusDelivered, order.Status)
	assert.Equal(t, 0, order.EstimatedMinutes)
	assert.Equal(t, "Picked Up", order.StatusLabel())
}

func TestOrder_AdvanceRejectsForeignStatus(t *testing.T) {
	order := &Order{FulfillmentMethod: FulfillmentDriveThru, Status: StatusOutForDelivery}

	assert.False(t, order.Advance(3))
	assert.Equal(t, StatusOutForDelivery, order.Status)
}

func TestOrder_TrackingSteps(t *testing.T) {
	order := &Order{FulfillmentMethod: FulfillmentDriveThru, Status: StatusPreparing}

	steps := order.TrackingSteps()

	assert.Len(t, steps, 4)
	assert.True(t, steps[0].Completed)
	assert.True(t, steps[1].Current)
	assert.False(t, steps[2].Completed)
	assert.Equal(t, "Completed", steps[3].Label)
}
