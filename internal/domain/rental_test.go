package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRentalStatusSets(t *testing.T) {
	assert.True(t, RentalStatusPending.Blocks())
	assert.True(t, RentalStatusInProgress.Blocks())
	assert.True(t, RentalStatusCheckout.Blocks())
	assert.False(t, RentalStatusFinalized.Blocks())
	assert.False(t, RentalStatusCancelled.Blocks())

	assert.True(t, RentalStatusPending.Cancellable())
	assert.True(t, RentalStatusInProgress.Cancellable())
	assert.False(t, RentalStatusCheckout.Cancellable())

	assert.True(t, RentalStatusFinalized.Terminal())
	assert.True(t, RentalStatusCancelled.Terminal())
	assert.True(t, RentalStatusCheckout.Terminal())
	assert.False(t, RentalStatusInProgress.Terminal())
}
