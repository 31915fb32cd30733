package models_test

import (
	"encoding/json"
	"testing"

	"littlelemon/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmetic(t *testing.T) {
	price := models.MustMoney("12.50")
	line := price.Times(2)
	assert.Equal(t, "25.00", line.String())

	total := line.Plus(models.MustMoney("5"))
	assert.True(t, total.EqualTo(models.MustMoney("30.00")))

	body, err := json.Marshal(struct {
		Total models.Money `json:"total"`
	}{total})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":"30.00"}`, string(body))

	_, err = models.NewMoney("twelve")
	assert.Error(t, err)
}

func TestOrderStatusLifecycle(t *testing.T) {
	assert.True(t, models.StatusPlaced.CanAdvanceTo(models.StatusOutForDelivery))
	assert.True(t, models.StatusPlaced.CanAdvanceTo(models.StatusDelivered))
	assert.True(t, models.StatusOutForDelivery.CanAdvanceTo(models.StatusOutForDelivery))
	assert.False(t, models.StatusDelivered.CanAdvanceTo(models.StatusPlaced))
	assert.True(t, models.StatusDelivered.Terminal())

	s, err := models.ParseOrderStatus("out_for_delivery")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOutForDelivery, s)

	_, err = models.ParseOrderStatus("shipped")
	assert.Error(t, err)
}
