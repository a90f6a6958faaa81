package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountsMarshalAsNumbers(t *testing.T) {
	stats := OrderStats{
		TotalOrders:       2,
		TotalRevenue:      decimal.RequireFromString("199.90"),
		AverageOrderValue: decimal.RequireFromString("99.95"),
	}
	body, err := json.Marshal(stats)
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalOrders":2,"totalRevenue":199.9,"averageOrderValue":99.95}`, string(body))

	// Quoted amounts from the backend are still accepted.
	var back OrderStats
	require.NoError(t, json.Unmarshal([]byte(`{"totalRevenue":"10.50","averageOrderValue":5}`), &back))
	assert.True(t, back.TotalRevenue.Equal(decimal.RequireFromString("10.5")))
}
