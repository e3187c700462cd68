package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusPolicyTables(t *testing.T) {
	require.Equal(t, []string{"sale_total", "sale_date", "shipping", "sale_fee", "usd_to_jpy_rate"}, StatusClosed.RequiredFields())
	require.Equal(t, []string{"list_price", "list_type", "list_date"}, StatusListed.RequiredFields())
	require.Empty(t, StatusStorage.RequiredFields())
	require.Empty(t, StatusClosed.RequiredToBeNull())

	require.Contains(t, StatusSubmitted.RequiredToBeNull(), FieldGrade)
	require.Contains(t, StatusSubmitted.RequiredToBeNull(), FieldCert)
	require.NotContains(t, StatusListed.RequiredToBeNull(), FieldListPrice)

	// a field can never be both required and required to be null
	for _, status := range AllStatuses() {
		for _, field := range status.RequiredFields() {
			require.NotContains(t, status.RequiredToBeNull(), field, status.String())
		}
	}
}

func TestIntentAllowedStatuses(t *testing.T) {
	tests := []struct {
		intent  Intent
		allowed []Status
	}{
		{IntentGrade, []Status{StatusStorage, StatusVault, StatusOrder, StatusSubmitted}},
		{IntentSell, []Status{StatusStorage, StatusVault, StatusOrder, StatusSubmitted, StatusClosed, StatusListed}},
		{IntentKeep, []Status{StatusStorage, StatusVault, StatusOrder}},
		{IntentCrack, []Status{StatusStorage, StatusVault, StatusOrder}},
		{IntentTBD, []Status{StatusStorage, StatusVault, StatusOrder}},
	}
	for _, tt := range tests {
		require.ElementsMatch(t, tt.allowed, tt.intent.AllowedStatuses(), tt.intent.String())
	}
	require.False(t, IntentKeep.Allows(StatusListed))
	require.True(t, IntentSell.Allows(StatusClosed))
}

func TestItemUpdateApplyTo(t *testing.T) {
	price := 12.5
	item := ItemModel{Name: "Pikachu", ListPrice: &price, Status: StatusListed}

	ItemUpdate{}.ApplyTo(&item)
	require.Equal(t, "Pikachu", item.Name)
	require.NotNil(t, item.ListPrice)

	update := ItemUpdate{}
	update.ListPrice = someNil[float64]()
	update.Status = some(StatusStorage)
	update.ApplyTo(&item)
	require.Nil(t, item.ListPrice)
	require.Equal(t, StatusStorage, item.Status)
	require.Equal(t, "Pikachu", item.Name)
}
