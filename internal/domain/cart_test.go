package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddItem_MergesExistingLine(t *testing.T) {
	cart, err := NewCart("cart1", "c1")
	require.NoError(t, err)

	require.NoError(t, cart.AddItem("p1", 2, 100))
	require.NoError(t, cart.AddItem("p1", 3, 100))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(5), cart.Items[0].Quantity)
}

func TestCart_AddItem_Invalid(t *testing.T) {
	cart, err := NewCart("cart1", "c1")
	require.NoError(t, err)

	assert.Error(t, cart.AddItem("", 1, 100))
	assert.Error(t, cart.AddItem("p1", 0, 100))
}

func TestCart_SetItemQuantity(t *testing.T) {
	cart, err := NewCart("cart1", "c1")
	require.NoError(t, err)
	require.NoError(t, cart.AddItem("p1", 2, 100))

	require.NoError(t, cart.SetItemQuantity("p1", 7))
	assert.Equal(t, int64(7), cart.Items[0].Quantity)
}

func TestCart_SetItemQuantity_ZeroRemovesLine(t *testing.T) {
	cart, err := NewCart("cart1", "c1")
	require.NoError(t, err)
	require.NoError(t, cart.AddItem("p1", 2, 100))
	require.NoError(t, cart.AddItem("p2", 1, 250))

	require.NoError(t, cart.SetItemQuantity("p1", 0))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
}

func TestCart_SetItemQuantity_MissingLine(t *testing.T) {
	cart, err := NewCart("cart1", "c1")
	require.NoError(t, err)

	assert.Error(t, cart.SetItemQuantity("p1", 3))
}

func TestCart_Clear(t *testing.T) {
	cart, err := NewCart("cart1", "c1")
	require.NoError(t, err)
	require.NoError(t, cart.AddItem("p1", 2, 100))
	assert.False(t, cart.IsEmpty())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
}
