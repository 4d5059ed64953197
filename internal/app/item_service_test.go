package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.items.Create(ctx, CreateItemInput{Name: "  Lamp ", Category: "lighting"})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "Lamp", item.Name)

	_, err = f.items.Create(ctx, CreateItemInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	got, err := f.items.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "lighting", got.Category)

	_, err = f.items.Get(ctx, item.ID+10)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}
