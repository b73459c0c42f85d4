package cart

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// mapStorage implements Storage on a plain map for testing
type mapStorage struct {
	data    map[string]string
	readErr error
}

func newMapStorage() *mapStorage {
	return &mapStorage{data: make(map[string]string)}
}

func (m *mapStorage) Get(_ context.Context, token string) (string, error) {
	if m.readErr != nil {
		return "", m.readErr
	}
	return m.data[token], nil
}

func (m *mapStorage) Set(_ context.Context, token string, payload string) error {
	m.data[token] = payload
	return nil
}

func (m *mapStorage) Del(_ context.Context, token string) error {
	delete(m.data, token)
	return nil
}

func newTestStore(storage Storage) *Store {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewStore(storage, log)
}

var phone = &catalog.Product{
	ID:       1,
	Name:     "iPhone 14 Pro",
	ImageURL: "https://cdn.example.com/iphone.jpg",
	Price:    800000,
	InStock:  true,
}

func TestGet_MissingCartIsEmpty(t *testing.T) {
	store := newTestStore(newMapStorage())

	c := store.Get(context.Background(), "nobody")

	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Items)
}

func TestGet_CorruptPayloadIsEmpty(t *testing.T) {
	storage := newMapStorage()
	storage.data["tok"] = "{not json"
	store := newTestStore(storage)

	c := store.Get(context.Background(), "tok")

	assert.True(t, c.IsEmpty())
}

func TestGet_ReadErrorIsEmpty(t *testing.T) {
	storage := newMapStorage()
	storage.readErr = errors.New("connection refused")
	store := newTestStore(storage)

	c := store.Get(context.Background(), "tok")

	assert.True(t, c.IsEmpty())
}

func TestAdd_MergesSameProduct(t *testing.T) {
	store := newTestStore(newMapStorage())
	ctx := context.Background()

	_, err := store.Add(ctx, "tok", phone, 2)
	require.NoError(t, err)

	c, err := store.Add(ctx, "tok", phone, 3)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestAdd_CoercesQuantityToOne(t *testing.T) {
	store := newTestStore(newMapStorage())

	c, err := store.Add(context.Background(), "tok", phone, -3)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestAdd_SnapshotsProductFields(t *testing.T) {
	store := newTestStore(newMapStorage())

	c, err := store.Add(context.Background(), "tok", phone, 1)
	require.NoError(t, err)

	item := c.Items[0]
	assert.Equal(t, phone.ID, item.ProductID)
	assert.Equal(t, phone.Name, item.Name)
	assert.Equal(t, phone.ImageURL, item.ImageURL)
	assert.Equal(t, phone.Price, item.Price)
}

func TestTotals_SumAcrossItems(t *testing.T) {
	store := newTestStore(newMapStorage())
	ctx := context.Background()

	_, err := store.Add(ctx, "tok", phone, 2)
	require.NoError(t, err)

	c := store.Get(ctx, "tok")
	totals := c.Totals()

	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, int64(1600000), totals.Subtotal)
}

func TestUpdateQuantity_SetsAbsoluteValue(t *testing.T) {
	store := newTestStore(newMapStorage())
	ctx := context.Background()

	_, err := store.Add(ctx, "tok", phone, 2)
	require.NoError(t, err)

	c, err := store.UpdateQuantity(ctx, "tok", phone.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, 7, c.Items[0].Quantity)
}

func TestUpdateQuantity_ZeroOrNegativeRemoves(t *testing.T) {
	store := newTestStore(newMapStorage())
	ctx := context.Background()

	for _, qty := range []int{0, -5} {
		_, err := store.Add(ctx, "tok", phone, 2)
		require.NoError(t, err)

		c, err := store.UpdateQuantity(ctx, "tok", phone.ID, qty)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	}
}

func TestUpdateQuantity_AbsentProductFails(t *testing.T) {
	store := newTestStore(newMapStorage())

	_, err := store.UpdateQuantity(context.Background(), "tok", 999, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRemove_AbsentProductIsNoOp(t *testing.T) {
	store := newTestStore(newMapStorage())
	ctx := context.Background()

	_, err := store.Add(ctx, "tok", phone, 1)
	require.NoError(t, err)

	c, err := store.Remove(ctx, "tok", 999)
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}

func TestClear_EmptiesStorage(t *testing.T) {
	storage := newMapStorage()
	store := newTestStore(storage)
	ctx := context.Background()

	_, err := store.Add(ctx, "tok", phone, 1)
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, "tok"))

	assert.Empty(t, storage.data)
	assert.True(t, store.Get(ctx, "tok").IsEmpty())
}

func TestStore_MutationsPersistAcrossReads(t *testing.T) {
	storage := newMapStorage()
	ctx := context.Background()

	writer := newTestStore(storage)
	_, err := writer.Add(ctx, "tok", phone, 2)
	require.NoError(t, err)

	reader := newTestStore(storage)
	c := reader.Get(ctx, "tok")

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestNewToken_Unique(t *testing.T) {
	assert.NotEqual(t, NewToken(), NewToken())
}
