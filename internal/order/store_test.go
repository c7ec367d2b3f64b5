package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []CartItem {
	return []CartItem{
		{ServiceID: "1", Name: "Shirt (Wash & Press)", UnitPrice: decimal.RequireFromString("3.50"), Quantity: 2},
	}
}

func testSpec() CreateSpec {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return CreateSpec{
		UserID:       "user-1",
		Items:        testItems(),
		TotalAmount:  decimal.RequireFromString("7.00"),
		PickupDate:   now,
		DeliveryDate: now.Add(24 * time.Hour),
		Address:      "123 Main St, Apt 4B",
	}
}

func TestStore_Create(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		store := NewStore()
		store.timeNow = func() time.Time { return fixedTime }

		created, err := store.Create(testSpec())
		require.NoError(t, err)

		assert.Equal(t, StatusPending, created.Status)
		assert.Equal(t, "user-1", created.UserID)
		assert.True(t, created.TotalAmount.Equal(decimal.RequireFromString("7.00")))
		assert.Equal(t, fixedTime, created.CreatedAt)
		assert.Regexp(t, `^ORD-\d{4}$`, created.ID)
	})

	t.Run("empty items", func(t *testing.T) {
		store := NewStore()
		spec := testSpec()
		spec.Items = nil

		_, err := store.Create(spec)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("zero quantity", func(t *testing.T) {
		store := NewStore()
		spec := testSpec()
		spec.Items[0].Quantity = 0

		_, err := store.Create(spec)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("negative total", func(t *testing.T) {
		store := NewStore()
		spec := testSpec()
		spec.TotalAmount = decimal.RequireFromString("-1")

		_, err := store.Create(spec)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("delivery before pickup", func(t *testing.T) {
		store := NewStore()
		spec := testSpec()
		spec.DeliveryDate = spec.PickupDate.Add(-time.Hour)

		_, err := store.Create(spec)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty address", func(t *testing.T) {
		store := NewStore()
		spec := testSpec()
		spec.Address = ""

		_, err := store.Create(spec)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("id collision regenerates", func(t *testing.T) {
		store := NewStore()
		suffixes := []int{42, 42, 43}
		store.randN = func(int) int {
			n := suffixes[0]
			suffixes = suffixes[1:]
			return n
		}

		first, err := store.Create(testSpec())
		require.NoError(t, err)
		second, err := store.Create(testSpec())
		require.NoError(t, err)

		assert.Equal(t, "ORD-0042", first.ID)
		assert.Equal(t, "ORD-0043", second.ID)
	})
}

func TestStore_List(t *testing.T) {
	store := NewStore()

	first, err := store.Create(testSpec())
	require.NoError(t, err)
	second, err := store.Create(testSpec())
	require.NoError(t, err)

	otherSpec := testSpec()
	otherSpec.UserID = "user-2"
	_, err = store.Create(otherSpec)
	require.NoError(t, err)

	orders := store.List("user-1")
	require.Len(t, orders, 2)
	// Most-recently-created first.
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	assert.Empty(t, store.List("unknown-user"))
}

func TestStore_ListReturnsCopies(t *testing.T) {
	store := NewStore()

	created, err := store.Create(testSpec())
	require.NoError(t, err)

	orders := store.List("user-1")
	orders[0].Status = StatusDelivered
	orders[0].Items[0].Quantity = 99

	fresh, ok := store.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, StatusPending, fresh.Status)
	assert.Equal(t, 2, fresh.Items[0].Quantity)
}

func TestStore_SetStatus(t *testing.T) {
	store := NewStore()

	created, err := store.Create(testSpec())
	require.NoError(t, err)

	t.Run("applies to live order", func(t *testing.T) {
		assert.True(t, store.SetStatus(created.ID, StatusPickedUp))

		got, ok := store.Get(created.ID)
		require.True(t, ok)
		assert.Equal(t, StatusPickedUp, got.Status)
	})

	t.Run("missing order is a no-op", func(t *testing.T) {
		assert.False(t, store.SetStatus("ORD-9999", StatusPickedUp))
	})

	t.Run("cancelled order is a no-op", func(t *testing.T) {
		require.NoError(t, store.Cancel(created.ID))

		assert.False(t, store.SetStatus(created.ID, StatusDelivered))

		got, ok := store.Get(created.ID)
		require.True(t, ok)
		assert.Equal(t, StatusCancelled, got.Status)
	})
}

func TestStore_Cancel(t *testing.T) {
	t.Run("pending order cancels", func(t *testing.T) {
		store := NewStore()
		created, err := store.Create(testSpec())
		require.NoError(t, err)

		require.NoError(t, store.Cancel(created.ID))

		got, _ := store.Get(created.ID)
		assert.Equal(t, StatusCancelled, got.Status)
	})

	t.Run("scheduled order cancels", func(t *testing.T) {
		store := NewStore()
		created, err := store.Create(testSpec())
		require.NoError(t, err)
		store.SetStatus(created.ID, StatusScheduled)

		assert.NoError(t, store.Cancel(created.ID))
	})

	t.Run("double cancel is idempotent success", func(t *testing.T) {
		store := NewStore()
		created, err := store.Create(testSpec())
		require.NoError(t, err)

		require.NoError(t, store.Cancel(created.ID))
		assert.NoError(t, store.Cancel(created.ID))

		got, _ := store.Get(created.ID)
		assert.Equal(t, StatusCancelled, got.Status)
	})

	t.Run("processing order rejects cancel", func(t *testing.T) {
		store := NewStore()
		created, err := store.Create(testSpec())
		require.NoError(t, err)
		store.SetStatus(created.ID, StatusProcessing)

		err = store.Cancel(created.ID)
		assert.ErrorIs(t, err, ErrInvalidState)

		got, _ := store.Get(created.ID)
		assert.Equal(t, StatusProcessing, got.Status)
	})

	t.Run("delivered order rejects cancel", func(t *testing.T) {
		store := NewStore()
		created, err := store.Create(testSpec())
		require.NoError(t, err)
		store.SetStatus(created.ID, StatusDelivered)

		err = store.Cancel(created.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("missing order", func(t *testing.T) {
		store := NewStore()
		assert.ErrorIs(t, store.Cancel("ORD-0000"), ErrNotFound)
	})
}

func TestStore_Seed(t *testing.T) {
	store := NewStore()

	now := time.Now().UTC()
	store.Seed([]Order{
		{ID: "ORD-1002", UserID: "user-1", Status: StatusProcessing, Items: testItems(), CreatedAt: now.Add(-2 * time.Hour), Address: "123 Main St"},
		{ID: "ORD-1001", UserID: "user-1", Status: StatusDelivered, Items: testItems(), CreatedAt: now.Add(-6 * 24 * time.Hour), Address: "123 Main St"},
	})

	orders := store.List("user-1")
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-1002", orders[0].ID)

	// Newly created orders land in front of seeded history.
	created, err := store.Create(testSpec())
	require.NoError(t, err)
	assert.Equal(t, created.ID, store.List("user-1")[0].ID)
}
