package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanlog/beanlog/pkg/beanlog/internalerr"
	"github.com/beanlog/beanlog/pkg/beanlog/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndGetCafe(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.AddCafe(ctx, store.Cafe{
		Name:         "블루보틀 성수",
		LocationTags: []string{"서울", "성수"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	cafe, found, err := s.GetCafe(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, id, cafe.ID)
	assert.Equal(t, "블루보틀 성수", cafe.Name)
	assert.Equal(t, []string{"서울", "성수"}, cafe.LocationTags)
	assert.Nil(t, cafe.Coordinates)
	assert.Nil(t, cafe.Phone)
	assert.False(t, cafe.UpdatedAt.IsZero())
}

func TestAddCafeRequiresName(t *testing.T) {
	s := openTestStore(t)

	_, err := s.AddCafe(context.Background(), store.Cafe{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))
}

func TestGetCafeAbsent(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.GetCafe(context.Background(), "01HZZZZZZZZZZZZZZZZZZZZZZZ")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListCafesInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	names := []string{"첫번째", "두번째", "세번째"}
	for _, name := range names {
		_, err := s.AddCafe(ctx, store.Cafe{Name: name})
		require.NoError(t, err)
	}

	cafes, err := s.ListCafes(ctx)
	require.NoError(t, err)
	require.Len(t, cafes, 3)
	for i, name := range names {
		assert.Equal(t, name, cafes[i].Name)
	}
}

func TestUpdateCafePartial(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.AddCafe(ctx, store.Cafe{
		Name:    "프릳츠",
		Address: "원래 주소",
	})
	require.NoError(t, err)

	cat := "카페,디저트"
	phone := ""
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	err = s.UpdateCafe(ctx, id, store.Update{
		Category:    &cat,
		Phone:       &phone,
		Coordinates: &store.Coordinates{Latitude: 37.5636009, Longitude: 126.898106},
		UpdatedAt:   now,
	})
	require.NoError(t, err)

	cafe, found, err := s.GetCafe(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "원래 주소", cafe.Address, "nil field left untouched")
	assert.Equal(t, "카페,디저트", cafe.Category)
	require.NotNil(t, cafe.Phone)
	assert.Equal(t, "", *cafe.Phone, "empty phone persists as a string, not null")
	require.NotNil(t, cafe.Coordinates)
	assert.InDelta(t, 37.5636009, cafe.Coordinates.Latitude, 1e-9)
	assert.Equal(t, now, cafe.UpdatedAt.UTC())
}

func TestUpdateCafeNotFound(t *testing.T) {
	s := openTestStore(t)

	err := s.UpdateCafe(context.Background(), "missing-id", store.Update{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrNotFound))
}

func TestUpdateCafeIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.AddCafe(ctx, store.Cafe{Name: "모모스"})
	require.NoError(t, err)

	addr := "부산광역시 금정구"
	u := store.Update{Address: &addr, UpdatedAt: time.Now()}
	require.NoError(t, s.UpdateCafe(ctx, id, u))
	first, _, err := s.GetCafe(ctx, id)
	require.NoError(t, err)

	require.NoError(t, s.UpdateCafe(ctx, id, u))
	second, _, err := s.GetCafe(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, first.Address, second.Address)
	assert.Equal(t, first.Category, second.Category)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	id, err := s.AddCafe(ctx, store.Cafe{Name: "카페 어니언"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	cafe, found, err := s.GetCafe(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "카페 어니언", cafe.Name)
}
