package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wemurs1/RoyalVilla/internal/common"
	"github.com/wemurs1/RoyalVilla/internal/server/models"
	villasrepo "github.com/wemurs1/RoyalVilla/internal/server/repositories/villas"
)

func TestVillaList(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{v: &fakeVillasRepo{
		listOut:   []*models.Villa{{ID: "v1", Name: "Royal Villa"}},
		listTotal: 7,
	}}
	s := NewVillaService(db, rm, newNopLogger())

	items, total, err := s.List(context.Background(), villasrepo.ListFilter{Search: "royal", Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, items, 1)
	assert.Equal(t, "v1", items[0].ID)

	rm.v.listErr = errBoom{}
	_, _, err = s.List(context.Background(), villasrepo.ListFilter{})
	assert.Error(t, err)
}

func TestVillaCreateUpdateDelete(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{v: &fakeVillasRepo{}}
	s := NewVillaService(db, rm, newNopLogger())

	created, err := s.Create(context.Background(), &models.Villa{Name: "Pool Villa", Rate: 200})
	require.NoError(t, err)
	assert.Equal(t, "Pool Villa", created.Name)

	require.NoError(t, s.Update(context.Background(), created))
	require.NoError(t, s.Delete(context.Background(), "v1"))

	rm.v.deleteErr = common.ErrorNotFound
	assert.ErrorIs(t, s.Delete(context.Background(), "missing"), common.ErrorNotFound)
}

func TestVillaGetByID(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{v: &fakeVillasRepo{getErr: common.ErrorNotFound}}
	s := NewVillaService(db, rm, newNopLogger())

	_, err := s.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
