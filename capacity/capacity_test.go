package capacity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/eventry/admission/capacity/mock_capacity"
)

var ctx = context.Background()

func TestService_GetRoleOccupancy(t *testing.T) {
	t.Run("sums members and guests", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_capacity.NewMockOccupancyStore(ctrl)
		store.EXPECT().RoleLimit(gomock.Any(), "e1:speaker").Return(10, true, nil)
		store.EXPECT().CountActiveMembers(gomock.Any(), "e1:speaker").Return(3, nil)
		store.EXPECT().CountActiveGuests(gomock.Any(), "e1:speaker").Return(2, nil)

		s := New(store)
		occ, err := s.GetRoleOccupancy(ctx, "e1:speaker")
		require.NoError(t, err)
		assert.Equal(t, Occupancy{Current: 5, Limit: 10, Limited: true}, occ)
	})
	t.Run("unbounded role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_capacity.NewMockOccupancyStore(ctrl)
		store.EXPECT().RoleLimit(gomock.Any(), "e1:visitor").Return(0, false, nil)
		store.EXPECT().CountActiveMembers(gomock.Any(), "e1:visitor").Return(100, nil)
		store.EXPECT().CountActiveGuests(gomock.Any(), "e1:visitor").Return(50, nil)

		s := New(store)
		occ, err := s.GetRoleOccupancy(ctx, "e1:visitor")
		require.NoError(t, err)
		assert.False(t, occ.Limited)
		assert.False(t, s.IsRoleFull(occ))
	})
	t.Run("second lookup is served from cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_capacity.NewMockOccupancyStore(ctrl)
		store.EXPECT().RoleLimit(gomock.Any(), "e1:speaker").Return(10, true, nil).Times(1)
		store.EXPECT().CountActiveMembers(gomock.Any(), "e1:speaker").Return(3, nil).Times(1)
		store.EXPECT().CountActiveGuests(gomock.Any(), "e1:speaker").Return(2, nil).Times(1)

		s := New(store)
		first, err := s.GetRoleOccupancy(ctx, "e1:speaker")
		require.NoError(t, err)
		second, err := s.GetRoleOccupancy(ctx, "e1:speaker")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, s.CacheLen())
	})
	t.Run("invalidation forces a re-query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_capacity.NewMockOccupancyStore(ctrl)
		store.EXPECT().RoleLimit(gomock.Any(), "e1:speaker").Return(10, true, nil).Times(2)
		gomock.InOrder(
			store.EXPECT().CountActiveMembers(gomock.Any(), "e1:speaker").Return(3, nil),
			store.EXPECT().CountActiveMembers(gomock.Any(), "e1:speaker").Return(4, nil),
		)
		store.EXPECT().CountActiveGuests(gomock.Any(), "e1:speaker").Return(2, nil).Times(2)

		s := New(store)
		occ, err := s.GetRoleOccupancy(ctx, "e1:speaker")
		require.NoError(t, err)
		assert.Equal(t, 5, occ.Current)
		s.InvalidateOccupancy("e1:speaker")
		occ, err = s.GetRoleOccupancy(ctx, "e1:speaker")
		require.NoError(t, err)
		assert.Equal(t, 6, occ.Current)
	})
	t.Run("unknown role is negatively cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_capacity.NewMockOccupancyStore(ctrl)
		store.EXPECT().RoleLimit(gomock.Any(), "e1:ghost").Return(0, false, ErrRoleNotFound).Times(1)

		s := New(store)
		_, err := s.GetRoleOccupancy(ctx, "e1:ghost")
		require.ErrorIs(t, err, ErrRoleNotFound)
		// the second call never reaches the store
		_, err = s.GetRoleOccupancy(ctx, "e1:ghost")
		require.ErrorIs(t, err, ErrRoleNotFound)
	})
	t.Run("store errors are not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_capacity.NewMockOccupancyStore(ctrl)
		tErr := errors.New("storage down")
		store.EXPECT().RoleLimit(gomock.Any(), "e1:speaker").Return(0, false, tErr).Times(2)

		s := New(store)
		_, err := s.GetRoleOccupancy(ctx, "e1:speaker")
		require.ErrorIs(t, err, tErr)
		_, err = s.GetRoleOccupancy(ctx, "e1:speaker")
		require.ErrorIs(t, err, tErr)
		assert.Equal(t, 0, s.CacheLen())
	})
}

func TestService_IsRoleFull(t *testing.T) {
	s := New(nil)
	assert.True(t, s.IsRoleFull(Occupancy{Current: 10, Limit: 10, Limited: true}))
	assert.True(t, s.IsRoleFull(Occupancy{Current: 11, Limit: 10, Limited: true}))
	assert.False(t, s.IsRoleFull(Occupancy{Current: 9, Limit: 10, Limited: true}))
	assert.False(t, s.IsRoleFull(Occupancy{Current: 1000, Limited: false}))
	// zero-capacity role admits nobody
	assert.True(t, s.IsRoleFull(Occupancy{Current: 0, Limit: 0, Limited: true}))
	// a negative current counts as zero
	assert.False(t, s.IsRoleFull(Occupancy{Current: -1, Limit: 1, Limited: true}))
	assert.True(t, s.IsRoleFull(Occupancy{Current: -1, Limit: 0, Limited: true}))
}

func TestInMemStore(t *testing.T) {
	store := NewInMemStore()
	store.SetRole("e1:speaker", 2, true)
	store.AddMember("e1:speaker")
	store.AddGuest("e1:speaker")

	s := New(store)
	occ, err := s.GetRoleOccupancy(ctx, "e1:speaker")
	require.NoError(t, err)
	assert.Equal(t, Occupancy{Current: 2, Limit: 2, Limited: true}, occ)
	assert.True(t, s.IsRoleFull(occ))

	_, _, err = store.RoleLimit(ctx, "e1:unknown")
	assert.ErrorIs(t, err, ErrRoleNotFound)
}
