//go:generate mockgen -destination mock_capacity/mock_capacity.go github.com/eventry/admission/capacity OccupancyStore
package capacity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/eventry/admission/app"
	"github.com/eventry/admission/app/logger"
	"github.com/eventry/admission/lrucache"
)

const CName = "admission.capacity"

var log = logger.NewNamed(CName)

var (
	// ErrRoleNotFound is returned for a resource key with no configured role
	ErrRoleNotFound = errors.New("role not found")
)

// OccupancyStore is the persistence boundary: two independent active
// registration counts plus the configured role capacity. Implementations
// talk to the real storage, this package never persists anything itself.
type OccupancyStore interface {
	CountActiveMembers(ctx context.Context, resourceKey string) (count int, err error)
	CountActiveGuests(ctx context.Context, resourceKey string) (count int, err error)
	// RoleLimit returns the configured capacity of the role, limited is
	// false when the role is unbounded. Unknown roles return ErrRoleNotFound.
	RoleLimit(ctx context.Context, resourceKey string) (limit int, limited bool, err error)
}

// Occupancy is an ephemeral snapshot, produced fresh per lookup and
// never mutated in place
type Occupancy struct {
	Current int
	Limit   int
	Limited bool
}

// Service answers "how occupied is this role" and "is it full".
//
// The check-then-admit sequence built on these calls is only race-free
// inside a keylock critical section keyed by the same resourceKey; any
// write that changes occupancy must call InvalidateOccupancy within
// that same critical section.
type Service interface {
	// GetRoleOccupancy sums the store's member and guest counts for
	// resourceKey. Lookups are memoized through a bounded cache, unknown
	// roles are negatively cached.
	GetRoleOccupancy(ctx context.Context, resourceKey string) (occ Occupancy, err error)
	// IsRoleFull is pure: an unbounded role is never full, a negative
	// current counts as zero
	IsRoleFull(occ Occupancy) bool
	// InvalidateOccupancy drops the memoized occupancy of resourceKey
	InvalidateOccupancy(resourceKey string)
	// CacheLen returns the occupancy cache size
	CacheLen() int
	app.Component
}

func New(store OccupancyStore) Service {
	s := &service{store: store}
	s.cache = newOccupancyCache(Config{}, nil)
	return s
}

type service struct {
	store OccupancyStore
	cache *lrucache.LruCache[Occupancy]
}

func (s *service) Init(a *app.App) (err error) {
	cfg := a.MustComponent("config").(configGetter).GetCapacity()
	var opts []lrucache.Option[Occupancy]
	if m, ok := a.Component("common.metric").(registryProvider); ok {
		opts = append(opts, lrucache.WithPrometheus[Occupancy](m.Registry(), "admission", "occupancy"))
	}
	s.cache = newOccupancyCache(cfg, opts)
	return nil
}

func (s *service) Name() string {
	return CName
}

func newOccupancyCache(cfg Config, opts []lrucache.Option[Occupancy]) *lrucache.LruCache[Occupancy] {
	maxSize := cfg.CacheMaxSize
	if maxSize <= 0 {
		maxSize = 1024
	}
	ttl := time.Duration(cfg.CacheTTLMs) * time.Millisecond
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	negTTL := time.Duration(cfg.NegativeTTLMs) * time.Millisecond
	if negTTL <= 0 {
		negTTL = 30 * time.Second
	}
	opts = append(opts, lrucache.WithNegativeTTL[Occupancy](negTTL))
	return lrucache.New(maxSize, ttl, opts...)
}

func (s *service) GetRoleOccupancy(ctx context.Context, resourceKey string) (occ Occupancy, err error) {
	if cached, hit, negative := s.cache.Get(resourceKey); hit {
		if negative {
			return Occupancy{}, ErrRoleNotFound
		}
		return cached, nil
	}

	limit, limited, err := s.store.RoleLimit(ctx, resourceKey)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			s.cache.SetNegative(resourceKey)
		}
		return Occupancy{}, err
	}
	members, err := s.store.CountActiveMembers(ctx, resourceKey)
	if err != nil {
		return Occupancy{}, err
	}
	guests, err := s.store.CountActiveGuests(ctx, resourceKey)
	if err != nil {
		return Occupancy{}, err
	}

	occ = Occupancy{
		Current: members + guests,
		Limit:   limit,
		Limited: limited,
	}
	s.cache.Set(resourceKey, occ)
	log.Debug("occupancy computed",
		zap.String("resourceKey", resourceKey),
		zap.Int("current", occ.Current),
		zap.Int("limit", occ.Limit),
		zap.Bool("limited", occ.Limited))
	return occ, nil
}

func (s *service) IsRoleFull(occ Occupancy) bool {
	if !occ.Limited {
		return false
	}
	current := occ.Current
	if current < 0 {
		current = 0
	}
	return current >= occ.Limit
}

func (s *service) InvalidateOccupancy(resourceKey string) {
	s.cache.Delete(resourceKey)
}

func (s *service) CacheLen() int {
	return s.cache.Len()
}
