package admission

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eventry/admission/app"
	"github.com/eventry/admission/app/logger"
	"github.com/eventry/admission/capacity"
	"github.com/eventry/admission/keylock"
	"github.com/eventry/admission/util/periodiccall"
)

const CName = "admission.service"

var log = logger.NewNamed(CName)

var statsPeriod = time.Minute

// WriteFunc persists the admitting write, e.g. a new registration
// record. It runs inside the critical section for the resource key.
type WriteFunc func(ctx context.Context) error

// Result reports the admission decision. A full role is not an error:
// Admitted is false and Occupancy carries the snapshot that was
// observed inside the lock.
type Result struct {
	Admitted  bool
	Occupancy capacity.Occupancy
}

// Service serializes registration attempts per resource key and admits
// them against the role capacity: lock, read occupancy, check, write,
// invalidate, release.
type Service interface {
	Admit(ctx context.Context, resourceKey string, write WriteFunc, opts ...keylock.AcquireOption) (res Result, err error)
	app.ComponentRunnable
}

func New() Service {
	return &service{}
}

type service struct {
	keyLock  keylock.KeyLock
	capacity capacity.Service
	stats    periodiccall.PeriodicCall
}

func (s *service) Init(a *app.App) (err error) {
	s.keyLock = a.MustComponent(keylock.CName).(keylock.KeyLock)
	s.capacity = a.MustComponent(capacity.CName).(capacity.Service)
	return nil
}

func (s *service) Name() string {
	return CName
}

func (s *service) Run(ctx context.Context) (err error) {
	s.stats = periodiccall.New(statsPeriod, 0, func(ctx context.Context) error {
		log.Debug("admission stats",
			zap.Int("contendedKeys", s.keyLock.Len()),
			zap.Int("occupancyCache", s.capacity.CacheLen()))
		return nil
	}, log)
	s.stats.Run()
	return nil
}

func (s *service) Close(ctx context.Context) (err error) {
	if s.stats != nil {
		s.stats.Close()
	}
	return nil
}

func (s *service) Admit(ctx context.Context, resourceKey string, write WriteFunc, opts ...keylock.AcquireOption) (res Result, err error) {
	err = s.keyLock.WithLock(ctx, resourceKey, func(ctx context.Context) error {
		occ, err := s.capacity.GetRoleOccupancy(ctx, resourceKey)
		if err != nil {
			return err
		}
		res.Occupancy = occ
		if s.capacity.IsRoleFull(occ) {
			log.Debug("role is full", zap.String("resourceKey", resourceKey),
				zap.Int("current", occ.Current), zap.Int("limit", occ.Limit))
			return nil
		}
		if err = write(ctx); err != nil {
			return err
		}
		// the write changed the occupancy, drop the memoized snapshot
		// while we still hold the key
		s.capacity.InvalidateOccupancy(resourceKey)
		res.Admitted = true
		return nil
	}, opts...)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
