package generator

import (
	"context"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/infrastructure/cache"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
)

// Sessions keeps one Controller per UI session, bounded by an LRU. An
// evicted session's controller is closed and its state discarded.
type Sessions struct {
	controllers *cache.LRU[string, *Controller]
	factory     func() *Controller
}

// NewSessions creates a session store holding at most capacity controllers
func NewSessions(capacity int, factory func() *Controller) *Sessions {
	s := &Sessions{factory: factory}
	s.controllers = cache.NewLRU(capacity, func(id string, ctrl *Controller) {
		ctrl.Close()
		logger.Debug("Session evicted", logger.LoggerInfo{
			ContextFunction: constant.CtxSessions,
			Data: map[string]interface{}{
				constant.LogSessionIDKey: id,
			},
		})
	})

	logger.Debug("Creating session store", logger.LoggerInfo{
		ContextFunction: constant.CtxSessions,
		Data: map[string]interface{}{
			constant.DataCapacity: capacity,
		},
	})
	return s
}

// Get returns the controller for id, creating it on first use
func (s *Sessions) Get(ctx context.Context, id string) *Controller {
	ctrl, created := s.controllers.GetOrCreate(id, s.factory)
	if created {
		logger.CtxDebug(ctx, "Session created", logger.LoggerInfo{
			ContextFunction: constant.CtxSessions,
			Data: map[string]interface{}{
				constant.DataSessions: s.controllers.Len(),
			},
		})
	}
	return ctrl
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	return s.controllers.Len()
}

// Close stops every live controller's timers
func (s *Sessions) Close() {
	s.controllers.Each(func(_ string, ctrl *Controller) {
		ctrl.Close()
	})
}
