// Package dbrouter selects between the two preconfigured database pools the
// kiosk deployment runs against: the café's on-site database (primary) and
// the development/off-site one (secondary). The router is constructed once at
// startup and passed by reference to every repository; there is no implicit
// global pool state.
package dbrouter

import (
	"strings"

	"github.com/khendev23/gap-cafe-type/pkg/database"
	"github.com/khendev23/gap-cafe-type/pkg/logger"
)

// Target names one of the two backing pools.
type Target int

const (
	TargetPrimary Target = iota
	TargetSecondary
)

func (t Target) String() string {
	if t == TargetSecondary {
		return "secondary"
	}
	return "primary"
}

// Config controls pool selection.
type Config struct {
	// Production pins every request to the primary pool.
	Production bool
	// PrimaryIPPrefix routes clients whose IP starts with this prefix to the
	// primary pool outside production. The café's access network hands out
	// addresses in a fixed block, which is what this matches.
	PrimaryIPPrefix string
}

// Router resolves a client IP to a pool target and hands out the pools.
// Selection is a pure function of the IP and the configured mode; the only
// mutable state lives inside database/sql itself.
type Router struct {
	cfg       Config
	primary   *database.DB
	secondary *database.DB
	logger    *logger.Logger
}

// New builds a router over the two pools. secondary may be nil when the
// off-site database is unreachable; every lookup then falls back to primary.
func New(cfg Config, primary, secondary *database.DB, log *logger.Logger) *Router {
	if cfg.PrimaryIPPrefix == "" {
		cfg.PrimaryIPPrefix = "49."
	}
	return &Router{
		cfg:       cfg,
		primary:   primary,
		secondary: secondary,
		logger:    log.WithComponent("dbrouter"),
	}
}

// Resolve maps a client IP onto a pool target. Resolved once per request by
// the handler and threaded through service and repository calls.
func (r *Router) Resolve(ip string) Target {
	if r.cfg.Production {
		return TargetPrimary
	}
	if strings.HasPrefix(ip, r.cfg.PrimaryIPPrefix) {
		return TargetPrimary
	}
	return TargetSecondary
}

// DB returns the pool for a target. A missing secondary pool falls back to
// primary so a dead off-site database never takes the kiosk down.
func (r *Router) DB(t Target) *database.DB {
	if t == TargetSecondary {
		if r.secondary != nil {
			return r.secondary
		}
		r.logger.Warn("Secondary pool unavailable, falling back to primary")
	}
	return r.primary
}

// Close closes both pools.
func (r *Router) Close() error {
	var firstErr error
	if r.primary != nil {
		if err := r.primary.Close(); err != nil {
			firstErr = err
		}
	}
	if r.secondary != nil {
		if err := r.secondary.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
