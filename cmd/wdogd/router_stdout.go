package main

import (
	"context"

	"github.com/cuemby/wdog/pkg/log"
	"github.com/rs/zerolog"
)

// stdoutRouter is a demo Router that only logs the weight changes it
// receives. No concrete production router ships in this module; the
// router is an external collaborator the real daemon would dial out to.
type stdoutRouter struct {
	logger zerolog.Logger
}

func newStdoutRouter() *stdoutRouter {
	return &stdoutRouter{logger: log.WithComponent("router")}
}

func (r *stdoutRouter) ChangeDst(ctx context.Context, address string, weight float64) error {
	r.logger.Info().Str("address", address).Float64("weight", weight).Msg("change_dst")
	return nil
}
