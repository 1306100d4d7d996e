package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic session sweep that cancels dialogs left idle
// for too long.
type Scheduler struct {
	cron      *cron.Cron
	ctx       context.Context
	cancel    context.CancelFunc
	sweepFunc func(ctx context.Context)
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetSweepFunction sets the callback invoked on every sweep tick.
func (s *Scheduler) SetSweepFunction(f func(ctx context.Context)) {
	s.sweepFunc = f
}

func (s *Scheduler) Start() error {
	if s.sweepFunc == nil {
		log.Println("⚠️ Sweep function not set, idle sessions will never expire")
		return nil
	}

	_, err := s.cron.AddFunc("@every 1m", func() {
		s.sweepFunc(s.ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("📅 Session sweep scheduled every minute")
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 Scheduler stopped")
}
