package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/recapbot/internal/models"
)

// recapTimeout bounds one scheduled run, ESPN fetch and narrative included.
const recapTimeout = 2 * time.Minute

type Recapper interface {
	Recap(ctx context.Context, creds models.LeagueCredentials) (*models.Result, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	recapper    Recapper
	creds       models.LeagueCredentials
	sendMessage func(string) error
}

func NewScheduler(location string, recapper Recapper, creds models.LeagueCredentials, sendMessage func(string) error) (*Scheduler, error) {
	loc, err := time.LoadLocation(location)
	if err != nil {
		slog.Error("Failed to load location, using local time", "location", location, "error", err)
		loc = time.Local
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(loc),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		recapper:    recapper,
		creds:       creds,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	// Weekly recap - Tuesday 7:30, after Monday night football settles the week
	_, err := s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.sendRecap),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create recap job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendRecap() {
	ctx, cancel := context.WithTimeout(context.Background(), recapTimeout)
	defer cancel()

	result, err := s.recapper.Recap(ctx, s.creds)
	if err != nil {
		slog.Error("Failed to build weekly recap", "error", err)
		return
	}
	if err := s.sendMessage(result.Text()); err != nil {
		slog.Error("Failed to send weekly recap", "report_id", result.ID, "error", err)
	}
}
