package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

// DashboardService aggregates the read-only counters of the home page.
type DashboardService struct {
	exams    *ExamService
	users    *UserService
	subjects *SubjectService
	rooms    *RoomService
	streams  *StreamService
	log      zerolog.Logger
}

var _ ports.DashboardService = (*DashboardService)(nil)

func NewDashboardService(
	exams *ExamService,
	users *UserService,
	subjects *SubjectService,
	rooms *RoomService,
	streams *StreamService,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		exams:    exams,
		users:    users,
		subjects: subjects,
		rooms:    rooms,
		streams:  streams,
		log:      log,
	}
}

// Summary never fails: a failed fetch is logged and leaves its counter at
// zero, like a list page that keeps its previous state.
func (s *DashboardService) Summary(ctx context.Context, sess *domain.Session) domain.DashboardSummary {
	sum := domain.DashboardSummary{
		Role:        sess.Role(),
		DisplayName: sess.DisplayName(),
	}

	if id := sess.StreamID(); id != 0 {
		if st, err := s.streams.Get(ctx, id); err != nil {
			s.log.Warn().Err(err).Int64("stream_id", id).Msg("stream name lookup failed")
		} else {
			sum.StreamName = st.Name
		}
	}

	exams, err := s.exams.Visible(ctx, sess)
	if err != nil {
		s.log.Warn().Err(err).Msg("dashboard exam count failed")
		return sum
	}
	sum.ExamCount = len(exams)

	if sess.Role() != domain.RoleAdmin {
		return sum
	}

	var users, subjects, rooms int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.users.List(gctx)
		users = len(list)
		return err
	})
	g.Go(func() error {
		list, err := s.subjects.List(gctx)
		subjects = len(list)
		return err
	})
	g.Go(func() error {
		list, err := s.rooms.List(gctx)
		rooms = len(list)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Msg("dashboard admin counts failed")
		return sum
	}

	sum.UserCount = users
	sum.SubjectCount = subjects
	sum.RoomCount = rooms
	return sum
}
