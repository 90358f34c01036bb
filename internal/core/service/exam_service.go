package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

// ExamService manages exam sessions and their convocations.
type ExamService struct {
	*resource[domain.Exam, domain.ExamInput]
	rooms    *RoomService
	users    *UserService
	streams  *StreamService
	subjects *SubjectService
}

var _ ports.ExamService = (*ExamService)(nil)

func NewExamService(
	backend ports.Backend,
	audit ports.AuditRecorder,
	rooms *RoomService,
	users *UserService,
	streams *StreamService,
	subjects *SubjectService,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		resource: newResource[domain.Exam, domain.ExamInput](backend, audit, "exams", pathExams, log),
		rooms:    rooms,
		users:    users,
		streams:  streams,
		subjects: subjects,
	}
}

// Visible fetches the full list, then filters it by the session's role.
func (s *ExamService) Visible(ctx context.Context, sess *domain.Session) ([]domain.Exam, error) {
	exams, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.VisibleExams(exams, sess), nil
}

// FormOptions fetches rooms, teachers and streams in parallel, then the
// subjects of streamID when one is selected.
func (s *ExamService) FormOptions(ctx context.Context, streamID int64) (*domain.ExamFormOptions, error) {
	opts := &domain.ExamFormOptions{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rooms, err := s.rooms.List(gctx)
		opts.Rooms = rooms
		return err
	})
	g.Go(func() error {
		users, err := s.users.List(gctx)
		opts.Teachers = domain.Teachers(users)
		return err
	})
	g.Go(func() error {
		streams, err := s.streams.List(gctx)
		opts.Streams = streams
		return err
	})
	if streamID != 0 {
		g.Go(func() error {
			subjects, err := s.subjects.ListByStream(gctx, streamID)
			opts.Subjects = subjects
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("exam form options: %w", err)
	}
	return opts, nil
}

// Convocation downloads the PDF notice of one student for one exam.
func (s *ExamService) Convocation(ctx context.Context, examID, studentID int64) (*ports.Download, error) {
	q := url.Values{"student_id": {strconv.FormatInt(studentID, 10)}}
	path := fmt.Sprintf("%s/%d/convocation?%s", pathExams, examID, q.Encode())

	dl, err := s.backend.Download(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("convocation of exam %d: %w", examID, err)
	}
	return dl, nil
}
