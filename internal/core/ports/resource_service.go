package ports

import (
	"context"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
)

// ResourceService is the load/create/update/delete contract shared by every
// list-backed page. Mutations never patch local state; callers re-List.
type ResourceService[T, In any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, in In) error
	Update(ctx context.Context, id int64, in In) error
	Delete(ctx context.Context, id int64) error
}

type RoomService = ResourceService[domain.Room, domain.RoomInput]

type UserService = ResourceService[domain.User, domain.UserInput]

type StreamService interface {
	ResourceService[domain.Stream, domain.StreamInput]
	Get(ctx context.Context, id int64) (*domain.Stream, error)
}

type SubjectService interface {
	ResourceService[domain.Subject, domain.SubjectInput]
	ListByStream(ctx context.Context, streamID int64) ([]domain.Subject, error)
}

type ExamService interface {
	ResourceService[domain.Exam, domain.ExamInput]
	// Visible lists the exams the session's role may see.
	Visible(ctx context.Context, s *domain.Session) ([]domain.Exam, error)
	// FormOptions loads the admin form selectors. Subjects are only fetched
	// when streamID is non-zero.
	FormOptions(ctx context.Context, streamID int64) (*domain.ExamFormOptions, error)
	Convocation(ctx context.Context, examID, studentID int64) (*Download, error)
}

type DashboardService interface {
	Summary(ctx context.Context, s *domain.Session) domain.DashboardSummary
}
