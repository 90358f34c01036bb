package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
)

func newTestDashboard(b *stubBackend) *DashboardService {
	log := zerolog.Nop()
	rooms := NewRoomService(b, nil, log)
	users := NewUserService(b, nil, log)
	streams := NewStreamService(b, nil, log)
	subjects := NewSubjectService(b, nil, log)
	exams := NewExamService(b, nil, rooms, users, streams, subjects, log)
	return NewDashboardService(exams, users, subjects, rooms, streams, log)
}

func TestDashboardService_Student(t *testing.T) {
	b := newStubBackend()
	b.setGet(pathExams, fiveExams)
	b.setGet("/auth/streams/3", map[string]any{"id": 3, "nom": "SMI"})
	svc := newTestDashboard(b)

	sess := domain.NewSession("sid", "tok", domain.Identity{Role: domain.RoleStudent, DisplayName: "Yassine", StreamID: 3})
	sum := svc.Summary(domain.ContextWithSession(context.Background(), sess), sess)

	if sum.StreamName != "SMI" {
		t.Fatalf("expected stream name SMI, got %q", sum.StreamName)
	}
	if sum.ExamCount != 2 {
		t.Fatalf("expected 2 visible exams, got %d", sum.ExamCount)
	}
	if sum.UserCount != 0 || sum.RoomCount != 0 {
		t.Fatalf("admin counters must stay zero: %+v", sum)
	}
	if len(b.callsTo(http.MethodGet, pathUsers)) != 0 {
		t.Fatal("students must not trigger the user list")
	}
}

func TestDashboardService_Admin(t *testing.T) {
	b := newStubBackend()
	b.setGet(pathExams, fiveExams)
	b.setGet(pathUsers, []domain.User{{ID: 1}, {ID: 2}, {ID: 3}})
	b.setGet(pathSubjects, []domain.Subject{{ID: 1}, {ID: 2}})
	b.setGet(pathRooms, []domain.Room{{ID: 1}})
	svc := newTestDashboard(b)

	ctx := adminCtx()
	sum := svc.Summary(ctx, domain.SessionFromContext(ctx))

	want := domain.DashboardSummary{Role: domain.RoleAdmin, DisplayName: "Admin", ExamCount: 5, UserCount: 3, SubjectCount: 2, RoomCount: 1}
	if sum != want {
		t.Fatalf("unexpected summary:\n got %+v\nwant %+v", sum, want)
	}
}

func TestDashboardService_ExamFailureLeavesZero(t *testing.T) {
	b := newStubBackend()
	b.errs["GET "+pathExams] = &domain.BackendError{Status: http.StatusBadGateway}
	svc := newTestDashboard(b)

	ctx := adminCtx()
	sum := svc.Summary(ctx, domain.SessionFromContext(ctx))
	if sum.ExamCount != 0 || sum.DisplayName != "Admin" {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}
