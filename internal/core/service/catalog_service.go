package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

// StreamService manages streams (filières).
type StreamService struct {
	*resource[domain.Stream, domain.StreamInput]
}

var _ ports.StreamService = (*StreamService)(nil)

func NewStreamService(backend ports.Backend, audit ports.AuditRecorder, log zerolog.Logger) *StreamService {
	return &StreamService{newResource[domain.Stream, domain.StreamInput](backend, audit, "streams", pathStreams, log)}
}

// SubjectService manages subjects (matières).
type SubjectService struct {
	*resource[domain.Subject, domain.SubjectInput]
}

var _ ports.SubjectService = (*SubjectService)(nil)

func NewSubjectService(backend ports.Backend, audit ports.AuditRecorder, log zerolog.Logger) *SubjectService {
	return &SubjectService{newResource[domain.Subject, domain.SubjectInput](backend, audit, "subjects", pathSubjects, log)}
}

// ListByStream returns exactly the subjects of one stream.
func (s *SubjectService) ListByStream(ctx context.Context, streamID int64) ([]domain.Subject, error) {
	q := url.Values{"stream_id": {strconv.FormatInt(streamID, 10)}}

	var out []domain.Subject
	if err := s.backend.Get(ctx, pathExamSubjects+"?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("list subjects of stream %d: %w", streamID, err)
	}
	return out, nil
}

// RoomService manages rooms (salles).
type RoomService struct {
	*resource[domain.Room, domain.RoomInput]
}

var _ ports.RoomService = (*RoomService)(nil)

func NewRoomService(backend ports.Backend, audit ports.AuditRecorder, log zerolog.Logger) *RoomService {
	return &RoomService{newResource[domain.Room, domain.RoomInput](backend, audit, "rooms", pathRooms, log)}
}
