package domain

import "encoding/json"

// Stream is an academic track grouping students, subjects and exams.
// The backend names the label field "nom"; "name" is accepted as well.
type Stream struct {
	ID   int64  `json:"id"`
	Name string `json:"nom"`
}

func (s *Stream) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID   int64  `json:"id"`
		Nom  string `json:"nom"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.ID = raw.ID
	s.Name = raw.Nom
	if s.Name == "" {
		s.Name = raw.Name
	}
	return nil
}

type StreamInput struct {
	Name string `json:"nom"`
}

// Subject belongs to exactly one stream.
type Subject struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	StreamID int64  `json:"stream_id"`
}

type SubjectInput struct {
	Name     string `json:"name"`
	StreamID int64  `json:"stream_id"`
}

type Room struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type RoomInput struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// SubjectGroup pairs a stream with the subjects attached to it.
type SubjectGroup struct {
	Stream   Stream
	Subjects []Subject
}

// GroupSubjects groups subjects under their stream, in stream order.
// Streams without subjects are skipped.
func GroupSubjects(streams []Stream, subjects []Subject) []SubjectGroup {
	byStream := make(map[int64][]Subject, len(streams))
	for _, s := range subjects {
		byStream[s.StreamID] = append(byStream[s.StreamID], s)
	}

	groups := make([]SubjectGroup, 0, len(streams))
	for _, st := range streams {
		if len(byStream[st.ID]) == 0 {
			continue
		}
		groups = append(groups, SubjectGroup{Stream: st, Subjects: byStream[st.ID]})
	}
	return groups
}

// StreamName returns the label of the stream with the given id, or "".
func StreamName(streams []Stream, id int64) string {
	for _, s := range streams {
		if s.ID == id {
			return s.Name
		}
	}
	return ""
}
