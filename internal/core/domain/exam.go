package domain

import "encoding/json"

// Exam is a scheduled exam session. The backend may return either flat ids
// or embedded subject/room/stream records; both shapes populate the ids.
type Exam struct {
	ID        int64    `json:"id"`
	SubjectID int64    `json:"subject_id"`
	RoomID    int64    `json:"room_id"`
	TeacherID int64    `json:"teacher_id"`
	StreamID  int64    `json:"stream_id"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Subject   *Subject `json:"subject,omitempty"`
	Room      *Room    `json:"room,omitempty"`
	Stream    *Stream  `json:"stream,omitempty"`
}

func (e *Exam) UnmarshalJSON(b []byte) error {
	type plain Exam
	var raw plain
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = Exam(raw)
	if e.SubjectID == 0 && e.Subject != nil {
		e.SubjectID = e.Subject.ID
	}
	if e.RoomID == 0 && e.Room != nil {
		e.RoomID = e.Room.ID
	}
	if e.StreamID == 0 && e.Stream != nil {
		e.StreamID = e.Stream.ID
	}
	return nil
}

func (e Exam) SubjectName() string {
	if e.Subject != nil {
		return e.Subject.Name
	}
	return ""
}

func (e Exam) RoomName() string {
	if e.Room != nil {
		return e.Room.Name
	}
	return ""
}

func (e Exam) StreamName() string {
	if e.Stream != nil {
		return e.Stream.Name
	}
	return ""
}

// ExamInput is the create/update payload. A zero TeacherID is sent as null.
type ExamInput struct {
	SubjectID int64  `json:"subject_id"`
	RoomID    int64  `json:"room_id"`
	TeacherID *int64 `json:"teacher_id"`
	StreamID  int64  `json:"stream_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// ExamFormOptions holds the selector contents of the admin exam form.
type ExamFormOptions struct {
	Rooms    []Room
	Teachers []User
	Streams  []Stream
	Subjects []Subject
}

// VisibleExams applies the role visibility rule: students see the exams of
// their own stream, teachers the exams they supervise, admins all of them.
// Any other role sees none.
func VisibleExams(exams []Exam, s *Session) []Exam {
	var keep func(Exam) bool
	switch s.Role() {
	case RoleStudent:
		streamID := s.StreamID()
		keep = func(e Exam) bool { return e.StreamID == streamID }
	case RoleTeacher:
		userID := s.UserID()
		keep = func(e Exam) bool { return e.TeacherID == userID }
	case RoleAdmin:
		return exams
	default:
		return nil
	}

	visible := make([]Exam, 0, len(exams))
	for _, e := range exams {
		if keep(e) {
			visible = append(visible, e)
		}
	}
	return visible
}
