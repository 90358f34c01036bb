package service

// Backend paths, one canonical path per resource.
const (
	pathLogin           = "/auth/login"
	pathMe              = "/auth/me"
	pathRegisterStudent = "/auth/register/student"
	pathRegisterTeacher = "/auth/register/teacher"
	pathCreateAdmin     = "/auth/create-admin"
	pathStreams         = "/auth/streams"
	pathSubjects        = "/subjects"
	pathRooms           = "/rooms"
	pathUsers           = "/users"
	pathExams           = "/exams"
	pathExamSubjects    = "/exams/subjects"
)
