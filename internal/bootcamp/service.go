package bootcamp

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Store is the persistence boundary the service writes through. Implemented
// by *Repository; tests substitute an in-memory fake.
type Store interface {
	InsertUserInfo(ctx context.Context, u UserInfo) (UserInfo, error)
	InsertMemberInfo(ctx context.Context, m MemberInfo) (MemberInfo, error)
	ListQuestions(ctx context.Context) ([]Question, error)
	InsertQuestions(ctx context.Context, qs []Question) ([]Question, error)
	InsertAnswers(ctx context.Context, answers []Answer) error
	InsertFeedback(ctx context.Context, f Feedback) (Feedback, error)
	InsertNotification(ctx context.Context, n Notification) (Notification, error)
	ListNotifications(ctx context.Context) ([]Notification, error)
	InsertAssessment(ctx context.Context, a Assessment) (Assessment, error)
	GetAssessment(ctx context.Context, id string) (*Assessment, error)
	ListAssessments(ctx context.Context) ([]Assessment, error)
}

// TestSubmission carries a submitter's identity plus their per-question
// answers. Identity is merged into every answer document.
type TestSubmission struct {
	Username   string
	UID        string
	Course     string
	Department string
	Year       int
	Phone      string
	Answers    []AnswerInput
}

// AnswerInput is one answer within a test submission.
type AnswerInput struct {
	QuestionTitle string
	Answer        string
	TimeTaken     int
}

// Service validates submissions and persists them through the store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// RegisterUser persists one participant registration. Duplicate submissions
// create duplicate records; no uniqueness is enforced.
func (s *Service) RegisterUser(ctx context.Context, u UserInfo) (UserInfo, error) {
	if u.Username == "" || u.UID == "" {
		return UserInfo{}, errors.New("username and uid required")
	}
	return s.store.InsertUserInfo(ctx, u)
}

// RegisterMember persists one team-member record.
func (s *Service) RegisterMember(ctx context.Context, m MemberInfo) (MemberInfo, error) {
	if m.Username == "" || m.Designation == "" {
		return MemberInfo{}, errors.New("username and designation required")
	}
	return s.store.InsertMemberInfo(ctx, m)
}

// Questions returns every stored question, unfiltered.
func (s *Service) Questions(ctx context.Context) ([]Question, error) {
	return s.store.ListQuestions(ctx)
}

// AddQuestions inserts a question batch. The whole batch is rejected when it
// is empty or any element misses any of the seven required fields; nothing is
// written in that case.
func (s *Service) AddQuestions(ctx context.Context, qs []Question) ([]Question, error) {
	if len(qs) == 0 {
		return nil, errors.New("questions array must not be empty")
	}
	for i, q := range qs {
		if q.Title == "" || q.Description == "" ||
			q.Option1 == "" || q.Option2 == "" || q.Option3 == "" || q.Option4 == "" ||
			q.CorrectAnswer == "" {
			return nil, fmt.Errorf("question %d is missing required fields", i)
		}
	}
	return s.store.InsertQuestions(ctx, qs)
}

// SubmitTest stores one answer document per element of the submission,
// each stamped with the submitter identity and the submission time.
// Returns the number of answers written.
func (s *Service) SubmitTest(ctx context.Context, sub TestSubmission) (int, error) {
	if sub.Username == "" || sub.UID == "" {
		return 0, errors.New("username and uid required")
	}
	if len(sub.Answers) == 0 {
		return 0, errors.New("answers array must not be empty")
	}
	now := s.now().UTC()
	answers := make([]Answer, len(sub.Answers))
	for i, in := range sub.Answers {
		answers[i] = Answer{
			QuestionTitle: in.QuestionTitle,
			Answer:        in.Answer,
			TimeTaken:     in.TimeTaken,
			Username:      sub.Username,
			UID:           sub.UID,
			Course:        sub.Course,
			Department:    sub.Department,
			Year:          sub.Year,
			Phone:         sub.Phone,
			Timestamp:     now,
		}
	}
	if err := s.store.InsertAnswers(ctx, answers); err != nil {
		return 0, err
	}
	return len(answers), nil
}

// SubmitFeedback persists one feedback record. Rating is not range-checked.
func (s *Service) SubmitFeedback(ctx context.Context, f Feedback) (Feedback, error) {
	if f.Username == "" || f.UID == "" {
		return Feedback{}, errors.New("username and uid required")
	}
	return s.store.InsertFeedback(ctx, f)
}

// PostNotification stores a broadcast message with a server-assigned timestamp.
func (s *Service) PostNotification(ctx context.Context, message string) (Notification, error) {
	if message == "" {
		return Notification{}, errors.New("message required")
	}
	return s.store.InsertNotification(ctx, Notification{Message: message, Timestamp: s.now().UTC()})
}

// Notifications returns all broadcast messages, newest first.
func (s *Service) Notifications(ctx context.Context) ([]Notification, error) {
	return s.store.ListNotifications(ctx)
}

// AddAssessment persists one assessment record. The payload placement
// (disk path vs embedded bytes) is decided by the caller's blob backend.
func (s *Service) AddAssessment(ctx context.Context, a Assessment) (Assessment, error) {
	if a.Username == "" || a.UID == "" || a.Day == "" {
		return Assessment{}, errors.New("username, uid and day required")
	}
	if a.UploadedAt.IsZero() {
		a.UploadedAt = s.now().UTC()
	}
	return s.store.InsertAssessment(ctx, a)
}

// Assessment returns one assessment by id, payload included; nil when absent.
func (s *Service) Assessment(ctx context.Context, id string) (*Assessment, error) {
	return s.store.GetAssessment(ctx, id)
}

// Assessments returns assessment metadata without payloads.
func (s *Service) Assessments(ctx context.Context) ([]Assessment, error) {
	return s.store.ListAssessments(ctx)
}
