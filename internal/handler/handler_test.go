package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bootcamp/internal/blob"
	"bootcamp/internal/bootcamp"
	"bootcamp/internal/queue"
)

type memStore struct {
	users         []bootcamp.UserInfo
	members       []bootcamp.MemberInfo
	questions     []bootcamp.Question
	answers       []bootcamp.Answer
	feedbacks     []bootcamp.Feedback
	notifications []bootcamp.Notification
	assessments   []bootcamp.Assessment
}

func (f *memStore) InsertUserInfo(_ context.Context, u bootcamp.UserInfo) (bootcamp.UserInfo, error) {
	u.ID = primitive.NewObjectID()
	f.users = append(f.users, u)
	return u, nil
}

func (f *memStore) InsertMemberInfo(_ context.Context, m bootcamp.MemberInfo) (bootcamp.MemberInfo, error) {
	m.ID = primitive.NewObjectID()
	f.members = append(f.members, m)
	return m, nil
}

func (f *memStore) ListQuestions(_ context.Context) ([]bootcamp.Question, error) {
	return f.questions, nil
}

func (f *memStore) InsertQuestions(_ context.Context, qs []bootcamp.Question) ([]bootcamp.Question, error) {
	for i := range qs {
		qs[i].ID = primitive.NewObjectID()
	}
	f.questions = append(f.questions, qs...)
	return qs, nil
}

func (f *memStore) InsertAnswers(_ context.Context, answers []bootcamp.Answer) error {
	f.answers = append(f.answers, answers...)
	return nil
}

func (f *memStore) InsertFeedback(_ context.Context, fb bootcamp.Feedback) (bootcamp.Feedback, error) {
	fb.ID = primitive.NewObjectID()
	f.feedbacks = append(f.feedbacks, fb)
	return fb, nil
}

func (f *memStore) InsertNotification(_ context.Context, n bootcamp.Notification) (bootcamp.Notification, error) {
	n.ID = primitive.NewObjectID()
	f.notifications = append(f.notifications, n)
	return n, nil
}

func (f *memStore) ListNotifications(_ context.Context) ([]bootcamp.Notification, error) {
	out := make([]bootcamp.Notification, len(f.notifications))
	copy(out, f.notifications)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (f *memStore) InsertAssessment(_ context.Context, a bootcamp.Assessment) (bootcamp.Assessment, error) {
	a.ID = primitive.NewObjectID()
	f.assessments = append(f.assessments, a)
	return a, nil
}

func (f *memStore) GetAssessment(_ context.Context, id string) (*bootcamp.Assessment, error) {
	for _, a := range f.assessments {
		if a.ID.Hex() == id {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (f *memStore) ListAssessments(_ context.Context) ([]bootcamp.Assessment, error) {
	out := make([]bootcamp.Assessment, len(f.assessments))
	for i, a := range f.assessments {
		a.Data = nil
		out[i] = a
	}
	return out, nil
}

func newTestRouter(t *testing.T, store *memStore, storage blob.Storage) (*gin.Engine, *queue.InMemory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if storage == nil {
		var err error
		storage, err = blob.NewDisk(t.TempDir())
		require.NoError(t, err)
	}

	q := queue.NewInMemory(16)
	h := New(bootcamp.NewService(store), storage, q)

	r := gin.New()
	r.POST("/submit-info", h.SubmitInfo)
	r.POST("/submit-memberinfo", h.SubmitMemberInfo)
	r.POST("/submit-test", h.SubmitTest)
	r.POST("/submit-feedback", h.SubmitFeedback)
	r.POST("/upload-assessment", h.UploadAssessment)
	api := r.Group("/api")
	api.GET("/questions", h.Questions)
	api.POST("/questions", h.AddQuestions)
	api.GET("/notifications", h.Notifications)
	api.POST("/uploadContent", h.UploadContent)
	api.GET("/assessments", h.Assessments)
	api.GET("/assessments/:id", h.GetAssessment)
	return r, q
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitInfo(t *testing.T) {
	store := &memStore{}
	r, _ := newTestRouter(t, store, nil)

	w := postJSON(r, "/submit-info", `{
		"username":"alice","uid":"21BCS001","course":"CSE",
		"department":"Engg","year":2,"phone":"9999999999","email":"alice@example.com"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.users, 1)
	require.Equal(t, "alice", store.users[0].Username)
	require.Equal(t, 2, store.users[0].Year)

	// Missing email rejects the submission.
	w = postJSON(r, "/submit-info", `{
		"username":"bob","uid":"21BCS002","course":"CSE",
		"department":"Engg","year":2,"phone":"8888888888"
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, store.users, 1)
}

func TestSubmitMemberInfo(t *testing.T) {
	store := &memStore{}
	r, _ := newTestRouter(t, store, nil)

	w := postJSON(r, "/submit-memberinfo", `{
		"username":"mentor1","designation":"Mentor","phone":"7777777777","email":"m@example.com"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.members, 1)
}

func TestAddQuestionsRejectsInvalidBatch(t *testing.T) {
	store := &memStore{}
	r, _ := newTestRouter(t, store, nil)

	// Second element misses option4: whole batch rejected, nothing stored.
	w := postJSON(r, "/api/questions", `{"questions":[
		{"title":"Q1","description":"d","option1":"a","option2":"b","option3":"c","option4":"d","correctAnswer":"a"},
		{"title":"Q2","description":"d","option1":"a","option2":"b","option3":"c","correctAnswer":"a"}
	]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, store.questions)

	w = postJSON(r, "/api/questions", `{"questions":[]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/questions", `{"questions":[
		{"title":"Q1","description":"d","option1":"a","option2":"b","option3":"c","option4":"d","correctAnswer":"a"}
	]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.questions, 1)

	var inserted []bootcamp.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inserted))
	require.Len(t, inserted, 1)
	require.False(t, inserted[0].ID.IsZero())
}

func TestQuestionsListing(t *testing.T) {
	store := &memStore{questions: []bootcamp.Question{
		{Title: "Q1"}, {Title: "Q2"},
	}}
	r, _ := newTestRouter(t, store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/questions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []bootcamp.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
}

func TestSubmitTestCreatesOneAnswerPerElement(t *testing.T) {
	store := &memStore{}
	r, _ := newTestRouter(t, store, nil)

	w := postJSON(r, "/submit-test", `{
		"username":"bob","uid":"21BCS042","course":"ECE","department":"Engg","year":3,"phone":"999",
		"answers":[
			{"questionTitle":"Q1","answer":"a","timeTaken":10},
			{"questionTitle":"Q2","answer":"b","timeTaken":5}
		]
	}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.answers, 2)
	for _, a := range store.answers {
		require.Equal(t, "bob", a.Username)
		require.Equal(t, "21BCS042", a.UID)
	}

	w = postJSON(r, "/submit-test", `{"username":"bob","uid":"21BCS042","answers":[]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, store.answers, 2)
}

func TestSubmitFeedback(t *testing.T) {
	store := &memStore{}
	r, _ := newTestRouter(t, store, nil)

	w := postJSON(r, "/submit-feedback", `{
		"username":"carol","uid":"21BCS100","course":"CSE","feedback":"great","rating":5,
		"department":"Engg","year":1
	}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.feedbacks, 1)
	require.Equal(t, 5, store.feedbacks[0].Rating)
}

func TestUploadContentAndListing(t *testing.T) {
	store := &memStore{}
	r, q := newTestRouter(t, store, nil)

	w := postJSON(r, "/api/uploadContent", `{"message":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/uploadContent", `{"message":"class moved to 4pm"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.notifications, 1)
	require.False(t, store.notifications[0].Timestamp.IsZero())

	// A copy lands on the notifier queue.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msgs, err := q.Consume(ctx)
	require.NoError(t, err)
	select {
	case msg := <-msgs:
		require.Equal(t, "notification", msg.Type)
		require.Equal(t, "class moved to 4pm", string(msg.Body))
	case <-ctx.Done():
		t.Fatal("expected a queued notification")
	}
}

func TestNotificationsNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &memStore{notifications: []bootcamp.Notification{
		{Message: "M1", Timestamp: base.Add(1 * time.Hour)},
		{Message: "M2", Timestamp: base.Add(3 * time.Hour)},
		{Message: "M3", Timestamp: base.Add(2 * time.Hour)},
	}}
	r, _ := newTestRouter(t, store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []bootcamp.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, []string{"M2", "M3", "M1"}, []string{got[0].Message, got[1].Message, got[2].Message})
}

func uploadAssessment(t *testing.T, r *gin.Engine, filename, contentType string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("username", "dave"))
	require.NoError(t, mw.WriteField("uid", "21BCS007"))
	require.NoError(t, mw.WriteField("day", "day3"))

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-assessment", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testAssessmentRoundTrip(t *testing.T, storage blob.Storage) {
	store := &memStore{}
	r, _ := newTestRouter(t, store, storage)

	payload := []byte("%PDF-1.4 fake assessment body")
	w := uploadAssessment(t, r, "report.pdf", "application/pdf", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.assessments, 1)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// Download is byte-identical and carries the original name and type.
	req := httptest.NewRequest(http.MethodGet, "/api/assessments/"+created.ID, nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)
	require.Equal(t, payload, w2.Body.Bytes())
	require.Equal(t, "application/pdf", w2.Header().Get("Content-Type"))
	require.Contains(t, w2.Header().Get("Content-Disposition"), "report.pdf")

	// Listing exposes metadata only.
	req = httptest.NewRequest(http.MethodGet, "/api/assessments", nil)
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req)
	require.Equal(t, http.StatusOK, w3.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w3.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.Equal(t, "dave", listed[0]["username"])
	require.NotContains(t, listed[0], "data")
}

func TestAssessmentRoundTripDisk(t *testing.T) {
	d, err := blob.NewDisk(t.TempDir())
	require.NoError(t, err)
	testAssessmentRoundTrip(t, d)
}

func TestAssessmentRoundTripEmbedded(t *testing.T) {
	testAssessmentRoundTrip(t, blob.NewEmbedded())
}

func TestGetAssessmentNotFound(t *testing.T) {
	r, _ := newTestRouter(t, &memStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/assessments/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Malformed ids are not found either, never a crash.
	req = httptest.NewRequest(http.MethodGet, "/api/assessments/not-a-hex-id", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadAssessmentMissingFields(t *testing.T) {
	store := &memStore{}
	r, _ := newTestRouter(t, store, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("username", "dave"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-assessment", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, store.assessments)
}
