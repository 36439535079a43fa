package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bootcamp/internal/blob"
	"bootcamp/internal/bootcamp"
	"bootcamp/internal/queue"
)

// Handler maps HTTP requests onto single store or blob operations.
type Handler struct {
	svc     *bootcamp.Service
	storage blob.Storage
	queue   queue.Queue
}

// New wires the handler with its process-wide dependencies.
func New(svc *bootcamp.Service, storage blob.Storage, q queue.Queue) *Handler {
	return &Handler{svc: svc, storage: storage, queue: q}
}

// ---------- Registration ----------

type userInfoRequest struct {
	Username   string `json:"username" binding:"required"`
	UID        string `json:"uid" binding:"required"`
	Course     string `json:"course" binding:"required"`
	Department string `json:"department" binding:"required"`
	Year       int    `json:"year" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Email      string `json:"email" binding:"required"`
}

// SubmitInfo stores one participant registration. Resubmission creates a
// duplicate record.
func (h *Handler) SubmitInfo(c *gin.Context) {
	var req userInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.svc.RegisterUser(c.Request.Context(), bootcamp.UserInfo{
		Username:   req.Username,
		UID:        req.UID,
		Course:     req.Course,
		Department: req.Department,
		Year:       req.Year,
		Phone:      req.Phone,
		Email:      req.Email,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

type memberInfoRequest struct {
	Username    string `json:"username" binding:"required"`
	Designation string `json:"designation" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Email       string `json:"email" binding:"required"`
}

// SubmitMemberInfo stores one team-member record.
func (h *Handler) SubmitMemberInfo(c *gin.Context) {
	var req memberInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, err := h.svc.RegisterMember(c.Request.Context(), bootcamp.MemberInfo{
		Username:    req.Username,
		Designation: req.Designation,
		Phone:       req.Phone,
		Email:       req.Email,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// ---------- Question bank ----------

type questionRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Option1       string `json:"option1" binding:"required"`
	Option2       string `json:"option2" binding:"required"`
	Option3       string `json:"option3" binding:"required"`
	Option4       string `json:"option4" binding:"required"`
	CorrectAnswer string `json:"correctAnswer" binding:"required"`
}

type questionBatchRequest struct {
	Questions []questionRequest `json:"questions" binding:"required,min=1,dive"`
}

// Questions returns the whole question bank in store-native order.
func (h *Handler) Questions(c *gin.Context) {
	qs, err := h.svc.Questions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, qs)
}

// AddQuestions inserts a batch of questions. Any invalid element rejects the
// whole batch before anything is written.
func (h *Handler) AddQuestions(c *gin.Context) {
	var req questionBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	qs := make([]bootcamp.Question, len(req.Questions))
	for i, q := range req.Questions {
		qs[i] = bootcamp.Question{
			Title:         q.Title,
			Description:   q.Description,
			Option1:       q.Option1,
			Option2:       q.Option2,
			Option3:       q.Option3,
			Option4:       q.Option4,
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	inserted, err := h.svc.AddQuestions(c.Request.Context(), qs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, inserted)
}

// ---------- Test submission ----------

type answerRequest struct {
	QuestionTitle string `json:"questionTitle" binding:"required"`
	Answer        string `json:"answer" binding:"required"`
	TimeTaken     int    `json:"timeTaken"`
}

type testSubmissionRequest struct {
	Username   string          `json:"username" binding:"required"`
	UID        string          `json:"uid" binding:"required"`
	Course     string          `json:"course"`
	Department string          `json:"department"`
	Year       int             `json:"year"`
	Phone      string          `json:"phone"`
	Answers    []answerRequest `json:"answers" binding:"required,min=1,dive"`
}

// SubmitTest bulk-inserts one answer document per submitted answer, each
// carrying the submitter identity. No partial success: the call either
// attempts all answers together or fails as a whole.
func (h *Handler) SubmitTest(c *gin.Context) {
	var req testSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub := bootcamp.TestSubmission{
		Username:   req.Username,
		UID:        req.UID,
		Course:     req.Course,
		Department: req.Department,
		Year:       req.Year,
		Phone:      req.Phone,
		Answers:    make([]bootcamp.AnswerInput, len(req.Answers)),
	}
	for i, a := range req.Answers {
		sub.Answers[i] = bootcamp.AnswerInput{
			QuestionTitle: a.QuestionTitle,
			Answer:        a.Answer,
			TimeTaken:     a.TimeTaken,
		}
	}
	n, err := h.svc.SubmitTest(c.Request.Context(), sub)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inserted": n})
}

// ---------- Feedback ----------

type feedbackRequest struct {
	Username   string `json:"username" binding:"required"`
	UID        string `json:"uid" binding:"required"`
	Course     string `json:"course" binding:"required"`
	Feedback   string `json:"feedback" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Department string `json:"department"`
	Year       int    `json:"year"`
}

// SubmitFeedback stores one feedback record. The rating is kept as given.
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f, err := h.svc.SubmitFeedback(c.Request.Context(), bootcamp.Feedback{
		Username:   req.Username,
		UID:        req.UID,
		Course:     req.Course,
		Feedback:   req.Feedback,
		Rating:     req.Rating,
		Department: req.Department,
		Year:       req.Year,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, f)
}

// ---------- Notifications ----------

type notificationRequest struct {
	Message string `json:"message" binding:"required"`
}

// Notifications lists broadcast messages newest first.
func (h *Handler) Notifications(c *gin.Context) {
	ns, err := h.svc.Notifications(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ns)
}

// UploadContent stores a broadcast message with a server-assigned timestamp
// and hands a copy to the notifier queue. Queue failure never fails the
// request.
func (h *Handler) UploadContent(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.svc.PostNotification(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.queue != nil {
		msg := queue.Message{ID: uuid.NewString(), Type: "notification", Body: []byte(n.Message)}
		if err := h.queue.Publish(c.Request.Context(), msg); err != nil {
			log.Printf("queue publish failed: %v", err)
		}
	}
	c.JSON(http.StatusCreated, gin.H{"message": n.Message, "result": n})
}

// ---------- Assessments ----------

type assessmentForm struct {
	Username string `form:"username" binding:"required"`
	UID      string `form:"uid" binding:"required"`
	Day      string `form:"day" binding:"required"`
}

// UploadAssessment accepts a multipart file plus identity fields, places the
// payload through the configured blob backend and records it.
func (h *Handler) UploadAssessment(c *gin.Context) {
	var form assessmentForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read file failed"})
		return
	}

	ref, err := h.storage.Put(c.Request.Context(), header.Filename, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	a, err := h.svc.AddAssessment(c.Request.Context(), bootcamp.Assessment{
		Username:    form.Username,
		UID:         form.UID,
		Day:         form.Day,
		FilePath:    ref.Path,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        ref.Data,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": a.ID, "filename": a.Filename})
}

// Assessments lists assessment metadata; payloads are never included.
func (h *Handler) Assessments(c *gin.Context) {
	as, err := h.svc.Assessments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, as)
}

// GetAssessment streams one stored file with its original filename and
// content type. Unknown ids are 404; a record whose file cannot be read
// back is 500.
func (h *Handler) GetAssessment(c *gin.Context) {
	a, err := h.svc.Assessment(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
		return
	}
	data, err := h.storage.Get(c.Request.Context(), blob.Ref{Path: a.FilePath, Data: a.Data})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	c.Data(http.StatusOK, contentType, data)
}
