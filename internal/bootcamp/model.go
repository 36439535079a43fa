package bootcamp

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserInfo is a participant registration record.
type UserInfo struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username   string             `bson:"username" json:"username"`
	UID        string             `bson:"uid" json:"uid"`
	Course     string             `bson:"course" json:"course"`
	Department string             `bson:"department" json:"department"`
	Year       int                `bson:"year" json:"year"`
	Phone      string             `bson:"phone" json:"phone"`
	Email      string             `bson:"email" json:"email"`
}

// MemberInfo is a team-member record.
type MemberInfo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username    string             `bson:"username" json:"username"`
	Designation string             `bson:"designation" json:"designation"`
	Phone       string             `bson:"phone" json:"phone"`
	Email       string             `bson:"email" json:"email"`
}

// Question is one quiz question with four options.
type Question struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Option1       string             `bson:"option1" json:"option1"`
	Option2       string             `bson:"option2" json:"option2"`
	Option3       string             `bson:"option3" json:"option3"`
	Option4       string             `bson:"option4" json:"option4"`
	CorrectAnswer string             `bson:"correctAnswer" json:"correctAnswer"`
}

// Answer is one submitted answer. Submitter identity is denormalized into
// every answer document at submission time.
type Answer struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuestionTitle string             `bson:"questionTitle" json:"questionTitle"`
	Answer        string             `bson:"answer" json:"answer"`
	TimeTaken     int                `bson:"timeTaken" json:"timeTaken"`
	Username      string             `bson:"username" json:"username"`
	UID           string             `bson:"uid" json:"uid"`
	Course        string             `bson:"course" json:"course"`
	Department    string             `bson:"department" json:"department"`
	Year          int                `bson:"year" json:"year"`
	Phone         string             `bson:"phone" json:"phone"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
}

// Feedback is one feedback submission. Rating is stored as given, unbounded.
type Feedback struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username   string             `bson:"username" json:"username"`
	UID        string             `bson:"uid" json:"uid"`
	Course     string             `bson:"course" json:"course"`
	Feedback   string             `bson:"feedback" json:"feedback"`
	Rating     int                `bson:"rating" json:"rating"`
	Department string             `bson:"department" json:"department"`
	Year       int                `bson:"year" json:"year"`
}

// Notification is a broadcast message, listed newest first.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Message   string             `bson:"message" json:"message"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Assessment is an uploaded assessment file record. Depending on the
// configured blob backend either FilePath (disk) or Data plus Filename and
// ContentType (embedded) is populated. Data never appears in JSON listings.
type Assessment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username    string             `bson:"username" json:"username"`
	UID         string             `bson:"uid" json:"uid"`
	Day         string             `bson:"day" json:"day"`
	FilePath    string             `bson:"filePath,omitempty" json:"filePath,omitempty"`
	Filename    string             `bson:"filename,omitempty" json:"filename,omitempty"`
	ContentType string             `bson:"contentType,omitempty" json:"contentType,omitempty"`
	Data        []byte             `bson:"data,omitempty" json:"-"`
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
