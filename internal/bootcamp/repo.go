package bootcamp

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. Each entity lives in its own collection; documents are
// inserted once and never updated or deleted by this service.
const (
	colUserInfo      = "userinfo"
	colMemberInfo    = "memberinfo"
	colQuestions     = "questions"
	colAnswers       = "answers"
	colFeedbacks     = "feedbacks"
	colNotifications = "notifications"
	colAssessments   = "assessments"
)

// Repository persists bootcamp data in MongoDB.
type Repository struct {
	db *mongo.Database
}

// NewRepository creates a repo over the shared database handle.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{db: db}
}

// InsertUserInfo writes one registration record.
func (r *Repository) InsertUserInfo(ctx context.Context, u UserInfo) (UserInfo, error) {
	res, err := r.db.Collection(colUserInfo).InsertOne(ctx, u)
	if err != nil {
		return UserInfo{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return u, nil
}

// InsertMemberInfo writes one team-member record.
func (r *Repository) InsertMemberInfo(ctx context.Context, m MemberInfo) (MemberInfo, error) {
	res, err := r.db.Collection(colMemberInfo).InsertOne(ctx, m)
	if err != nil {
		return MemberInfo{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = id
	}
	return m, nil
}

// ListQuestions returns all stored questions in store-native order.
func (r *Repository) ListQuestions(ctx context.Context) ([]Question, error) {
	cursor, err := r.db.Collection(colQuestions).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	questions := []Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// InsertQuestions bulk-inserts a question batch and returns it with the
// generated ids filled in.
func (r *Repository) InsertQuestions(ctx context.Context, qs []Question) ([]Question, error) {
	docs := make([]interface{}, len(qs))
	for i, q := range qs {
		docs[i] = q
	}
	res, err := r.db.Collection(colQuestions).InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	for i, raw := range res.InsertedIDs {
		if id, ok := raw.(primitive.ObjectID); ok && i < len(qs) {
			qs[i].ID = id
		}
	}
	return qs, nil
}

// InsertAnswers bulk-inserts one document per submitted answer.
func (r *Repository) InsertAnswers(ctx context.Context, answers []Answer) error {
	docs := make([]interface{}, len(answers))
	for i, a := range answers {
		docs[i] = a
	}
	_, err := r.db.Collection(colAnswers).InsertMany(ctx, docs)
	return err
}

// InsertFeedback writes one feedback record.
func (r *Repository) InsertFeedback(ctx context.Context, f Feedback) (Feedback, error) {
	res, err := r.db.Collection(colFeedbacks).InsertOne(ctx, f)
	if err != nil {
		return Feedback{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		f.ID = id
	}
	return f, nil
}

// InsertNotification writes one broadcast message.
func (r *Repository) InsertNotification(ctx context.Context, n Notification) (Notification, error) {
	res, err := r.db.Collection(colNotifications).InsertOne(ctx, n)
	if err != nil {
		return Notification{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = id
	}
	return n, nil
}

// ListNotifications returns all messages sorted by timestamp descending.
func (r *Repository) ListNotifications(ctx context.Context) ([]Notification, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.db.Collection(colNotifications).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// InsertAssessment writes one assessment record.
func (r *Repository) InsertAssessment(ctx context.Context, a Assessment) (Assessment, error) {
	res, err := r.db.Collection(colAssessments).InsertOne(ctx, a)
	if err != nil {
		return Assessment{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = id
	}
	return a, nil
}

// GetAssessment returns one assessment by hex id, payload included.
// A malformed or unknown id yields (nil, nil).
func (r *Repository) GetAssessment(ctx context.Context, id string) (*Assessment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var a Assessment
	if err := r.db.Collection(colAssessments).FindOne(ctx, bson.M{"_id": objID}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// ListAssessments returns assessment metadata only; the payload field is
// projected out so embedded file bytes never travel with listings.
func (r *Repository) ListAssessments(ctx context.Context) ([]Assessment, error) {
	findOptions := options.Find().SetProjection(bson.M{"data": 0})
	cursor, err := r.db.Collection(colAssessments).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assessments := []Assessment{}
	if err := cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}
