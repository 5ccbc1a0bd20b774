package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kuisioner/internal/model"
)

// ResponseRepo handles MongoDB operations for responses. The analytics core
// assumes it never sees two responses for one (respondent, question) pair;
// that invariant lives here, as a unique compound index plus upsert-on-
// resubmit, not in the analytics code.
type ResponseRepo interface {
	EnsureIndexes(ctx context.Context) error
	Upsert(ctx context.Context, resp *model.Response) error
	GetByQuestionnaireID(ctx context.Context, questionnaireID string) ([]*model.Response, error)
	GetByQuestionID(ctx context.Context, questionID string) ([]*model.Response, error)
	CountByQuestionnaireID(ctx context.Context, questionnaireID string) (int64, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{collection: db.Collection("responses")}
}

func (r *responseRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "respondentId", Value: 1},
			{Key: "questionId", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Upsert writes the response, replacing a previous answer by the same
// respondent to the same question.
func (r *responseRepo) Upsert(ctx context.Context, resp *model.Response) error {
	if resp.SubmittedAt.IsZero() {
		resp.SubmittedAt = time.Now()
	}

	filter := bson.M{
		"respondentId": resp.RespondentID,
		"questionId":   resp.QuestionID,
	}
	update := bson.M{
		"$set": bson.M{
			"questionnaireId": resp.QuestionnaireID,
			"questionId":      resp.QuestionID,
			"respondentId":    resp.RespondentID,
			"answer":          resp.Answer,
			"submittedAt":     resp.SubmittedAt,
		},
		"$setOnInsert": bson.M{"_id": uuid.NewString()},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *responseRepo) GetByQuestionnaireID(ctx context.Context, questionnaireID string) ([]*model.Response, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"questionnaireId": questionnaireID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) GetByQuestionID(ctx context.Context, questionID string) ([]*model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"questionId": questionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) CountByQuestionnaireID(ctx context.Context, questionnaireID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"questionnaireId": questionnaireID})
}
