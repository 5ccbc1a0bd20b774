package repository

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kuisioner/internal/model"
)

// QuestionRepo handles MongoDB operations for questions
type QuestionRepo interface {
	Create(ctx context.Context, q *model.Question) (string, error)
	GetByID(ctx context.Context, id string) (*model.Question, error)
	GetByQuestionnaireID(ctx context.Context, questionnaireID string) ([]*model.Question, error)
	Delete(ctx context.Context, id string) error
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{collection: db.Collection("questions")}
}

func (r *questionRepo) Create(ctx context.Context, q *model.Question) (string, error) {
	q.ID = uuid.NewString()
	if _, err := r.collection.InsertOne(ctx, q); err != nil {
		return "", err
	}
	return q.ID, nil
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var q model.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionRepo) GetByQuestionnaireID(ctx context.Context, questionnaireID string) ([]*model.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"questionnaireId": questionnaireID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var qs []*model.Question
	if err := cursor.All(ctx, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
