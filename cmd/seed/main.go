package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kuisioner/internal/config"
	"kuisioner/internal/model"
	"kuisioner/internal/repository"
)

// Seeds an example questionnaire for local development.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	users := repository.NewUserRepo(db)
	questionnaires := repository.NewQuestionnaireRepo(db)
	questions := repository.NewQuestionRepo(db)

	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	admin, err := users.GetOrCreate(ctx, cfg.AdminEmail, "Administrator", model.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	qnID, err := questionnaires.Create(ctx, &model.Questionnaire{
		OwnerID:     admin.ID,
		Title:       "Evaluasi Layanan Akademik",
		Description: "Kuisioner kepuasan mahasiswa terhadap layanan akademik semester ini.",
		Access:      model.AccessPublic,
	})
	if err != nil {
		log.Fatalf("Failed to create questionnaire: %v", err)
	}

	seed := []*model.Question{
		{
			Text:     "Seberapa puas Anda dengan layanan akademik secara keseluruhan?",
			Type:     model.QuestionTypeRating,
			Required: true,
		},
		{
			Text:    "Layanan mana yang paling sering Anda gunakan?",
			Type:    model.QuestionTypeSingleChoice,
			Options: []string{"Perpustakaan", "Laboratorium", "Administrasi", "Bimbingan Akademik"},
		},
		{
			Text:     "Apa pendapat Anda tentang kualitas layanan tersebut?",
			Type:     model.QuestionTypeParagraph,
			Required: true,
		},
		{
			Text: "Apa saran Anda untuk perbaikan ke depan?",
			Type: model.QuestionTypeParagraph,
		},
	}
	for i, q := range seed {
		q.QuestionnaireID = qnID
		q.Position = i + 1
		if _, err := questions.Create(ctx, q); err != nil {
			log.Fatalf("Failed to create question %d: %v", i+1, err)
		}
	}

	log.Printf("Seeded questionnaire %s with %d questions (owner %s)", qnID, len(seed), admin.Email)
}
