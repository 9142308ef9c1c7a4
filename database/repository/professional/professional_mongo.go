package professionalRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/renjoshini/hereforyou/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfessionalRepo implements ProfessionalRepository using MongoDB.
type MongoProfessionalRepo struct {
	coll *mongo.Collection
}

// NewMongoProfessionalRepo creates a new instance of ProfessionalRepository using MongoDB.
func NewMongoProfessionalRepo(db *mongo.Database) ProfessionalRepository {
	repo := &MongoProfessionalRepo{coll: db.Collection("professionals")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoProfessionalRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "services", Value: 1}, {Key: "location.city", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create professional indexes: %w", err)
	}
	return nil
}

func (r *MongoProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoProfessionalRepo) GetByUserID(ctx context.Context, userID string) (*models.Professional, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *MongoProfessionalRepo) findOne(ctx context.Context, filter bson.M) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var professional models.Professional
	if err := r.coll.FindOne(ctx, filter).Decode(&professional); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch professional: %w", err)
	}
	return &professional, nil
}

// Create inserts a professional profile with zeroed statistics.
func (r *MongoProfessionalRepo) Create(ctx context.Context, professional *models.Professional) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if professional.JoinedAt.IsZero() {
		professional.JoinedAt = now
	}
	professional.UpdatedAt = now
	professional.Statistics = models.ProfessionalStatistics{}

	if _, err := r.coll.InsertOne(ctx, professional); err != nil {
		return fmt.Errorf("failed to create professional: %w", err)
	}
	return nil
}
