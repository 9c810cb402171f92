package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	availabilityerrors "openinterview/internal/availability/errors"
	"openinterview/pkg/config"
	"openinterview/pkg/model"
)

const (
	CollectionName = "Availability"
)

type AvailabilityRepository interface {
	FindByProfileID(ctx context.Context, profileID string) (*model.AvailabilityDocument, error)
	Upsert(ctx context.Context, profileID string, doc *model.AvailabilityDocument) error
	Delete(ctx context.Context, profileID string) error
}

type mongoAvailabilityRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAvailabilityRepository(cfg *config.Config) AvailabilityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAvailabilityRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAvailabilityRepository) FindByProfileID(ctx context.Context, profileID string) (*model.AvailabilityDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doc model.AvailabilityDocument
	err := r.collection.FindOne(ctx, bson.M{"profile_id": profileID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, availabilityerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find availability: %w", err)
	}

	return &doc, nil
}

// Upsert stores the document whole. One document per profile, keyed by
// profile_id.
func (r *mongoAvailabilityRepository) Upsert(ctx context.Context, profileID string, doc *model.AvailabilityDocument) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	doc.ProfileID = profileID
	doc.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"profile_id": profileID}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert availability: %w", err)
	}

	return nil
}

func (r *mongoAvailabilityRepository) Delete(ctx context.Context, profileID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"profile_id": profileID})
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	if result.DeletedCount == 0 {
		return availabilityerrors.ErrNotFound
	}

	return nil
}
