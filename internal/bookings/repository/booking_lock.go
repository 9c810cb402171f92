package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"openinterview/pkg/config"
	"openinterview/pkg/model"
)

const (
	LockCollectionName = "BookingLocks"

	// Locks auto-expire via a TTL index on expires_at so a crashed request
	// cannot wedge a slot forever.
	lockTTL = 10 * time.Second
)

// BookingLockRepository provides advisory locks over booking slots.
type BookingLockRepository interface {
	Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error)
	Delete(ctx context.Context, lockID string) error
}

type mongoBookingLockRepository struct {
	collection *mongo.Collection
}

func NewBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		collection: db.Collection(LockCollectionName),
	}
}

// Create inserts the lock document. The unique _id makes a second insert for
// the same slot fail with a duplicate key error, which the caller treats as
// "slot busy".
func (r *mongoBookingLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	lock.CreatedAt = time.Now().UTC()
	if lock.ExpiresAt.IsZero() {
		lock.ExpiresAt = lock.CreatedAt.Add(lockTTL)
	}

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		return nil, err
	}

	return lock, nil
}

func (r *mongoBookingLockRepository) Delete(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
