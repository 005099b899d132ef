package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	missionerrors "festivol/internal/missions/errors"
	"festivol/pkg/config"
	"festivol/pkg/model"
)

const (
	VolunteerCollection = "Volunteers"
)

type VolunteerRepository interface {
	Create(ctx context.Context, volunteer *model.Volunteer) error
	FindByID(ctx context.Context, id string) (*model.Volunteer, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Volunteer, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, volunteer *model.Volunteer) error
}

type mongoVolunteerRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoVolunteerRepository(cfg *config.Config) VolunteerRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoVolunteerRepository{
		cfg:        cfg,
		collection: db.Collection(VolunteerCollection),
	}
}

func (r *mongoVolunteerRepository) Create(ctx context.Context, volunteer *model.Volunteer) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	volunteer.CreatedAt = now
	volunteer.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, volunteer)
	if err != nil {
		return fmt.Errorf("failed to create volunteer: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		volunteer.ID = oid.Hex()
	}
	return nil
}

func (r *mongoVolunteerRepository) FindByID(ctx context.Context, id string) (*model.Volunteer, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", missionerrors.ErrInvalidID, id)
	}

	var volunteer model.Volunteer
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&volunteer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, missionerrors.ErrVolunteerNotFound
		}
		return nil, fmt.Errorf("failed to find volunteer: %w", err)
	}

	return &volunteer, nil
}

func (r *mongoVolunteerRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Volunteer, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find volunteers: %w", err)
	}
	defer cursor.Close(ctx)

	var volunteers []*model.Volunteer
	if err = cursor.All(ctx, &volunteers); err != nil {
		return nil, fmt.Errorf("failed to decode volunteers: %w", err)
	}

	return volunteers, nil
}

func (r *mongoVolunteerRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count volunteers: %w", err)
	}
	return count, nil
}

func (r *mongoVolunteerRepository) Update(ctx context.Context, id string, volunteer *model.Volunteer) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", missionerrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{
		"first_name":  volunteer.FirstName,
		"last_name":   volunteer.LastName,
		"email":       volunteer.Email,
		"phone":       volunteer.Phone,
		"preferences": volunteer.Preferences,
		"updated_at":  time.Now().UTC().Truncate(time.Millisecond),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update volunteer: %w", err)
	}
	if result.MatchedCount == 0 {
		return missionerrors.ErrVolunteerNotFound
	}

	return nil
}
