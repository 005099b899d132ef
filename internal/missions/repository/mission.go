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
	mongotx "festivol/pkg/db/mongo"
	"festivol/pkg/model"
)

const (
	MissionCollection = "Missions"
)

type MissionRepository interface {
	Create(ctx context.Context, mission *model.Mission) error
	FindByID(ctx context.Context, id string) (*model.Mission, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Mission, error)
	Count(ctx context.Context) (int64, error)
	FindByVolunteer(ctx context.Context, volunteerID string) ([]*model.Mission, error)
	FindOpen(ctx context.Context) ([]*model.Mission, error)
	// UpdateVersioned is the atomic conditional-update primitive: the write
	// lands only if the document still carries the given version, and the
	// version is bumped in the same operation. Returns false when another
	// writer got there first.
	UpdateVersioned(ctx context.Context, id string, version int64, fields bson.M) (bool, error)
	Delete(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoMissionRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoMissionRepository(cfg *config.Config) MissionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoMissionRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(MissionCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless the call runs inside a
// transaction; a SessionContext cannot be wrapped without breaking the
// transaction semantics.
func (r *mongoMissionRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoMissionRepository) Create(ctx context.Context, mission *model.Mission) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	mission.CreatedAt = now
	mission.UpdatedAt = now
	mission.Version = 1

	result, err := r.collection.InsertOne(ctx, mission)
	if err != nil {
		return fmt.Errorf("failed to create mission: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		mission.ID = oid.Hex()
	}
	return nil
}

func (r *mongoMissionRepository) FindByID(ctx context.Context, id string) (*model.Mission, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", missionerrors.ErrInvalidID, id)
	}

	var mission model.Mission
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&mission)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, missionerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find mission: %w", err)
	}

	return &mission, nil
}

func (r *mongoMissionRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Mission, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find missions: %w", err)
	}
	defer cursor.Close(ctx)

	var missions []*model.Mission
	if err = cursor.All(ctx, &missions); err != nil {
		return nil, fmt.Errorf("failed to decode missions: %w", err)
	}

	return missions, nil
}

func (r *mongoMissionRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count missions: %w", err)
	}
	return count, nil
}

func (r *mongoMissionRepository) FindByVolunteer(ctx context.Context, volunteerID string) ([]*model.Mission, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"volunteers": volunteerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find missions by volunteer: %w", err)
	}
	defer cursor.Close(ctx)

	var missions []*model.Mission
	if err = cursor.All(ctx, &missions); err != nil {
		return nil, fmt.Errorf("failed to decode missions: %w", err)
	}

	return missions, nil
}

func (r *mongoMissionRepository) FindOpen(ctx context.Context) ([]*model.Mission, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"status": bson.M{"$in": []string{model.StatusPublished, model.StatusFull}}}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find open missions: %w", err)
	}
	defer cursor.Close(ctx)

	var missions []*model.Mission
	if err = cursor.All(ctx, &missions); err != nil {
		return nil, fmt.Errorf("failed to decode missions: %w", err)
	}

	return missions, nil
}

func (r *mongoMissionRepository) UpdateVersioned(ctx context.Context, id string, version int64, fields bson.M) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%w: %s", missionerrors.ErrInvalidID, id)
	}

	set := bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}
	for k, v := range fields {
		set[k] = v
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "version": version},
		bson.M{"$set": set, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update mission: %w", err)
	}

	return result.MatchedCount > 0, nil
}

func (r *mongoMissionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", missionerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete mission: %w", err)
	}
	if result.DeletedCount == 0 {
		return missionerrors.ErrNotFound
	}

	return nil
}

func (r *mongoMissionRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
