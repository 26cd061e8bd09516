package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/0xpriyanshu/img-upload-s3/internal/menu"
)

const checkpointCollection = "migration_checkpoints"

// MongoRepo is the MongoDB-backed repository for menu documents and the
// migration's resume checkpoints.
type MongoRepo struct {
	col         *mongo.Collection
	checkpoints *mongo.Collection
}

func NewMongoRepo(db *mongo.Database, collection string) *MongoRepo {
	return &MongoRepo{
		col:         db.Collection(collection),
		checkpoints: db.Collection(checkpointCollection),
	}
}

// Documents opens a cursor over the collection via an aggregation pipeline,
// projecting only the fields the migration reads. Documents come back in _id
// order so that skip offsets and resume checkpoints are deterministic.
func (m *MongoRepo) Documents(ctx context.Context, opts IterOptions) (Iterator, error) {
	pipeline := mongo.Pipeline{}
	if opts.AfterID != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$gt", Value: opts.AfterID}}},
		}}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}})
	if opts.Skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: opts.Skip}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.D{
		{Key: "_id", Value: 1},
		{Key: "restaurantId", Value: 1},
		{Key: "items", Value: 1},
	}}})
	return m.col.Aggregate(ctx, pipeline)
}

// UpdateItems overwrites the items array of the document matched by id.
func (m *MongoRepo) UpdateItems(ctx context.Context, id interface{}, items []menu.MenuItem) error {
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"items": items}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// LoadCheckpoint returns the checkpoint stored for the named job, or
// ErrNotFound when the job has never saved one.
func (m *MongoRepo) LoadCheckpoint(ctx context.Context, job string) (*Checkpoint, error) {
	var cp Checkpoint
	err := m.checkpoints.FindOne(ctx, bson.M{"_id": job}).Decode(&cp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cp, nil
}

// SaveCheckpoint upserts the last fully handled document id for the named job.
func (m *MongoRepo) SaveCheckpoint(ctx context.Context, job string, lastID interface{}) error {
	_, err := m.checkpoints.UpdateOne(ctx,
		bson.M{"_id": job},
		bson.M{"$set": bson.M{"lastId": lastID, "updatedAt": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}
