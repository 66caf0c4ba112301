package repository

import (
	domainrepo "cataconta-webhook/internal/domain/interfaces/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository[T any] struct {
	mongo *mongo.Database
}

func NewMongoRepository[T any](mongo *mongo.Database) *MongoRepository[T] {
	return &MongoRepository[T]{mongo: mongo}
}

// Upsert replaces the fields of the document with the given message_sid, creating it on first sight.
func (r *MongoRepository[T]) Upsert(ctx context.Context, collectionName string, messageSid string, entity T) (T, error) {
	collection := r.mongo.Collection(collectionName)
	filter := bson.M{"message_sid": messageSid}
	update := bson.M{"$set": entity}

	_, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return entity, err
}

func (r *MongoRepository[T]) FindByMessageSid(ctx context.Context, collectionName string, messageSid string) (T, error) {
	var entity T
	collection := r.mongo.Collection(collectionName)
	filter := bson.M{"message_sid": messageSid}
	err := collection.FindOne(ctx, filter).Decode(&entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity, fmt.Errorf("%s %s: %w", collectionName, messageSid, domainrepo.ErrNotFound)
	}
	return entity, err
}

func (r *MongoRepository[T]) FindAll(ctx context.Context, collectionName string) ([]T, error) {
	collection := r.mongo.Collection(collectionName)
	cursor, err := collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entities []T
	for cursor.Next(ctx) {
		var entity T
		if err := cursor.Decode(&entity); err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, cursor.Err()
}
