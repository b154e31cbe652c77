package store

import (
	"context"
	"errors"

	"github.com/fruitstore/fruit-api/internal/fruit"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoDocumentID = "document"

// mongoRecord is the single record holding the whole document.
type mongoRecord struct {
	ID         string        `bson:"_id"`
	Fruits     []fruit.Fruit `bson:"fruits"`
	Categories []string      `bson:"categories"`
}

// MongoStore keeps the document as one record in a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (m *MongoStore) Backend() string { return "mongo" }

func (m *MongoStore) Load(ctx context.Context) (*fruit.Document, error) {
	var rec mongoRecord
	err := m.col.FindOne(ctx, bson.M{"_id": mongoDocumentID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fruit.NewDocument(), nil
		}
		return nil, &StorageError{Backend: m.Backend(), Op: "load", Err: err}
	}
	doc := &fruit.Document{Fruits: rec.Fruits, Categories: rec.Categories}
	doc.Normalize()
	return doc, nil
}

func (m *MongoStore) Save(ctx context.Context, doc *fruit.Document) error {
	c := doc.Clone()
	c.Normalize()
	rec := mongoRecord{ID: mongoDocumentID, Fruits: c.Fruits, Categories: c.Categories}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.col.ReplaceOne(ctx, bson.M{"_id": mongoDocumentID}, rec, opts); err != nil {
		return &StorageError{Backend: m.Backend(), Op: "save", Err: err}
	}
	return nil
}

func (m *MongoStore) Exists(ctx context.Context) (bool, error) {
	n, err := m.col.CountDocuments(ctx, bson.M{"_id": mongoDocumentID})
	if err != nil {
		return false, &StorageError{Backend: m.Backend(), Op: "exists", Err: err}
	}
	return n > 0, nil
}
