package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
)

const collectionGuestHouses = "guesthouses"

// GuestHouseRepository persists guest house reference data.
type GuestHouseRepository struct {
	col *mongo.Collection
}

func NewGuestHouseRepository(db *mongo.Database) *GuestHouseRepository {
	return &GuestHouseRepository{col: db.Collection(collectionGuestHouses)}
}

type guestHouseDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Rooms []roomDoc          `bson:"rooms"`
}

type roomDoc struct {
	Name         string            `bson:"name"`
	Descriptions map[string]string `bson:"descriptions,omitempty"`
}

func (d *guestHouseDoc) toDomain() *domain.GuestHouse {
	gh := &domain.GuestHouse{ID: d.ID.Hex(), Name: d.Name, Rooms: make([]domain.Room, len(d.Rooms))}
	for i, r := range d.Rooms {
		gh.Rooms[i] = domain.Room{Name: r.Name, Descriptions: r.Descriptions}
	}
	return gh
}

func (r *GuestHouseRepository) Create(ctx context.Context, gh *domain.GuestHouse) (*domain.GuestHouse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := guestHouseDoc{Name: gh.Name, Rooms: make([]roomDoc, len(gh.Rooms))}
	for i, room := range gh.Rooms {
		doc.Rooms[i] = roomDoc{Name: room.Name, Descriptions: room.Descriptions}
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrGuestHouseExists
		}
		return nil, fmt.Errorf("insert guest house: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *GuestHouseRepository) FindByName(ctx context.Context, name string) (*domain.GuestHouse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc guestHouseDoc
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGuestHouseNotFound
		}
		return nil, fmt.Errorf("find guest house: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GuestHouseRepository) List(ctx context.Context) ([]domain.GuestHouse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list guest houses: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.GuestHouse
	for cur.Next(ctx) {
		var doc guestHouseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode guest house: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	return out, cur.Err()
}

// EnsureIndexes creates the unique index on the guest house name.
func (r *GuestHouseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
