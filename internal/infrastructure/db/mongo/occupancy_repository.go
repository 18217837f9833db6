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

const collectionOccupancies = "occupancies"

// OccupancyRepository persists bookings.
type OccupancyRepository struct {
	col *mongo.Collection
}

func NewOccupancyRepository(db *mongo.Database) *OccupancyRepository {
	return &OccupancyRepository{col: db.Collection(collectionOccupancies)}
}

type occupancyDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	OccupantCode string             `bson:"occupant_code"`
	House        string             `bson:"house"`
	Room         string             `bson:"room"`
	Arrival      time.Time          `bson:"arrival"`
	Departure    time.Time          `bson:"departure"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *occupancyDoc) toDomain() *domain.Occupancy {
	return &domain.Occupancy{
		ID:           d.ID.Hex(),
		OccupantCode: d.OccupantCode,
		House:        d.House,
		Room:         d.Room,
		Arrival:      d.Arrival.Local(),
		Departure:    d.Departure.Local(),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func fromDomainOccupancy(o *domain.Occupancy) occupancyDoc {
	return occupancyDoc{
		OccupantCode: o.OccupantCode,
		House:        o.House,
		Room:         o.Room,
		Arrival:      o.Arrival,
		Departure:    o.Departure,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func (r *OccupancyRepository) Create(ctx context.Context, occ *domain.Occupancy) (*domain.Occupancy, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomainOccupancy(occ)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert occupancy: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *OccupancyRepository) FindByID(ctx context.Context, id string) (*domain.Occupancy, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOccupancyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc occupancyDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOccupancyNotFound
		}
		return nil, fmt.Errorf("find occupancy: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OccupancyRepository) List(ctx context.Context) ([]domain.Occupancy, error) {
	return r.find(ctx, bson.M{})
}

// ListRange returns bookings for a house overlapping [from, to).
func (r *OccupancyRepository) ListRange(ctx context.Context, house string, from, to time.Time) ([]domain.Occupancy, error) {
	return r.find(ctx, bson.M{
		"house":     house,
		"arrival":   bson.M{"$lt": to},
		"departure": bson.M{"$gt": from},
	})
}

func (r *OccupancyRepository) find(ctx context.Context, filter bson.M) ([]domain.Occupancy, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "arrival", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list occupancies: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Occupancy
	for cur.Next(ctx) {
		var doc occupancyDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode occupancy: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	return out, cur.Err()
}

// FindOverlapping returns a booking for the same house and room sharing at
// least one night with [arrival, departure). Intervals are half-open, so a
// booking departing on the arrival day does not count.
func (r *OccupancyRepository) FindOverlapping(ctx context.Context, house, room string, arrival, departure time.Time, excludeID string) (*domain.Occupancy, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"house":     house,
		"room":      room,
		"arrival":   bson.M{"$lt": departure},
		"departure": bson.M{"$gt": arrival},
	}
	if excludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			filter["_id"] = bson.M{"$ne": oid}
		}
	}

	var doc occupancyDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOccupancyNotFound
		}
		return nil, fmt.Errorf("find overlapping occupancy: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OccupancyRepository) Update(ctx context.Context, occ *domain.Occupancy) error {
	oid, err := primitive.ObjectIDFromHex(occ.ID)
	if err != nil {
		return domain.ErrOccupancyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"occupant_code": occ.OccupantCode,
		"house":         occ.House,
		"room":          occ.Room,
		"arrival":       occ.Arrival,
		"departure":     occ.Departure,
		"updated_at":    occ.UpdatedAt,
	}}
	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update occupancy: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOccupancyNotFound
	}
	return nil
}

func (r *OccupancyRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOccupancyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete occupancy: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOccupancyNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes used by the calendar and overlap queries.
func (r *OccupancyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "house", Value: 1}, {Key: "room", Value: 1}, {Key: "arrival", Value: 1}}},
		{Keys: bson.D{{Key: "occupant_code", Value: 1}}},
	})
	return err
}
