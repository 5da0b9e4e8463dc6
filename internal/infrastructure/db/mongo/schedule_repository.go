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

	"github.com/classpoint/horarios-api/internal/core/domain"
)

const collectionHorarios = "horarios"

type ScheduleRepository struct {
	col *mongo.Collection
}

func NewScheduleRepository(db *mongo.Database) *ScheduleRepository {
	return &ScheduleRepository{col: db.Collection(collectionHorarios)}
}

// mongoEntry stores start/end as minutes since midnight, which keeps the
// overlap filter a plain integer comparison.
type mongoEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   string             `bson:"owner_id,omitempty"`
	Subject   string             `bson:"subject"`
	Teacher   string             `bson:"teacher"`
	Day       string             `bson:"day"`
	Start     int                `bson:"start"`
	End       int                `bson:"end"`
	Location  string             `bson:"location,omitempty"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func fromDomainEntry(e *domain.ScheduleEntry) mongoEntry {
	return mongoEntry{
		OwnerID:   e.OwnerID,
		Subject:   e.Subject,
		Teacher:   e.Teacher,
		Day:       e.Day,
		Start:     int(e.Start),
		End:       int(e.End),
		Location:  e.Location,
		CreatedAt: e.CreatedAt.Unix(),
		UpdatedAt: e.UpdatedAt.Unix(),
	}
}

func (me *mongoEntry) toDomain() *domain.ScheduleEntry {
	return &domain.ScheduleEntry{
		ID:        me.ID.Hex(),
		OwnerID:   me.OwnerID,
		Subject:   me.Subject,
		Teacher:   me.Teacher,
		Day:       me.Day,
		Start:     domain.TimeOfDay(me.Start),
		End:       domain.TimeOfDay(me.End),
		Location:  me.Location,
		CreatedAt: unixToTime(me.CreatedAt),
		UpdatedAt: unixToTime(me.UpdatedAt),
	}
}

func (r *ScheduleRepository) Create(ctx context.Context, entry *domain.ScheduleEntry) (*domain.ScheduleEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromDomainEntry(entry))
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	out := *entry
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}

	var me mongoEntry
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return me.toDomain(), nil
}

// FindByOwnerAndDay returns the entries consulted by the overlap check. The
// owner+day filter is backed by a compound index.
func (r *ScheduleRepository) FindByOwnerAndDay(ctx context.Context, ownerID, day string) ([]*domain.ScheduleEntry, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID, "day": day})
}

func (r *ScheduleRepository) List(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	return r.find(ctx, bson.M{})
}

func (r *ScheduleRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.ScheduleEntry, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID})
}

func (r *ScheduleRepository) find(ctx context.Context, filter bson.M) ([]*domain.ScheduleEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "day", Value: 1},
		{Key: "start", Value: 1},
	}))
	if err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}
	defer cur.Close(ctx)

	var entries []*domain.ScheduleEntry
	for cur.Next(ctx) {
		var me mongoEntry
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		entries = append(entries, me.toDomain())
	}
	return entries, cur.Err()
}

func (r *ScheduleRepository) Update(ctx context.Context, entry *domain.ScheduleEntry) (*domain.ScheduleEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(entry.ID)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}

	set := bson.M{
		"owner_id":   entry.OwnerID,
		"subject":    entry.Subject,
		"teacher":    entry.Teacher,
		"day":        entry.Day,
		"start":      int(entry.Start),
		"end":        int(entry.End),
		"location":   entry.Location,
		"updated_at": time.Now().UTC().Unix(),
	}

	var me mongoEntry
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&me)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return me.toDomain(), nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEntryNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// DeleteByOwner removes every entry owned by ownerID. Used as the cascade
// when an account is deleted; removing zero entries is not an error.
func (r *ScheduleRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"owner_id": ownerID}); err != nil {
		return fmt.Errorf("delete entries by owner: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes backing the overlap check and the
// per-owner listing.
func (r *ScheduleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "day", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("ensure entry indexes: %w", err)
	}
	return nil
}
