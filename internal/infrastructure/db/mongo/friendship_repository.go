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

	"github.com/habitflow/habitflow-api/internal/core/domain"
)

const friendshipsCollection = "friendships"

type FriendshipRepository struct {
	coll *mongo.Collection
}

func NewFriendshipRepository(db *mongo.Database) *FriendshipRepository {
	return &FriendshipRepository{coll: db.Collection(friendshipsCollection)}
}

type friendshipDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Users     []primitive.ObjectID `bson:"users"`
	Requester primitive.ObjectID   `bson:"requester"`
	Recipient primitive.ObjectID   `bson:"recipient"`
	Status    string               `bson:"status"`
	CreatedAt time.Time            `bson:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

func (d friendshipDoc) toDomain() *domain.Friendship {
	f := &domain.Friendship{
		ID:          d.ID.Hex(),
		RequesterID: d.Requester.Hex(),
		RecipientID: d.Recipient.Hex(),
		Status:      domain.FriendshipStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	for i, u := range d.Users {
		if i < 2 {
			f.Users[i] = u.Hex()
		}
	}
	return f
}

func toFriendshipDoc(f *domain.Friendship) (friendshipDoc, error) {
	users := make([]primitive.ObjectID, 0, 2)
	for _, id := range f.Users {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return friendshipDoc{}, fmt.Errorf("invalid participant id %q", id)
		}
		users = append(users, oid)
	}
	requester, err := primitive.ObjectIDFromHex(f.RequesterID)
	if err != nil {
		return friendshipDoc{}, fmt.Errorf("invalid requester id %q", f.RequesterID)
	}
	recipient, err := primitive.ObjectIDFromHex(f.RecipientID)
	if err != nil {
		return friendshipDoc{}, fmt.Errorf("invalid recipient id %q", f.RecipientID)
	}
	return friendshipDoc{
		Users:     users,
		Requester: requester,
		Recipient: recipient,
		Status:    string(f.Status),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}, nil
}

// Create inserts a new friendship. The unique index on the canonical pair
// turns concurrent double-sends into a duplicate-key error, surfaced as
// domain.ErrFriendshipExists.
func (r *FriendshipRepository) Create(ctx context.Context, f *domain.Friendship) (*domain.Friendship, error) {
	doc, err := toFriendshipDoc(f)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrFriendshipExists
		}
		return nil, fmt.Errorf("insert friendship: %w", err)
	}

	created := *f
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *FriendshipRepository) FindByID(ctx context.Context, id string) (*domain.Friendship, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFriendshipNotFound
	}

	var d friendshipDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFriendshipNotFound
		}
		return nil, fmt.Errorf("find friendship: %w", err)
	}
	return d.toDomain(), nil
}

func (r *FriendshipRepository) FindByPair(ctx context.Context, pair [2]string) (*domain.Friendship, error) {
	a, err := primitive.ObjectIDFromHex(pair[0])
	if err != nil {
		return nil, domain.ErrFriendshipNotFound
	}
	b, err := primitive.ObjectIDFromHex(pair[1])
	if err != nil {
		return nil, domain.ErrFriendshipNotFound
	}

	var d friendshipDoc
	if err := r.coll.FindOne(ctx, bson.M{"users": []primitive.ObjectID{a, b}}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFriendshipNotFound
		}
		return nil, fmt.Errorf("find friendship by pair: %w", err)
	}
	return d.toDomain(), nil
}

func (r *FriendshipRepository) FindByUser(ctx context.Context, userID string) ([]domain.Friendship, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []domain.Friendship{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"users": oid})
	if err != nil {
		return nil, fmt.Errorf("find friendships: %w", err)
	}
	defer cursor.Close(ctx)

	friendships := []domain.Friendship{}
	for cursor.Next(ctx) {
		var d friendshipDoc
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode friendship: %w", err)
		}
		friendships = append(friendships, *d.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find friendships: %w", err)
	}
	return friendships, nil
}

func (r *FriendshipRepository) Update(ctx context.Context, f *domain.Friendship) (*domain.Friendship, error) {
	oid, err := primitive.ObjectIDFromHex(f.ID)
	if err != nil {
		return nil, domain.ErrFriendshipNotFound
	}

	requester, err := primitive.ObjectIDFromHex(f.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("invalid requester id %q", f.RequesterID)
	}
	recipient, err := primitive.ObjectIDFromHex(f.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient id %q", f.RecipientID)
	}

	update := bson.M{"$set": bson.M{
		"requester":  requester,
		"recipient":  recipient,
		"status":     string(f.Status),
		"updated_at": f.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update friendship: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrFriendshipNotFound
	}
	return f, nil
}

func (r *FriendshipRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrFriendshipNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete friendship: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFriendshipNotFound
	}
	return nil
}

func (r *FriendshipRepository) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			// Canonical pair uniqueness: one record per unordered user pair.
			Keys:    bson.D{{Key: "users", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "requester", Value: 1}}},
		{Keys: bson.D{{Key: "recipient", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
