package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/habitflow/habitflow-api/internal/core/domain"
)

const habitsCollection = "habits"

type HabitRepository struct {
	coll *mongo.Collection
}

func NewHabitRepository(db *mongo.Database) *HabitRepository {
	return &HabitRepository{coll: db.Collection(habitsCollection)}
}

type completionDoc struct {
	Date time.Time `bson:"date"`
}

type habitDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Color       string             `bson:"color"`
	Completions []completionDoc    `bson:"completions"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d habitDoc) toDomain() *domain.Habit {
	completions := make([]domain.Completion, 0, len(d.Completions))
	for _, c := range d.Completions {
		completions = append(completions, domain.Completion{Date: c.Date})
	}
	return &domain.Habit{
		ID:          d.ID.Hex(),
		UserID:      d.UserID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Color:       d.Color,
		Completions: completions,
		CreatedAt:   d.CreatedAt,
	}
}

func toHabitDoc(h *domain.Habit) (habitDoc, error) {
	userOID, err := primitive.ObjectIDFromHex(h.UserID)
	if err != nil {
		return habitDoc{}, fmt.Errorf("invalid habit owner id %q", h.UserID)
	}
	completions := make([]completionDoc, 0, len(h.Completions))
	for _, c := range h.Completions {
		completions = append(completions, completionDoc{Date: c.Date})
	}
	return habitDoc{
		UserID:      userOID,
		Name:        h.Name,
		Description: h.Description,
		Color:       h.Color,
		Completions: completions,
		CreatedAt:   h.CreatedAt,
	}, nil
}

func (r *HabitRepository) Create(ctx context.Context, habit *domain.Habit) (*domain.Habit, error) {
	doc, err := toHabitDoc(habit)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert habit: %w", err)
	}

	created := *habit
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *HabitRepository) FindByID(ctx context.Context, id string) (*domain.Habit, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrHabitNotFound
	}

	var d habitDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("find habit: %w", err)
	}
	return d.toDomain(), nil
}

func (r *HabitRepository) FindByUser(ctx context.Context, userID string) ([]domain.Habit, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []domain.Habit{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"user": oid})
	if err != nil {
		return nil, fmt.Errorf("find habits: %w", err)
	}
	defer cursor.Close(ctx)

	habits := []domain.Habit{}
	for cursor.Next(ctx) {
		var d habitDoc
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode habit: %w", err)
		}
		habits = append(habits, *d.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find habits: %w", err)
	}
	return habits, nil
}

// Update replaces the whole document. Callers perform the read-modify-write;
// concurrent writers race last-write-wins.
func (r *HabitRepository) Update(ctx context.Context, habit *domain.Habit) (*domain.Habit, error) {
	oid, err := primitive.ObjectIDFromHex(habit.ID)
	if err != nil {
		return nil, domain.ErrHabitNotFound
	}

	doc, err := toHabitDoc(habit)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update habit: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (r *HabitRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrHabitNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func (r *HabitRepository) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
