package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/allnik/property-service/internal/core/domain"
)

const collectionRequests = "requests"

// listOrder is creation order with _id as the tie-breaker.
var listOrder = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

// RequestRepository is the Mongo request store.
type RequestRepository struct {
	col *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{col: db.Collection(collectionRequests)}
}

type requestDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	Type        string             `bson:"type"`
	Area        int                `bson:"area"`
	Location    string             `bson:"location"`
	Bedrooms    *int               `bson:"bedrooms,omitempty"`
	Style       *string            `bson:"style,omitempty"`
	Budget      *int               `bson:"budget,omitempty"`
	Payment     *string            `bson:"payment,omitempty"`
	Description *string            `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func newRequestDocument(owner primitive.ObjectID, p *domain.PropertyRequest) requestDocument {
	return requestDocument{
		UserID:      owner,
		Type:        p.Type,
		Area:        p.Area,
		Location:    p.Location,
		Bedrooms:    p.Bedrooms,
		Style:       p.Style,
		Budget:      p.Budget,
		Payment:     p.Payment,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}

func (d requestDocument) toDomain() *domain.PropertyRequest {
	return &domain.PropertyRequest{
		ID:          d.ID.Hex(),
		UserID:      d.UserID.Hex(),
		Type:        d.Type,
		Area:        d.Area,
		Location:    d.Location,
		Bedrooms:    d.Bedrooms,
		Style:       d.Style,
		Budget:      d.Budget,
		Payment:     d.Payment,
		Description: d.Description,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
	}
}

// Create inserts p and sets p.ID. An owner id that is not an ObjectID is
// reported as domain.ErrUserNotFound.
func (r *RequestRepository) Create(ctx context.Context, p *domain.PropertyRequest) error {
	owner, err := primitive.ObjectIDFromHex(p.UserID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, newRequestDocument(owner, p))
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

// ListByUser returns the owner's requests sorted by created_at, then _id.
func (r *RequestRepository) ListByUser(ctx context.Context, userID string) ([]*domain.PropertyRequest, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*domain.PropertyRequest{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(listOrder)
	cursor, err := r.col.Find(ctx, bson.M{"user_id": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("find requests: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []requestDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode requests: %w", err)
	}

	items := make([]*domain.PropertyRequest, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}
	return items, nil
}

// EnsureIndexes creates the owner listing index.
func (r *RequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
