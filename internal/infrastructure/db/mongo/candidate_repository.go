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

	"github.com/hireloop/jobboard/internal/core/domain"
)

const candidatesCollection = "candidates"

type CandidateRepository struct {
	coll *mongo.Collection
}

func NewCandidateRepository(db *mongo.Database) *CandidateRepository {
	return &CandidateRepository{coll: db.Collection(candidatesCollection)}
}

type candidateDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     primitive.ObjectID `bson:"user_id"`
	Skills     []string           `bson:"skills"`
	Experience string             `bson:"experience"`
	Education  string             `bson:"education"`
	Resume     string             `bson:"resume,omitempty"`
	Location   string             `bson:"location,omitempty"`
	Phone      string             `bson:"phone,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d *candidateDoc) toDomain() *domain.Candidate {
	skills := d.Skills
	if skills == nil {
		skills = []string{}
	}
	return &domain.Candidate{
		ID:         d.ID.Hex(),
		UserID:     d.UserID.Hex(),
		Skills:     skills,
		Experience: d.Experience,
		Education:  d.Education,
		Resume:     d.Resume,
		Location:   d.Location,
		Phone:      d.Phone,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

// Create stores the profile. A second profile for the same user violates the
// unique user_id index.
func (r *CandidateRepository) Create(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	userID, ok := objectID(c.UserID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := candidateDoc{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Skills:     c.Skills,
		Experience: c.Experience,
		Education:  c.Education,
		Resume:     c.Resume,
		Location:   c.Location,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, storeErr(fmt.Sprintf("candidate profile already exists for user %s", c.UserID), err)
		}
		return nil, storeErr("insert candidate", err)
	}
	return doc.toDomain(), nil
}

func (r *CandidateRepository) FindByUserID(ctx context.Context, userID string) (*domain.Candidate, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, domain.ErrProfileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc candidateDoc
	if err := r.coll.FindOne(ctx, bson.M{"user_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, storeErr("find candidate", err)
	}
	return doc.toDomain(), nil
}

func (r *CandidateRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Candidate, error) {
	out := make(map[string]*domain.Candidate, len(ids))
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := findAll[candidateDoc](ctx, r.coll, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, storeErr("find candidates", err)
	}
	for i := range docs {
		c := docs[i].toDomain()
		out[c.ID] = c
	}
	return out, nil
}

// Update replaces the mutable fields of the user's profile.
func (r *CandidateRepository) Update(ctx context.Context, userID string, c *domain.Candidate) (*domain.Candidate, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, domain.ErrProfileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"skills":     c.Skills,
		"experience": c.Experience,
		"education":  c.Education,
		"resume":     c.Resume,
		"location":   c.Location,
		"phone":      c.Phone,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc candidateDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, storeErr("update candidate", err)
	}
	return doc.toDomain(), nil
}
