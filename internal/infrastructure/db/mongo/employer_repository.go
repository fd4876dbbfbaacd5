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

const employersCollection = "employers"

type EmployerRepository struct {
	coll *mongo.Collection
}

func NewEmployerRepository(db *mongo.Database) *EmployerRepository {
	return &EmployerRepository{coll: db.Collection(employersCollection)}
}

type employerDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	CompanyName string             `bson:"company_name"`
	Website     string             `bson:"website,omitempty"`
	Description string             `bson:"description,omitempty"`
	Address     string             `bson:"address,omitempty"`
	Phone       string             `bson:"phone,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d *employerDoc) toDomain() *domain.Employer {
	return &domain.Employer{
		ID:          d.ID.Hex(),
		UserID:      d.UserID.Hex(),
		CompanyName: d.CompanyName,
		Website:     d.Website,
		Description: d.Description,
		Address:     d.Address,
		Phone:       d.Phone,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func (r *EmployerRepository) Create(ctx context.Context, e *domain.Employer) (*domain.Employer, error) {
	userID, ok := objectID(e.UserID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := employerDoc{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		CompanyName: e.CompanyName,
		Website:     e.Website,
		Description: e.Description,
		Address:     e.Address,
		Phone:       e.Phone,
		CreatedAt:   e.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, storeErr(fmt.Sprintf("employer profile already exists for user %s", e.UserID), err)
		}
		return nil, storeErr("insert employer", err)
	}
	return doc.toDomain(), nil
}

func (r *EmployerRepository) FindByID(ctx context.Context, id string) (*domain.Employer, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *EmployerRepository) FindByUserID(ctx context.Context, userID string) (*domain.Employer, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return r.findOne(ctx, bson.M{"user_id": oid})
}

func (r *EmployerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Employer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc employerDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, storeErr("find employer", err)
	}
	return doc.toDomain(), nil
}

func (r *EmployerRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Employer, error) {
	out := make(map[string]*domain.Employer, len(ids))
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := findAll[employerDoc](ctx, r.coll, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, storeErr("find employers", err)
	}
	for i := range docs {
		e := docs[i].toDomain()
		out[e.ID] = e
	}
	return out, nil
}

func (r *EmployerRepository) Update(ctx context.Context, userID string, e *domain.Employer) (*domain.Employer, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, domain.ErrProfileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"company_name": e.CompanyName,
		"website":      e.Website,
		"description":  e.Description,
		"address":      e.Address,
		"phone":        e.Phone,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc employerDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, storeErr("update employer", err)
	}
	return doc.toDomain(), nil
}
