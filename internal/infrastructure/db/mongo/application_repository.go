package mongo

import (
	"context"
	"errors"
	"time"

	goerrors "github.com/go-errors/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hireloop/jobboard/internal/core/domain"
)

const applicationsCollection = "applications"

type ApplicationRepository struct {
	coll *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{coll: db.Collection(applicationsCollection)}
}

type applicationDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	JobID       primitive.ObjectID `bson:"job_id"`
	CandidateID primitive.ObjectID `bson:"candidate_id"`
	EmployerID  primitive.ObjectID `bson:"employer_id"`
	Resume      string             `bson:"resume"`
	CoverLetter string             `bson:"cover_letter,omitempty"`
	Status      string             `bson:"status"`
	AppliedAt   time.Time          `bson:"applied_at"`
}

func (d *applicationDoc) toDomain() *domain.Application {
	return &domain.Application{
		ID:          d.ID.Hex(),
		JobID:       d.JobID.Hex(),
		CandidateID: d.CandidateID.Hex(),
		EmployerID:  d.EmployerID.Hex(),
		Resume:      d.Resume,
		CoverLetter: d.CoverLetter,
		Status:      domain.ApplicationStatus(d.Status),
		AppliedAt:   d.AppliedAt.UTC(),
	}
}

// Create stores a. The unique {job_id, candidate_id} index turns a concurrent
// second submission into ErrDuplicateApplication.
func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) (*domain.Application, error) {
	jobID, ok1 := objectID(a.JobID)
	candidateID, ok2 := objectID(a.CandidateID)
	employerID, ok3 := objectID(a.EmployerID)
	if !ok1 || !ok2 || !ok3 {
		return nil, goerrors.New("application references a malformed id")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := applicationDoc{
		ID:          primitive.NewObjectID(),
		JobID:       jobID,
		CandidateID: candidateID,
		EmployerID:  employerID,
		Resume:      a.Resume,
		CoverLetter: a.CoverLetter,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateApplication
		}
		return nil, storeErr("insert application", err)
	}
	return doc.toDomain(), nil
}

func (r *ApplicationRepository) Exists(ctx context.Context, jobID, candidateID string) (bool, error) {
	jid, ok1 := objectID(jobID)
	cid, ok2 := objectID(candidateID)
	if !ok1 || !ok2 {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"job_id": jid, "candidate_id": cid}, options.Count().SetLimit(1))
	if err != nil {
		return false, storeErr("count applications", err)
	}
	return n > 0, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc applicationDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, storeErr("find application", err)
	}
	return doc.toDomain(), nil
}

// ListByCandidate returns the candidate's applications, most recent first.
func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*domain.Application, error) {
	oid, ok := objectID(candidateID)
	if !ok {
		return []*domain.Application{}, nil
	}
	return r.list(ctx, bson.M{"candidate_id": oid}, options.Find().SetSort(bson.D{{Key: "applied_at", Value: -1}}))
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]*domain.Application, error) {
	oid, ok := objectID(jobID)
	if !ok {
		return []*domain.Application{}, nil
	}
	return r.list(ctx, bson.M{"job_id": oid}, options.Find().SetSort(bson.D{{Key: "applied_at", Value: 1}}))
}

func (r *ApplicationRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := findAll[applicationDoc](ctx, r.coll, filter, opts)
	if err != nil {
		return nil, storeErr("list applications", err)
	}
	apps := make([]*domain.Application, len(docs))
	for i := range docs {
		apps[i] = docs[i].toDomain()
	}
	return apps, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc applicationDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": string(status)}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, storeErr("update application status", err)
	}
	return doc.toDomain(), nil
}
