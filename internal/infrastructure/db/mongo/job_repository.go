package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	goerrors "github.com/go-errors/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
)

const jobsCollection = "jobs"

type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{coll: db.Collection(jobsCollection)}
}

type jobDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Requirements []string           `bson:"requirements"`
	Skills       []string           `bson:"skills"`
	Location     string             `bson:"location"`
	Type         string             `bson:"type"`
	Salary       *float64           `bson:"salary,omitempty"`
	EmployerID   primitive.ObjectID `bson:"employer_id"`
	Deadline     time.Time          `bson:"deadline"`
	IsActive     bool               `bson:"is_active"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func newJobDoc(j *domain.Job) (jobDoc, error) {
	employerID, ok := objectID(j.EmployerID)
	if !ok {
		return jobDoc{}, goerrors.Errorf("job employer id %q is not an object id", j.EmployerID)
	}
	return jobDoc{
		Title:        j.Title,
		Description:  j.Description,
		Requirements: j.Requirements,
		Skills:       j.Skills,
		Location:     j.Location,
		Type:         string(j.Type),
		Salary:       j.Salary,
		EmployerID:   employerID,
		Deadline:     j.Deadline,
		IsActive:     j.IsActive,
		CreatedAt:    j.CreatedAt,
	}, nil
}

func (d *jobDoc) toDomain() *domain.Job {
	return &domain.Job{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		Requirements: d.Requirements,
		Skills:       d.Skills,
		Location:     d.Location,
		Type:         domain.JobType(d.Type),
		Salary:       d.Salary,
		EmployerID:   d.EmployerID.Hex(),
		Deadline:     d.Deadline.UTC(),
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func (r *JobRepository) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	doc, err := newJobDoc(j)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, storeErr("insert job", err)
	}
	return doc.toDomain(), nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc jobDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, storeErr("find job", err)
	}
	return doc.toDomain(), nil
}

func (r *JobRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Job, error) {
	out := make(map[string]*domain.Job, len(ids))
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := findAll[jobDoc](ctx, r.coll, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, storeErr("find jobs", err)
	}
	for i := range docs {
		j := docs[i].toDomain()
		out[j.ID] = j
	}
	return out, nil
}

// List returns the jobs matching f, newest first.
func (r *JobRepository) List(ctx context.Context, f ports.JobFilter) ([]*domain.Job, error) {
	filter, ok := jobFilter(f)
	if !ok {
		return []*domain.Job{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := findAll[jobDoc](ctx, r.coll, filter, opts)
	if err != nil {
		return nil, storeErr("list jobs", err)
	}
	jobs := make([]*domain.Job, len(docs))
	for i := range docs {
		jobs[i] = docs[i].toDomain()
	}
	return jobs, nil
}

// jobFilter builds the query document for f. Title and location match as
// case-insensitive literal substrings. It reports false when f can match
// nothing.
func jobFilter(f ports.JobFilter) (bson.M, bool) {
	filter := bson.M{}
	if f.ActiveOnly {
		filter["is_active"] = true
	}
	if f.EmployerID != "" {
		oid, ok := objectID(f.EmployerID)
		if !ok {
			return nil, false
		}
		filter["employer_id"] = oid
	}
	if f.Title != "" {
		filter["title"] = containsFold(f.Title)
	}
	if f.Location != "" {
		filter["location"] = containsFold(f.Location)
	}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	return filter, true
}

func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// Replace overwrites the stored job with j, keeping its id.
func (r *JobRepository) Replace(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	oid, ok := objectID(j.ID)
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	doc, err := newJobDoc(j)
	if err != nil {
		return nil, err
	}
	doc.ID = oid

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var out jobDoc
	if err := r.coll.FindOneAndReplace(ctx, bson.M{"_id": oid}, doc, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, storeErr("replace job", err)
	}
	return out.toDomain(), nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr("delete job", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
