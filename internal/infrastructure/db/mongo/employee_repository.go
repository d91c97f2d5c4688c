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

	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
)

const collectionEmployees = "employees"

type EmployeeRepository struct {
	col *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{col: db.Collection(collectionEmployees)}
}

type mongoEmployee struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Firstname    string             `bson:"firstname"`
	Lastname     string             `bson:"lastname"`
	NationalID   string             `bson:"nationalId"`
	Telephone    string             `bson:"telephone"`
	Email        string             `bson:"email"`
	Department   string             `bson:"department"`
	Position     string             `bson:"position"`
	Manufacturer string             `bson:"manufacturer"`
	Model        string             `bson:"model"`
	SerialNumber string             `bson:"serialNumber"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (m *mongoEmployee) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:           m.ID.Hex(),
		Firstname:    m.Firstname,
		Lastname:     m.Lastname,
		NationalID:   m.NationalID,
		Telephone:    m.Telephone,
		Email:        m.Email,
		Department:   m.Department,
		Position:     m.Position,
		Manufacturer: m.Manufacturer,
		Model:        m.Model,
		SerialNumber: m.SerialNumber,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

// Create inserts a new employee document.
func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEmployee{
		Firstname:    e.Firstname,
		Lastname:     e.Lastname,
		NationalID:   e.NationalID,
		Telephone:    e.Telephone,
		Email:        e.Email,
		Department:   e.Department,
		Position:     e.Position,
		Manufacturer: e.Manufacturer,
		Model:        e.Model,
		SerialNumber: e.SerialNumber,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateNationalID
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// FindByID retrieves an employee by hex id.
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoEmployee
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return m.toDomain(), nil
}

// List returns one page ordered by id together with the collection size.
func (r *EmployeeRepository) List(ctx context.Context, skip, limit int64) ([]*domain.Employee, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoEmployee
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode employees: %w", err)
	}

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	out := make([]*domain.Employee, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, total, nil
}

// Update applies the non-nil patch fields and returns the updated document.
func (r *EmployeeRepository) Update(ctx context.Context, id string, patch ports.EmployeePatch) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := patchToSet(patch)
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m mongoEmployee
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&m)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrEmployeeNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrDuplicateNationalID
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return m.toDomain(), nil
}

// Delete removes the employee, or reports domain.ErrEmployeeNotFound.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// EnsureIndexes creates the unique national id index.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "nationalId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_national_id"),
	})
	return err
}

func patchToSet(p ports.EmployeePatch) bson.M {
	set := bson.M{}
	fields := map[string]*string{
		"firstname":    p.Firstname,
		"lastname":     p.Lastname,
		"nationalId":   p.NationalID,
		"telephone":    p.Telephone,
		"email":        p.Email,
		"department":   p.Department,
		"position":     p.Position,
		"manufacturer": p.Manufacturer,
		"model":        p.Model,
		"serialNumber": p.SerialNumber,
	}
	for k, v := range fields {
		if v != nil {
			set[k] = *v
		}
	}
	return set
}
