package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
)

const collectionTasks = "tasks"

type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

type mongoTask struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Title       string              `bson:"title"`
	Description string              `bson:"description"`
	Status      string              `bson:"status"`
	DueDate     time.Time           `bson:"due_date"`
	AssignedTo  primitive.ObjectID  `bson:"assigned_to"`
	CustomerID  *primitive.ObjectID `bson:"customer_id,omitempty"`
	CreatedAt   time.Time           `bson:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at"`
}

func (t mongoTask) toDomain() *domain.Task {
	task := &domain.Task{
		ID:           t.ID.Hex(),
		Title:        t.Title,
		Description:  t.Description,
		Status:       domain.TaskStatus(t.Status),
		DueDate:      t.DueDate.UTC(),
		AssignedToID: t.AssignedTo.Hex(),
		CreatedAt:    t.CreatedAt.UTC(),
		UpdatedAt:    t.UpdatedAt.UTC(),
	}
	if t.CustomerID != nil {
		task.CustomerID = t.CustomerID.Hex()
	}
	return task
}

type userSummaryDoc struct {
	ID    primitive.ObjectID `bson:"_id"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
	Role  string             `bson:"role"`
}

type customerSummaryDoc struct {
	ID      primitive.ObjectID `bson:"_id"`
	Name    string             `bson:"name"`
	Email   string             `bson:"email"`
	Company string             `bson:"company"`
	Contact int64              `bson:"contact"`
}

// taskViewDoc is the shape produced by taskViewPipeline.
type taskViewDoc struct {
	ID          primitive.ObjectID  `bson:"_id"`
	Title       string              `bson:"title"`
	Status      string              `bson:"status"`
	Description string              `bson:"description"`
	DueDate     time.Time           `bson:"due_date"`
	Assignee    *userSummaryDoc     `bson:"assignee,omitempty"`
	Customer    *customerSummaryDoc `bson:"customer,omitempty"`
}

func (d taskViewDoc) toDomain() domain.TaskView {
	v := domain.TaskView{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Status:      domain.TaskStatus(d.Status),
		Description: d.Description,
		DueDate:     d.DueDate.UTC(),
	}
	if d.Assignee != nil {
		v.AssignedTo = &domain.UserSummary{
			ID:    d.Assignee.ID.Hex(),
			Name:  d.Assignee.Name,
			Email: d.Assignee.Email,
			Role:  domain.Role(d.Assignee.Role),
		}
	}
	if d.Customer != nil {
		v.Customer = &domain.CustomerSummary{
			ID:      d.Customer.ID.Hex(),
			Name:    d.Customer.Name,
			Email:   d.Customer.Email,
			Company: d.Customer.Company,
			Contact: d.Customer.Contact,
		}
	}
	return v
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	assignee, err := primitive.ObjectIDFromHex(task.AssignedToID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	doc := mongoTask{
		ID:          primitive.NewObjectID(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		DueDate:     task.DueDate,
		AssignedTo:  assignee,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.CustomerID != "" {
		customer, err := primitive.ObjectIDFromHex(task.CustomerID)
		if err != nil {
			return nil, domain.ErrCustomerNotFound
		}
		doc.CustomerID = &customer
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTask
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) FindView(ctx context.Context, id string) (*domain.TaskView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	views, err := r.aggregate(ctx, taskViewPipeline(bson.D{{Key: "_id", Value: oid}}))
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return &views[0], nil
}

func (r *TaskRepository) List(ctx context.Context, q ports.TaskQuery) ([]domain.TaskView, error) {
	match, err := taskListMatch(q)
	if errors.Is(err, errNoMatch) {
		return []domain.TaskView{}, nil
	}
	return r.aggregate(ctx, taskViewPipeline(match))
}

func (r *TaskRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]domain.TaskView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []taskViewDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	views := make([]domain.TaskView, 0, len(docs))
	for _, d := range docs {
		views = append(views, d.toDomain())
	}
	return views, nil
}

// Update applies patch in a single write and reports domain.ErrTaskNotFound
// when no document matched.
func (r *TaskRepository) Update(ctx context.Context, id string, patch ports.TaskPatch) error {
	set := bson.M{"status": string(patch.Status), "updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	return r.updateOne(ctx, id, set)
}

func (r *TaskRepository) SetCustomer(ctx context.Context, taskID, customerID string) error {
	customer, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return domain.ErrCustomerNotFound
	}
	return r.updateOne(ctx, taskID, bson.M{"customer_id": customer, "updated_at": time.Now().UTC()})
}

func (r *TaskRepository) updateOne(ctx context.Context, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
