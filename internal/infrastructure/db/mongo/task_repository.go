package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unmatched/taskboard/internal/core/domain"
	"github.com/unmatched/taskboard/internal/core/ports"
)

const (
	collectionTasks = "tasks"
	counterTasks    = "task_id"
)

// TaskRepository implements ports.TaskRepository on a tasks collection.
type TaskRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{db: db, col: db.Collection(collectionTasks)}
}

// NextID returns the next value of the monotonic task id counter.
func (r *TaskRepository) NextID(ctx context.Context) (int64, error) {
	return nextSequence(ctx, r.db, counterTasks)
}

func (r *TaskRepository) Insert(ctx context.Context, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, task)
	return err
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// UpdateStatus applies the status change as one document update: status and
// updated_at are set, and the rejection reason is set or removed in the same
// write so the reason-iff-rejected invariant can never be observed broken.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus, reason string, updatedAt time.Time) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": status, "updated_at": updatedAt.UTC()}
	update := bson.M{"$set": set}
	if reason != "" {
		set["rejection_reason"] = reason
	} else {
		update["$unset"] = bson.M{"rejection_reason": ""}
	}

	return r.findOneAndUpdate(ctx, id, update)
}

// UpdateAssignee replaces the assignee in one document update.
func (r *TaskRepository) UpdateAssignee(ctx context.Context, id int64, assigneeID int64, updatedAt time.Time) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"assignee_id": assigneeID, "updated_at": updatedAt.UTC()}}
	return r.findOneAndUpdate(ctx, id, update)
}

func (r *TaskRepository) findOneAndUpdate(ctx context.Context, id int64, update bson.M) (*domain.Task, error) {
	var t domain.Task
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	if filter.Area != "" {
		q["area"] = filter.Area
	}
	if filter.AssigneeID != nil {
		q["assignee_id"] = *filter.AssigneeID
	}
	if filter.CreatorID != nil {
		q["created_by_id"] = *filter.CreatorID
	}

	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tasks := []*domain.Task{}
	for cur.Next(ctx) {
		var t domain.Task
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, cur.Err()
}

func (r *TaskRepository) CountByStatus(ctx context.Context) (map[domain.TaskStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := make(map[domain.TaskStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status domain.TaskStatus `bson:"_id"`
			Count  int64             `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.Status] = row.Count
	}
	return counts, cur.Err()
}

func (r *TaskRepository) CountCreatedBy(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"created_by_id": userID})
}

func (r *TaskRepository) CountCompletedBy(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"assignee_id": userID, "status": domain.StatusCompleted})
}

// TopCreators ranks users by number of tasks created.
func (r *TaskRepository) TopCreators(ctx context.Context, limit int) ([]ports.LeaderboardEntry, error) {
	return r.leaderboard(ctx, "$created_by_id", bson.M{}, limit)
}

// TopDevelopers ranks users by number of completed tasks assigned to them.
func (r *TaskRepository) TopDevelopers(ctx context.Context, limit int) ([]ports.LeaderboardEntry, error) {
	return r.leaderboard(ctx, "$assignee_id", bson.M{"status": domain.StatusCompleted}, limit)
}

func (r *TaskRepository) leaderboard(ctx context.Context, groupField string, match bson.M, limit int) ([]ports.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": groupField, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.M{"username": "$user.username", "count": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := []ports.LeaderboardEntry{}
	for cur.Next(ctx) {
		var e ports.LeaderboardEntry
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, cur.Err()
}

// EnsureIndexes creates the indexes the list and statistics queries rely on.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "area", Value: 1}}},
		{Keys: bson.D{{Key: "assignee_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_by_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
