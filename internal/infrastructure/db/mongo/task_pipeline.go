package mongo

import (
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/task-crm/internal/core/ports"
)

// errNoMatch marks a query that cannot match any document, e.g. an
// assignee id that is not a valid ObjectID.
var errNoMatch = errors.New("query cannot match")

// taskListMatch translates a TaskQuery into a $match filter. Status and
// title filters are case-sensitive substring matches.
func taskListMatch(q ports.TaskQuery) (bson.D, error) {
	match := bson.D{}
	if q.AssignedTo != "" {
		oid, err := primitive.ObjectIDFromHex(q.AssignedTo)
		if err != nil {
			return nil, errNoMatch
		}
		match = append(match, bson.E{Key: "assigned_to", Value: oid})
	}
	if q.Status != "" {
		match = append(match, bson.E{Key: "status", Value: bson.M{"$regex": regexp.QuoteMeta(q.Status)}})
	}
	if q.Title != "" {
		match = append(match, bson.E{Key: "title", Value: bson.M{"$regex": regexp.QuoteMeta(q.Title)}})
	}
	return match, nil
}

// taskViewPipeline joins the assignee and customer onto every task matching
// match and projects the reduced view. The password hash never leaves the
// users collection.
func taskViewPipeline(match bson.D) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	return append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		lookupOne(collectionUsers, "assigned_to", "assignee"),
		unwindOptional("$assignee"),
		lookupOne(collectionCustomers, "customer_id", "customer"),
		unwindOptional("$customer"),
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "title", Value: 1},
			{Key: "status", Value: 1},
			{Key: "description", Value: 1},
			{Key: "due_date", Value: 1},
			{Key: "assignee._id", Value: 1},
			{Key: "assignee.name", Value: 1},
			{Key: "assignee.email", Value: 1},
			{Key: "assignee.role", Value: 1},
			{Key: "customer._id", Value: 1},
			{Key: "customer.name", Value: 1},
			{Key: "customer.email", Value: 1},
			{Key: "customer.company", Value: 1},
			{Key: "customer.contact", Value: 1},
		}}},
	)
}

func lookupOne(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
	}}}
}

func unwindOptional(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: path},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
}
