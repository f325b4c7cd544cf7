package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	appName        = "taskcrm"
	connectTimeout = 10 * time.Second
	// defaultTimeout bounds every single repository call.
	defaultTimeout = 10 * time.Second
)

// Options selects the deployment and database holding the users, tasks and
// customers collections.
type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Dial connects to MongoDB and pings the primary before handing back the
// client and the configured database.
func Dial(ctx context.Context, opts Options) (*mongo.Client, *mongo.Database, error) {
	wait := opts.ConnectTimeout
	if wait <= 0 {
		wait = connectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(wait)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping %s: %w", opts.Database, err)
	}
	return client, client.Database(opts.Database), nil
}

// EnsureIndexes creates the indexes of the three collections.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"users", NewUserRepository(db).EnsureIndexes},
		{"tasks", NewTaskRepository(db).EnsureIndexes},
		{"customers", NewCustomerRepository(db).EnsureIndexes},
	}
	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			return fmt.Errorf("%s indexes: %w", s.name, err)
		}
	}
	return nil
}
