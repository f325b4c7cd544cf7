// Package storage selects and opens the persistence backend named by the
// configuration and exposes its repositories behind the core ports.
package storage

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/task-crm/internal/core/ports"
	"github.com/99minutos/task-crm/internal/infrastructure/config"
	"github.com/99minutos/task-crm/internal/infrastructure/db/bunx"
	mongodb "github.com/99minutos/task-crm/internal/infrastructure/db/mongo"
)

// Backend bundles the repositories of one storage driver with its lifecycle
// hooks.
type Backend struct {
	Name      string
	Users     ports.UserRepository
	Tasks     ports.TaskRepository
	Customers ports.CustomerRepository

	ping    func(ctx context.Context) error
	migrate func(ctx context.Context) error
	close   func(ctx context.Context) error
}

// Open connects to the backend selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		client, db, err := mongodb.Dial(ctx, mongodb.Options{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		return NewMongo(client, db), nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := bunx.Open(ctx, cfg.SQL.DSN)
		if err != nil {
			return nil, err
		}
		return NewBun(cfg.Storage.Driver, db), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// NewMongo wraps an established MongoDB connection.
func NewMongo(client *mongo.Client, db *mongo.Database) *Backend {
	return &Backend{
		Name:      "mongodb",
		Users:     mongodb.NewUserRepository(db),
		Tasks:     mongodb.NewTaskRepository(db),
		Customers: mongodb.NewCustomerRepository(db),
		ping: func(ctx context.Context) error {
			if err := client.Ping(ctx, nil); err != nil {
				return err
			}
			return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		},
		migrate: func(ctx context.Context) error {
			return mongodb.EnsureIndexes(ctx, db)
		},
		close: client.Disconnect,
	}
}

// NewBun wraps an open bun database. name labels the backend in readiness
// reports.
func NewBun(name string, db *bun.DB) *Backend {
	return &Backend{
		Name:      name,
		Users:     bunx.NewUserRepository(db),
		Tasks:     bunx.NewTaskRepository(db),
		Customers: bunx.NewCustomerRepository(db),
		ping:      db.PingContext,
		migrate: func(ctx context.Context) error {
			return bunx.CreateTables(ctx, db)
		},
		close: func(context.Context) error {
			return db.Close()
		},
	}
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.ping(ctx)
}

// Migrate creates the tables or indexes the repositories depend on. It is
// safe to run repeatedly.
func (b *Backend) Migrate(ctx context.Context) error {
	if err := b.migrate(ctx); err != nil {
		return fmt.Errorf("migrate %s: %w", b.Name, err)
	}
	return nil
}

func (b *Backend) Close(ctx context.Context) error {
	return b.close(ctx)
}
