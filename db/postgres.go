package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const (
	maxOpenConns    = 10
	connMaxLifetime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

var DB *sql.DB

// Connect opens the digest history database and checks it answers within
// pingTimeout.
func Connect(connStr string) error {
	if connStr == "" {
		return fmt.Errorf("DATABASE_URL is empty")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(maxOpenConns)
	DB.SetMaxIdleConns(maxOpenConns)
	DB.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return DB.PingContext(ctx)
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}
