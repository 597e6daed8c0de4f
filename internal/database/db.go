// Package database opens the MySQL connection shared by the schedule,
// timesheet, outbound, VAS and settings repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// The workload is many short transactions from the schedule board plus the
// occasional bulk import, so the pool stays small by default. DB_MAX_OPEN
// and DB_MAX_IDLE override it for bigger deployments.
const (
	defaultMaxOpen = 10
	defaultMaxIdle = 5
)

// Open connects to MySQL and verifies the connection with a short ping.
// parseTime=true maps DATETIME columns onto time.Time; loc=UTC keeps the
// created/updated stamps consistent with the stores' UTC writes.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(poolSize("DB_MAX_OPEN", defaultMaxOpen))
	db.SetMaxIdleConns(poolSize("DB_MAX_IDLE", defaultMaxIdle))
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func poolSize(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
