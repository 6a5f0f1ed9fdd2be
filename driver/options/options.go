/*
Copyright 2025 eatmoreapple

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package options provides the functional-option wrapper DBManager uses
// around sql.Open to apply connection pool settings in one place.
package options

import (
	"database/sql"
	"time"
)

// ConnectOption configures a *sql.DB right after it is opened.
type ConnectOption func(db *sql.DB)

// ConnectWithMaxOpenConnNum sets db.SetMaxOpenConns. A non-positive n leaves
// the default (unlimited) in place.
func ConnectWithMaxOpenConnNum(n int) ConnectOption {
	return func(db *sql.DB) {
		if n > 0 {
			db.SetMaxOpenConns(n)
		}
	}
}

// ConnectWithMaxIdleConnNum sets db.SetMaxIdleConns. A non-positive n leaves
// the default in place.
func ConnectWithMaxIdleConnNum(n int) ConnectOption {
	return func(db *sql.DB) {
		if n > 0 {
			db.SetMaxIdleConns(n)
		}
	}
}

// ConnectWithMaxConnLifetime sets db.SetConnMaxLifetime. A non-positive d
// leaves connections live forever, database/sql's default.
func ConnectWithMaxConnLifetime(d time.Duration) ConnectOption {
	return func(db *sql.DB) {
		if d > 0 {
			db.SetConnMaxLifetime(d)
		}
	}
}

// ConnectWithMaxIdleConnLifetime sets db.SetConnMaxIdleTime. A non-positive d
// leaves the default in place.
func ConnectWithMaxIdleConnLifetime(d time.Duration) ConnectOption {
	return func(db *sql.DB) {
		if d > 0 {
			db.SetConnMaxIdleTime(d)
		}
	}
}

// Connect opens a *sql.DB for driverName/dsn and applies opts in order.
// It pings the connection once to surface a misconfigured DSN immediately
// rather than on the first query.
func Connect(driverName, dsn string, opts ...ConnectOption) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(db)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
