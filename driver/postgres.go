/*
Copyright 2023 eatmoreapple

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

package driver

import (
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

// PostgresDriver covers both registered database/sql driver names that
// target PostgreSQL in this module: "postgres" (lib/pq) and "pgx" (the
// pgx/v5/stdlib adapter). Both speak the same numbered placeholder
// convention, so one Driver implementation serves either; Dialect picks
// which registered name this instance reports.
type PostgresDriver struct {
	Dialect string
}

func (d PostgresDriver) Name() string {
	if d.Dialect == "" {
		return "postgres"
	}
	return d.Dialect
}

func (PostgresDriver) Translator() Translator { return &numberedTranslator{} }

func init() {
	Register("postgres", PostgresDriver{Dialect: "postgres"})
	Register("pgx", PostgresDriver{Dialect: "pgx"})
}
