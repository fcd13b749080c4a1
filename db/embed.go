// Package db хранит SQL-миграции, встроенные в бинарник
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir - каталог миграций внутри Migrations
const MigrationsDir = "migrations"
