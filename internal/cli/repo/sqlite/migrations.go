package sqlite

import (
	_ "embed"
)

// DDL таблицы kv, встроенный в бинарь.
//
//go:embed migrations/001_init.sql
var kvDDL string

func initialDDL() string { return kvDDL }
