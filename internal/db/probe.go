package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNoDatabase is returned by Probe when neither engine answers.
var ErrNoDatabase = errors.New("no database reachable")

const (
	EnginePostgres = "PostgreSQL"
	EngineSQLite   = "SQLite"
)

// EngineInfo describes the database the process is connected to.
type EngineInfo struct {
	Engine     string   `json:"database_engine"`
	Version    string   `json:"version"`
	Tables     []string `json:"tables"`
	IsPostgres bool     `json:"is_clever_cloud"`
	Message    string   `json:"message"`
}

// Probe identifies the connected engine. It asks for a PostgreSQL version and the
// public tables first and falls back to SQLite's version function.
func Probe(ctx context.Context, conn *gorm.DB) (*EngineInfo, error) {
	conn = conn.WithContext(ctx)

	info, pgErr := probePostgres(conn)
	if pgErr == nil {
		return info, nil
	}

	var version string
	if err := conn.Raw("SELECT sqlite_version()").Row().Scan(&version); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDatabase, err)
	}
	tables, err := conn.Migrator().GetTables()
	if err != nil {
		tables = []string{}
	}
	return &EngineInfo{
		Engine:  EngineSQLite,
		Version: version,
		Tables:  tables,
		Message: "Usando SQLite local",
	}, nil
}

func probePostgres(conn *gorm.DB) (*EngineInfo, error) {
	var version string
	if err := conn.Raw("SELECT version()").Row().Scan(&version); err != nil {
		return nil, err
	}

	rows, err := conn.Raw("SELECT table_name FROM information_schema.tables WHERE table_schema = 'public'").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	isPostgres := strings.Contains(strings.ToLower(version), "postgresql")
	info := &EngineInfo{
		Engine:     EngineSQLite,
		Version:    version,
		Tables:     tables,
		IsPostgres: isPostgres,
		Message:    "Usando SQLite local",
	}
	if isPostgres {
		info.Engine = EnginePostgres
		info.Message = "Conectado a PostgreSQL"
	}
	return info, nil
}
