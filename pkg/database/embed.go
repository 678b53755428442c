package database

import "embed"

// MigrationFS 嵌入 PostgreSQL 迁移脚本
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
