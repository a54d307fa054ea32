package ioc

import (
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hantaozhou/docvault/internal/repository/dao"
	"github.com/hantaozhou/docvault/pkg/log"
)

// InitDB opens the sqlite database and runs the idempotent schema setup.
// Migration happens once here at process start; nothing else touches the
// schema.
func InitDB() *gorm.DB {
	path := os.Getenv("DOCVAULT_DB")
	if path == "" {
		path = "docvault.db"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open database %s: %v", path, err)
	}
	if err := db.AutoMigrate(&dao.User{}, &dao.Folder{}, &dao.File{}); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}
