package app

import (
	"github.com/moyu-x/photo-importer/pkg/config"
	"github.com/moyu-x/photo-importer/pkg/database"
)

// RunHistory 读取最近的导入记录
func RunHistory(cfg *config.Config, limit int) ([]database.ImportRun, error) {
	db, err := database.NewDatabase(cfg.Journal.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.RecentRuns(limit)
}
