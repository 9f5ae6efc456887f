package task

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/dev-toolbox-service/internal/app"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func init() {
	Register(func(a *app.App) (Task, error) {
		cfg := a.Config()
		if !cfg.Database.BackupEnabled {
			return nil, nil
		}
		if cfg.Database.Type != "sqlite" {
			a.Logger().Warn("db backup task supports sqlite only, task disabled",
				zap.String("type", cfg.Database.Type))
			return nil, nil
		}
		return &DBBackupTask{app: a}, nil
	})
}

// DBBackupTask 定时数据库备份任务
// 通过 VACUUM INTO 生成一致性快照, 与配置文件一起打包到备份目录
type DBBackupTask struct {
	app *app.App
}

func (t *DBBackupTask) Name() string {
	return "db_backup"
}

func (t *DBBackupTask) LoopInterval() time.Duration {
	return 24 * time.Hour
}

func (t *DBBackupTask) IsStartupRun() bool {
	return false
}

func (t *DBBackupTask) Run(ctx context.Context) error {
	path, err := RunBackupNow(ctx, t.app)
	if err != nil {
		return err
	}

	t.app.Logger().Info("db backup created", zap.String("path", path))

	if removed := pruneOldBackups(t.app); removed > 0 {
		t.app.Logger().Info("stale db backups removed", zap.Int("removed", removed))
	}
	return nil
}

// RunBackupNow 立即执行一次备份, 返回备份文件路径
// 管理接口手动触发备份时也走这里
func RunBackupNow(ctx context.Context, a *app.App) (string, error) {
	cfg := a.Config()
	if cfg.Database.Type != "sqlite" {
		return "", errors.New("db backup supports sqlite only")
	}

	if err := os.MkdirAll(cfg.Database.BackupPath, 0755); err != nil {
		return "", errors.Wrap(err, "create backup dir failed")
	}
	if err := os.MkdirAll(cfg.App.TempPath, 0755); err != nil {
		return "", errors.Wrap(err, "create temp dir failed")
	}

	stamp := time.Now().Format("20060102-150405")

	// VACUUM INTO 在线生成快照, 避免直接拷贝数据库文件撕裂
	snapshot := filepath.Join(cfg.App.TempPath, "db-backup-"+stamp+".sqlite3")
	if err := a.DB.WithContext(ctx).Exec("VACUUM INTO ?", snapshot).Error; err != nil {
		return "", errors.Wrap(err, "vacuum snapshot failed")
	}
	defer os.Remove(snapshot)

	zipPath := filepath.Join(cfg.Database.BackupPath, "backup-"+stamp+".zip")
	if err := writeBackupArchive(zipPath, snapshot, cfg.File); err != nil {
		os.Remove(zipPath)
		return "", err
	}

	return zipPath, nil
}

// writeBackupArchive 打包数据库快照与配置文件
func writeBackupArchive(zipPath string, snapshot string, configFile string) error {
	f, err := os.Create(zipPath)
	if err != nil {
		return errors.Wrap(err, "create backup archive failed")
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	if err := addArchiveFile(zw, snapshot, "db.sqlite3"); err != nil {
		zw.Close()
		return err
	}

	if configFile != "" {
		if err := addArchiveFile(zw, configFile, filepath.Base(configFile)); err != nil {
			zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "finalize backup archive failed")
	}
	return nil
}

func addArchiveFile(zw *zip.Writer, path string, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s failed", name)
	}
	defer src.Close()

	w, err := zw.Create(name)
	if err != nil {
		return errors.Wrapf(err, "add %s to archive failed", name)
	}

	_, err = io.Copy(w, src)
	return errors.Wrapf(err, "write %s to archive failed", name)
}

// pruneOldBackups 清理超过保留天数的备份文件
func pruneOldBackups(a *app.App) int {
	cfg := a.Config()
	keepDays := cfg.Database.BackupKeepDays
	if keepDays <= 0 {
		return 0
	}

	entries, err := os.ReadDir(cfg.Database.BackupPath)
	if err != nil {
		return 0
	}

	cutoff := time.Now().AddDate(0, 0, -keepDays)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "backup-") || !strings.HasSuffix(name, ".zip") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(cfg.Database.BackupPath, name)); err == nil {
				removed++
			}
		}
	}

	return removed
}
