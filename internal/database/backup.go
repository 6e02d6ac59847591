package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"turfbook/internal/config"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

// BackupService snapshots the sqlite file on a fixed interval so the
// booking database can be restored after corruption or loss.
type BackupService struct {
	sourcePath string
	cfg        config.BackupConfig
	logger     *zerolog.Logger
}

func NewBackupService(sourcePath string, cfg config.BackupConfig, logger *zerolog.Logger) *BackupService {
	return &BackupService{
		sourcePath: sourcePath,
		cfg:        cfg,
		logger:     logger,
	}
}

// Run takes an immediate snapshot and then repeats on the configured
// interval until the context is cancelled. Old snapshots past the
// retention window are pruned after each run.
func (b *BackupService) Run(ctx context.Context) {
	if !b.cfg.Enabled {
		b.logger.Info().Msg("database backups disabled")
		return
	}

	interval := b.interval()
	b.logger.Info().Dur("interval", interval).Str("dir", b.cfg.Dir).Msg("backup service started")

	if _, err := b.Snapshot(); err != nil {
		b.logger.Error().Err(err).Msg("initial backup failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := b.Snapshot(); err != nil {
				b.logger.Error().Err(err).Msg("scheduled backup failed")
			}
			b.Prune()
		}
	}
}

func (b *BackupService) interval() time.Duration {
	if b.cfg.Interval == "" {
		return 24 * time.Hour
	}
	d, err := time.ParseDuration(b.cfg.Interval)
	if err != nil || d <= 0 {
		b.logger.Warn().Str("interval", b.cfg.Interval).Msg("invalid backup interval, using 24h")
		return 24 * time.Hour
	}
	return d
}

// Snapshot writes a timestamped copy of the database into the backup
// directory and returns its path. VACUUM INTO produces a consistent
// snapshot while other connections keep writing.
func (b *BackupService) Snapshot() (string, error) {
	if err := os.MkdirAll(b.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("turfbook_%s.db", time.Now().Format("20060102_150405"))
	dest := filepath.Join(b.cfg.Dir, name)

	db, err := sql.Open("sqlite3", b.sourcePath)
	if err != nil {
		return "", fmt.Errorf("open source database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(fmt.Sprintf("VACUUM INTO '%s'", dest)); err != nil {
		b.logger.Warn().Err(err).Msg("VACUUM INTO failed, falling back to file copy")
		if copyErr := b.copyFile(dest); copyErr != nil {
			return "", copyErr
		}
	}

	b.logger.Info().Str("path", dest).Msg("backup written")
	return dest, nil
}

// copyFile is the non-transactional fallback. The copy can be
// inconsistent if writes land mid-copy.
func (b *BackupService) copyFile(dest string) error {
	source, err := os.Open(b.sourcePath)
	if err != nil {
		return err
	}
	defer source.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, source)
	return err
}

// Prune removes snapshots older than the retention window and returns
// how many were deleted. RetentionDays <= 0 keeps everything.
func (b *BackupService) Prune() int {
	if b.cfg.RetentionDays <= 0 {
		return 0
	}

	entries, err := os.ReadDir(b.cfg.Dir)
	if err != nil {
		b.logger.Error().Err(err).Msg("read backup directory")
		return 0
	}

	cutoff := time.Now().AddDate(0, 0, -b.cfg.RetentionDays)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			b.logger.Info().Str("file", entry.Name()).Msg("pruning old backup")
			if err := os.Remove(filepath.Join(b.cfg.Dir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed
}
