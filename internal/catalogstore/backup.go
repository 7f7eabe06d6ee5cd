package catalogstore

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/cascadedb/cascade/internal/storage"
)

// Backup uploads every file in localFiles to objectStorage under prefix,
// one object per file named after the file's base name, with
// UploadMultipart (an unconditional overwrite). It is best-effort: the
// catalog store's durability comes from local disk/consensus, not from
// this backup, so a single object failing to upload is logged and
// skipped rather than aborting the whole pass, and Backup returns nil.
func Backup(ctx context.Context, objectStorage storage.ObjectStorage, localFiles []string, prefix string) error {
	for _, localPath := range localFiles {
		objectPath := filepath.Join(prefix, filepath.Base(localPath))
		if _, err := objectStorage.UploadMultipart(ctx, localPath, objectPath); err != nil {
			log.Printf("catalogstore: backup of %s failed (will retry next interval): %v", localPath, err)
			continue
		}
	}
	return nil
}

// RunBackupLoop runs Backup on a ticker until ctx is cancelled, the
// compaction daemon's "run once, then tick" shape adapted to a simpler
// fire-and-forget snapshot job.
func RunBackupLoop(ctx context.Context, objectStorage storage.ObjectStorage, localFiles func() []string, prefix string, interval time.Duration) {
	runOnce := func() {
		if err := Backup(ctx, objectStorage, localFiles(), prefix); err != nil {
			log.Printf("catalogstore: backup pass failed: %v", err)
		}
	}

	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

// LocalFilesForStore returns the backing SQLite file path(s) for a single
// unsharded store, or every shard file for a sharded store rooted at
// baseDir, for use as the localFiles callback passed to RunBackupLoop.
func LocalFilesForStore(path string, sharded bool, shardCount int) []string {
	if !sharded {
		return []string{path}
	}
	files := make([]string, 0, shardCount)
	for i := 0; i < shardCount; i++ {
		files = append(files, filepath.Join(path, fmt.Sprintf("catalog_shard_%04d.db", i)))
	}
	return files
}
