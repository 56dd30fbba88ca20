package services

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BackupData creates a zip archive of everything under the data
// directory, skipping previous backups. Returns the archive path.
func BackupData(dataDir string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}
	timestamp := time.Now().Format("20060102-1504")
	zipPath := filepath.Join(dataDir, "backup-"+timestamp+".zip")

	// Remove old zip if exists
	if _, err := os.Stat(zipPath); err == nil {
		if err := os.Remove(zipPath); err != nil {
			return "", err
		}
	}

	zipFile, err := os.Create(zipPath)
	if err != nil {
		return "", err
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()

	err = filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		name := filepath.Base(path)
		if strings.HasPrefix(name, "backup-") && strings.HasSuffix(name, ".zip") {
			return nil
		}

		rel, err := filepath.Rel(dataDir, path)
		if err != nil {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer f.Close()

		w, err := zipWriter.Create(filepath.ToSlash(rel))
		if err != nil {
			return nil
		}
		if _, err := io.Copy(w, f); err != nil {
			return nil // skip files that fail mid-copy
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return zipPath, nil
}
