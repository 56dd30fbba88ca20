package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// keyFilePattern restricts which files in the data directory are treated
// as collection values. Anything else (backups, editor droppings) is
// ignored by the watcher and the full sync.
var keyFilePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+\.json$`)

// FileStore persists each key as a <key>.json file in a data directory,
// the local-disk analogue of browser localStorage. An in-memory cache
// fronts the files; a file system watcher reconciles external edits so a
// second process (or a stray text editor) converges with this one.
type FileStore struct {
	dataDir      string
	values       map[string]string
	mu           sync.RWMutex
	watcher      *fsnotify.Watcher
	fileModTimes map[string]time.Time
	logger       *zap.Logger
	done         chan struct{}
}

// NewFileStore opens (creating if needed) a file-backed store rooted at
// dataDir and loads every existing key.
func NewFileStore(dataDir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dataDir, err)
	}

	s := &FileStore{
		dataDir:      dataDir,
		values:       make(map[string]string),
		fileModTimes: make(map[string]time.Time),
		logger:       logger,
		done:         make(chan struct{}),
	}

	if err := s.syncFromDisk(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("could not create file watcher, external changes will not be picked up", zap.Error(err))
	} else {
		s.watcher = watcher
		if err := watcher.Add(dataDir); err != nil {
			logger.Warn("could not watch data directory", zap.String("dir", dataDir), zap.Error(err))
		}
		go s.watch()
	}

	return s, nil
}

// DataDir returns the directory backing the store.
func (s *FileStore) DataDir() string {
	return s.dataDir
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	path := s.filePath(key)

	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	// Record our own write so the watcher does not process it again.
	if fileInfo, err := os.Stat(path); err == nil {
		s.mu.Lock()
		s.fileModTimes[path] = fileInfo.ModTime()
		s.mu.Unlock()
	}

	return nil
}

func (s *FileStore) Remove(key string) error {
	path := s.filePath(key)

	s.mu.Lock()
	delete(s.values, key)
	delete(s.fileModTimes, path)
	s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *FileStore) Close() error {
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func (s *FileStore) filePath(key string) string {
	return filepath.Join(s.dataDir, key+".json")
}

// watch processes file system events until the store closes.
func (s *FileStore) watch() {
	for {
		select {
		case <-s.done:
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			filename := filepath.Base(event.Name)
			if !keyFilePattern.MatchString(filename) {
				continue
			}

			switch {
			case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
				s.handleFileWrite(event.Name)
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				s.handleFileRemove(event.Name)
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// handleFileWrite reloads a key whose file changed on disk, skipping
// events caused by our own writes.
func (s *FileStore) handleFileWrite(path string) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		s.logger.Warn("stat changed file", zap.String("path", path), zap.Error(err))
		return
	}

	s.mu.Lock()
	lastModTime, seen := s.fileModTimes[path]
	currentModTime := fileInfo.ModTime()
	if seen && !currentModTime.After(lastModTime) {
		s.mu.Unlock()
		return
	}
	s.fileModTimes[path] = currentModTime
	s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("read changed file", zap.String("path", path), zap.Error(err))
		return
	}

	key := strings.TrimSuffix(filepath.Base(path), ".json")

	s.mu.Lock()
	s.values[key] = string(data)
	s.mu.Unlock()

	s.logger.Debug("reloaded key from external change", zap.String("key", key))
}

func (s *FileStore) handleFileRemove(path string) {
	key := strings.TrimSuffix(filepath.Base(path), ".json")

	s.mu.Lock()
	delete(s.values, key)
	delete(s.fileModTimes, path)
	s.mu.Unlock()

	s.logger.Debug("removed key after external deletion", zap.String("key", key))
}

// syncFromDisk performs a full load of every key file in the directory.
func (s *FileStore) syncFromDisk() error {
	files, err := filepath.Glob(filepath.Join(s.dataDir, "*.json"))
	if err != nil {
		return fmt.Errorf("read data directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, file := range files {
		filename := filepath.Base(file)
		if !keyFilePattern.MatchString(filename) {
			s.logger.Debug("ignoring file with invalid name pattern", zap.String("file", filename))
			continue
		}

		fileInfo, err := os.Stat(file)
		if err != nil {
			s.logger.Warn("stat file during sync", zap.String("path", file), zap.Error(err))
			continue
		}

		data, err := os.ReadFile(file)
		if err != nil {
			s.logger.Warn("read file during sync", zap.String("path", file), zap.Error(err))
			continue
		}

		key := strings.TrimSuffix(filename, ".json")
		s.values[key] = string(data)
		s.fileModTimes[file] = fileInfo.ModTime()
	}

	return nil
}
