package statistic

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"exportlens/internal/models"
	"exportlens/internal/providers"
	"exportlens/internal/structures"
)

const (
	DefaultMaxFileSize = 20 * 1024 * 1024
	allowedExtension   = ".json"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// FileManager stages uploaded exports in a private directory so they can be
// parsed from disk, and removes them again.
type FileManager struct {
	dir     string
	maxSize int64
	logger  providers.Logger
}

func NewFileManager(conf *structures.Config, logger providers.Logger) *FileManager {
	maxSize := conf.Upload.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &FileManager{
		dir:     conf.Upload.TempDir,
		maxSize: maxSize,
		logger:  logger,
	}
}

func (f *FileManager) Dir() string {
	return f.dir
}

func (f *FileManager) EnsureDir() error {
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return fmt.Errorf("failed to create staging directory %s: %w", f.dir, err)
	}
	return nil
}

// Validate checks size and extension of an upload before it touches disk.
func (f *FileManager) Validate(filename string, size int) error {
	if int64(size) > f.maxSize {
		return models.ErrFileTooLarge
	}
	if !strings.EqualFold(filepath.Ext(filename), allowedExtension) {
		return models.ErrFileType
	}
	return nil
}

// Stage writes data under a sanitized, collision-free name and returns the path.
func (f *FileManager) Stage(filename string, data []byte) (string, error) {
	if err := f.Validate(filename, len(data)); err != nil {
		return "", err
	}
	if err := f.EnsureDir(); err != nil {
		return "", err
	}

	fileName := filepath.Join(f.dir, uuid.NewString()+"_"+SanitizeFilename(filename))
	tmpFile := fileName + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return "", err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return "", err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return "", err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		os.Remove(tmpFile)
		return "", err
	}
	f.logger.Debugf(providers.TypePost, "Staged %s at %s", filename, fileName)
	return fileName, nil
}

// Remove deletes a staged file. A file that is already gone is not an error.
func (f *FileManager) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	f.logger.Debugf(providers.TypePost, "Removed staged file %s", path)
	return nil
}

// Sweep deletes staged files last modified before now-olderThan and returns
// how many were removed.
func (f *FileManager) Sweep(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(f.dir, e.Name())); err != nil && !os.IsNotExist(err) {
			f.logger.Warnf(providers.TypeApp, "Unable to remove stale file %s: %s", e.Name(), err)
			continue
		}
		removed++
	}
	return removed, nil
}

// SanitizeFilename reduces an untrusted file name to a plain ASCII base name
// that cannot escape the staging directory.
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)
	var b strings.Builder
	for _, r := range name {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(b.String())
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" {
		return "upload" + allowedExtension
	}
	return name
}
