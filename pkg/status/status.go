// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrChangedOnDisk is returned when a file was modified between being read
// and being rewritten.
var ErrChangedOnDisk = errors.Base("file changed on disk since it was read")

// DefaultFileMode is used when a file's mode cannot be determined
const DefaultFileMode os.FileMode = 0o644

// 📊 FileStatus represents the current state of a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusMatched              // File has matches that were not written
	StatusUnchanged            // File has no matches
	StatusSkipped              // File was not processed
	StatusWritten              // File was rewritten with its replacements
	StatusFailed               // Processing the file failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusUnchanged:
		return "unchanged"
	case StatusSkipped:
		return "skipped"
	case StatusWritten:
		return "written"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains metadata about a file
type FileInfo struct {
	Path         string      // Path as given to the manager
	Status       FileStatus  // Current status
	Size         int64       // File size in bytes
	Mode         os.FileMode // File permissions
	Checksum     string      // Content hash at read time
	Lines        int         // Number of matching lines
	Replacements int         // Number of replacements
	Reason       string      // Why the file was skipped
	Error        error       // Any error associated with this file
}

// 💾 FileManager handles all file system operations
type FileManager interface {
	// ReadFile reads a file and returns its content with the metadata needed to rewrite it
	ReadFile(ctx context.Context, path string) ([]byte, FileInfo, error)

	// WriteFileAtomic replaces the file at path through a temporary file and a rename
	WriteFileAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error

	// ReplaceFile rewrites a file read earlier, unless it changed since
	ReplaceFile(ctx context.Context, info FileInfo, content []byte) error
}

// 📈 StatusReporter tracks file status and reports progress
type StatusReporter interface {
	// Status tracking
	TrackFile(ctx context.Context, info FileInfo)
	GetFileInfo(ctx context.Context, path string) (FileInfo, error)
	ListFiles(ctx context.Context) ([]FileInfo, error)

	// Progress reporting
	StartOperation(ctx context.Context, total int)
	IncrementProgress(ctx context.Context)
	FinishOperation(ctx context.Context)
}

// 🔧 Manager implements both FileManager and StatusReporter
type Manager struct {
	baseDir   string          // Base directory for relative paths
	logger    *zerolog.Logger // Logger for status updates
	formatter FileFormatter   // Formatter for status messages

	// Status tracking
	mu    sync.RWMutex
	files map[string]FileInfo

	// Progress tracking
	total     int
	processed int
}

var (
	_ FileManager    = (*Manager)(nil)
	_ StatusReporter = (*Manager)(nil)
)

// 🏭 New creates a new status manager
func New(baseDir string, logger *zerolog.Logger) *Manager {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Manager{
		baseDir:   filepath.Clean(baseDir),
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]FileInfo),
	}
}

// 🔒 getAbsPath resolves path against the base directory
func (m *Manager) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// FileManager interface implementation

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, FileInfo, error) {
	absPath := m.getAbsPath(path)

	stat, err := os.Stat(absPath)
	if err != nil {
		return nil, FileInfo{}, errors.Errorf("reading file: %w", err)
	}
	if stat.IsDir() {
		return nil, FileInfo{}, errors.Errorf("reading file: %s is a directory", path)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, FileInfo{}, errors.Errorf("reading file: %w", err)
	}

	return content, FileInfo{
		Path:     path,
		Status:   StatusUnknown,
		Size:     int64(len(content)),
		Mode:     stat.Mode().Perm(),
		Checksum: calculateChecksum(content),
	}, nil
}

func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return errors.Errorf("writing file: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	// A symlink is written through, so the link itself survives
	absPath, err := resolveTarget(m.getAbsPath(path))
	if err != nil {
		return err
	}

	// Temp file lives next to the target so the rename stays on one filesystem
	tmp, err := os.CreateTemp(filepath.Dir(absPath), filepath.Base(absPath)+".tmp.*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return errors.Errorf("syncing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		return errors.Errorf("setting temp file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tmpPath, absPath); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

func (m *Manager) ReplaceFile(ctx context.Context, info FileInfo, content []byte) error {
	current, err := os.ReadFile(m.getAbsPath(info.Path))
	if err != nil {
		return errors.Errorf("re-reading file: %w", err)
	}
	if info.Checksum != "" && calculateChecksum(current) != info.Checksum {
		return errors.WithDetails(ErrChangedOnDisk, "path", info.Path)
	}
	return m.WriteFileAtomic(ctx, info.Path, content, info.Mode)
}

// resolveTarget follows symlinks to the file they point at. Paths that do not
// exist yet are returned unchanged.
func resolveTarget(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			return path, nil
		}
		return "", errors.Errorf("resolving %s: %w", path, err)
	}
	return resolved, nil
}

// StatusReporter interface implementation

func (m *Manager) TrackFile(ctx context.Context, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[info.Path] = info
	msg := m.formatter.FormatFileStatus(info)
	if info.Error != nil {
		msg = m.formatter.FormatError(info.Error)
	}
	m.logger.Debug().
		Str("path", info.Path).
		Str("status", info.Status.String()).
		Int("replacements", info.Replacements).
		Msg(msg)
}

func (m *Manager) GetFileInfo(ctx context.Context, path string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.files[path]
	if !ok {
		return FileInfo{}, errors.Errorf("file not tracked: %s", path)
	}
	return info, nil
}

// ListFiles returns every tracked file sorted by path
func (m *Manager) ListFiles(ctx context.Context) ([]FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.files))
	for _, info := range m.files {
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	msg := m.formatter.FormatProgress(0, total)
	m.logger.Debug().Int("total", total).Msg(msg)
}

// IncrementProgress marks one more file as processed. Safe for concurrent use.
func (m *Manager) IncrementProgress(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed++
	msg := m.formatter.FormatProgress(m.processed, m.total)
	m.logger.Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(msg)
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg := m.formatter.FormatProgress(m.total, m.total)
	m.logger.Debug().
		Int("processed", m.total).
		Int("total", m.total).
		Msg(msg)
}
