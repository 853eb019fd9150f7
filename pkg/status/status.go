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
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrTargetExists is returned by Move when the destination is already taken.
var ErrTargetExists = errors.Base("target already exists")

// 💾 FileManager handles all file system operations of a run
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	// WriteFileAtomic replaces the whole file, keeping its permissions.
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
	// Move renames a file or directory. It fails with ErrTargetExists
	// instead of overwriting.
	Move(ctx context.Context, from, to string) error
	FileExists(ctx context.Context, path string) (bool, error)
}

// 🔧 Manager implements FileManager on the local filesystem
type Manager struct {
	baseDir string // Base directory for relative paths
}

var _ FileManager = (*Manager)(nil)

// 🏭 NewManager creates a manager rooted at baseDir
func NewManager(baseDir string) *Manager {
	return &Manager{baseDir: filepath.Clean(baseDir)}
}

// 🔒 getAbsPath resolves relative paths against the base directory
func (m *Manager) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.baseDir, path)
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)

	mode := os.FileMode(0o644)
	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Trace().Str("path", absPath).Int("bytes", len(content)).Msg("wrote file")
	return nil
}

func (m *Manager) Move(ctx context.Context, from, to string) error {
	absFrom, absTo := m.getAbsPath(from), m.getAbsPath(to)
	if absFrom == absTo {
		return nil
	}

	exists, err := m.FileExists(ctx, absTo)
	if err != nil {
		return err
	}
	// A case-only rename on a case-insensitive filesystem reports the
	// target as existing; it is the same file, so let it through.
	if exists && !sameFile(absFrom, absTo) {
		return errors.Errorf("moving %s to %s: %w", absFrom, absTo, ErrTargetExists)
	}

	if err := os.Rename(absFrom, absTo); err != nil {
		return errors.Errorf("moving %s to %s: %w", absFrom, absTo, err)
	}

	zerolog.Ctx(ctx).Trace().Str("from", absFrom).Str("to", absTo).Msg("moved")
	return nil
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Lstat(m.getAbsPath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func sameFile(a, b string) bool {
	ai, err := os.Lstat(a)
	if err != nil {
		return false
	}
	bi, err := os.Lstat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
