package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// MemoryTier keeps the token in memory; it lasts as long as the process.
type MemoryTier struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTier creates an empty MemoryTier.
func NewMemoryTier() *MemoryTier { return &MemoryTier{} }

func (t *MemoryTier) Load() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.token == "" {
		return "", ErrNoToken
	}
	return t.token, nil
}

func (t *MemoryTier) Save(token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = token
	return nil
}

func (t *MemoryTier) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = ""
	return nil
}

// FileTier keeps the token in a single file on an afero filesystem.
type FileTier struct {
	fs   afero.Fs
	path string
}

// NewFileTier creates a tier backed by path on fsys.
func NewFileTier(fsys afero.Fs, path string) *FileTier {
	return &FileTier{fs: fsys, path: path}
}

// Path returns the file the tier writes to.
func (t *FileTier) Path() string { return t.path }

func (t *FileTier) Load() (string, error) {
	data, err := afero.ReadFile(t.fs, t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", t.path, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (t *FileTier) Save(token string) error {
	if err := t.fs.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	return afero.WriteFile(t.fs, t.path, []byte(token), 0o600)
}

func (t *FileTier) Clear() error {
	err := t.fs.Remove(t.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", t.path, err)
	}
	return nil
}

// FileTiers returns the CLI's durable and ephemeral tiers. The durable token
// lives under dir (the user config dir when empty); the ephemeral one lives in
// the OS temp dir, which does not survive a reboot.
func FileTiers(fsys afero.Fs, dir string) (*FileTier, *FileTier, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, nil, fmt.Errorf("session: locate config dir: %w", err)
		}
		dir = filepath.Join(base, "capsule")
	}
	ephemeralName := fmt.Sprintf("%s-%d", EphemeralKey, os.Getuid())
	durable := NewFileTier(fsys, filepath.Join(dir, DurableKey))
	ephemeral := NewFileTier(fsys, filepath.Join(os.TempDir(), ephemeralName))
	return durable, ephemeral, nil
}
