package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

var keyRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// File хранит каждый ключ в отдельном <key>.json в каталоге
type File struct {
	dir    string
	Logger *zap.SugaredLogger
}

func NewFile(dir string, l *zap.SugaredLogger) (*File, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".bounty")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	return &File{dir: dir, Logger: l}, nil
}

func (f *File) path(key string) (string, error) {
	if !keyRe.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		f.Logger.Errorf("%v. More details: %v", ErrRead, err)
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return data, nil
}

// Set пишет во временный файл и переименовывает, чтобы не оставить полфайла
func (f *File) Set(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err = tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if err = os.Rename(tmp.Name(), p); err != nil {
		f.Logger.Errorf("%v. More details: %v", ErrWrite, err)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err = os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func (f *File) Close() error {
	return nil
}
