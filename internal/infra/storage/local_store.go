package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// 商品画像のバイト列を保存する約束。保存先の参照名を返す
type FileStore interface {
	Store(originalName string, src io.Reader) (string, error)
}

// ローカルディスク実装
type LocalFileStore struct {
	dir string
}

// DI
func NewLocalFileStore(dir string) *LocalFileStore {
	return &LocalFileStore{dir: dir}
}

// 元のファイル名の拡張子を残してUUIDで一意な名前を作り、dirに書き込む。
// 例: photo.jpg -> 550e8400-....jpg
func (s *LocalFileStore) Store(originalName string, src io.Reader) (string, error) {
	ext := filepath.Ext(originalName)
	if ext == "" {
		return "", fmt.Errorf("file has no extension: %s", originalName)
	}

	fileName := uuid.NewString() + ext

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.dir, fileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return fileName, nil
}
