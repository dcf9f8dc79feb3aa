package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore 把每个记录写成目录下的一个 JSON 文件
// 整文件重写，不保证崩溃原子性（尽力而为的持久化）
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load 读取并解析记录文件
// 文件缺失返回 ErrNotFound，内容损坏返回 ErrCorrupt，便于上层区分
func (s *FileStore) Load(_ context.Context, key string, dest any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return fmt.Errorf("读取记录 %s 失败: %w", key, err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

// Save 整体重写记录文件
func (s *FileStore) Save(_ context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化记录 %s 失败: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), b, 0o644); err != nil {
		return fmt.Errorf("写入记录 %s 失败: %w", key, err)
	}
	return nil
}
