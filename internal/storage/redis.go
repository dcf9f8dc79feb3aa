package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

// InitRedis 初始化 Redis 连接
func InitRedis(host, port, password string, db, poolSize, minIdleConns int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Password:     password,
		DB:           db,
		PoolSize:     poolSize,     // 最大连接数
		MinIdleConns: minIdleConns, // 最小空闲连接数
	})

	// 测试连接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("连接 Redis 失败: %w", err)
	}
	return client, nil
}

// RedisStore 每个记录存成一个 JSON 字符串值
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "statusboard:"}
}

func (s *RedisStore) Load(ctx context.Context, key string, dest any) error {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return fmt.Errorf("读取记录 %s 失败: %w", key, err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

func (s *RedisStore) Save(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化记录 %s 失败: %w", key, err)
	}
	if err := s.client.Set(ctx, s.prefix+key, b, 0).Err(); err != nil {
		return fmt.Errorf("写入记录 %s 失败: %w", key, err)
	}
	return nil
}
