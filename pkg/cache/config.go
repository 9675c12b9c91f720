package cache

import "time"

// RedisOption configures RedisCache.
type RedisOption func(*RedisConfig)

// RedisConfig holds Redis connection settings. More than one address selects
// a cluster client.
type RedisConfig struct {
	Addrs       []string
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
	Prefix      string
}

func defaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addrs:       []string{"localhost:6379"},
		PoolSize:    10,
		DialTimeout: 5 * time.Second,
		Prefix:      "predval",
	}
}

// WithRedisAddrs sets the host:port list.
func WithRedisAddrs(addrs ...string) RedisOption {
	return func(c *RedisConfig) {
		if len(addrs) > 0 {
			c.Addrs = addrs
		}
	}
}

// WithRedisAuth sets password and database number (ignored by clusters).
func WithRedisAuth(password string, db int) RedisOption {
	return func(c *RedisConfig) {
		c.Password = password
		c.DB = db
	}
}

// WithRedisPool sets pool size and dial timeout.
func WithRedisPool(size int, dialTimeout time.Duration) RedisOption {
	return func(c *RedisConfig) {
		c.PoolSize = size
		c.DialTimeout = dialTimeout
	}
}

// WithRedisPrefix namespaces every key.
func WithRedisPrefix(prefix string) RedisOption {
	return func(c *RedisConfig) {
		c.Prefix = prefix
	}
}
