package kafka

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
)

// ProducerOption configures Producer.
type ProducerOption func(*ProducerConfig)

// ProducerConfig describes how report windows are written to the brokers.
type ProducerConfig struct {
	Brokers     []string
	ClientID    string
	Compression string

	// delivery
	RequiredAcks int // -1 waits for all in-sync replicas
	MaxAttempts  int

	// batching
	BatchSize  int
	BatchBytes int
	Linger     time.Duration

	WriteTimeout time.Duration
	ReadTimeout  time.Duration

	// HashByKey keeps every window of one run on the same partition.
	HashByKey  bool
	Registerer prometheus.Registerer
}

func defaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		ClientID:     "predval",
		Compression:  "gzip",
		RequiredAcks: -1,
		MaxAttempts:  3,
		BatchSize:    100,
		BatchBytes:   1 << 20,
		Linger:       time.Second,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
		Registerer:   prometheus.DefaultRegisterer,
	}
}

func (c ProducerConfig) writer() *kafka.Writer {
	var bal kafka.Balancer = &kafka.LeastBytes{}
	if c.HashByKey {
		bal = &kafka.Hash{}
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Balancer:     bal,
		RequiredAcks: kafka.RequiredAcks(c.RequiredAcks),
		MaxAttempts:  c.MaxAttempts,
		Compression:  parseCompression(c.Compression),
		BatchSize:    c.BatchSize,
		BatchBytes:   int64(c.BatchBytes),
		BatchTimeout: c.Linger,
		WriteTimeout: c.WriteTimeout,
		ReadTimeout:  c.ReadTimeout,
		Transport:    &kafka.Transport{ClientID: c.ClientID},
	}
}

func parseCompression(s string) kafka.Compression {
	switch s {
	case "snappy":
		return kafka.Snappy
	case "lz4":
		return kafka.Lz4
	case "zstd":
		return kafka.Zstd
	default:
		return kafka.Gzip
	}
}

func WithBrokers(brokers ...string) ProducerOption {
	return func(c *ProducerConfig) { c.Brokers = brokers }
}

// WithClientID sets the client id reported to brokers.
func WithClientID(id string) ProducerOption {
	return func(c *ProducerConfig) {
		if id != "" {
			c.ClientID = id
		}
	}
}

// WithCompression selects gzip, snappy, lz4 or zstd. Unknown names fall back to gzip.
func WithCompression(codec string) ProducerOption {
	return func(c *ProducerConfig) { c.Compression = codec }
}

// WithDelivery sets required acks and the writer's retry budget.
func WithDelivery(acks, attempts int) ProducerOption {
	return func(c *ProducerConfig) {
		c.RequiredAcks = acks
		if attempts > 0 {
			c.MaxAttempts = attempts
		}
	}
}

// WithBatching tunes writer batching. Zero values keep the defaults.
func WithBatching(size, bytes int, linger time.Duration) ProducerOption {
	return func(c *ProducerConfig) {
		if size > 0 {
			c.BatchSize = size
		}
		if bytes > 0 {
			c.BatchBytes = bytes
		}
		if linger > 0 {
			c.Linger = linger
		}
	}
}

func WithTimeouts(write, read time.Duration) ProducerOption {
	return func(c *ProducerConfig) {
		c.WriteTimeout = write
		c.ReadTimeout = read
	}
}

func WithHashByKey(hash bool) ProducerOption {
	return func(c *ProducerConfig) { c.HashByKey = hash }
}

// WithRegisterer registers producer metrics on reg instead of the default registry.
func WithRegisterer(reg prometheus.Registerer) ProducerOption {
	return func(c *ProducerConfig) { c.Registerer = reg }
}
