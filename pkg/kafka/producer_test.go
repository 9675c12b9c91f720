package kafka

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer(WithRegisterer(prometheus.NewRegistry()))
	assert.Error(t, err)
}

func TestNewProducerOptions(t *testing.T) {
	p, err := NewProducer(
		WithBrokers("localhost:9092"),
		WithCompression("zstd"),
		WithHashByKey(true),
		WithDelivery(1, 5),
		WithBatching(10, 0, 0),
		WithRegisterer(prometheus.NewRegistry()),
	)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, kafka.Zstd, p.writer.Compression)
	assert.Equal(t, 5, p.writer.MaxAttempts)
	assert.Equal(t, kafka.RequireOne, p.writer.RequiredAcks)
	assert.Equal(t, 10, p.writer.BatchSize)
	assert.Equal(t, int64(1<<20), p.writer.BatchBytes)
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
}

func TestEncodeValue(t *testing.T) {
	b, err := encodeValue(map[string]int{"start_time": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start_time":1}`, string(b))

	b, err = encodeValue("raw")
	require.NoError(t, err)
	assert.Equal(t, "raw", string(b))
}

func TestParseCompression(t *testing.T) {
	assert.Equal(t, kafka.Snappy, parseCompression("snappy"))
	assert.Equal(t, kafka.Gzip, parseCompression("unknown"))
}
