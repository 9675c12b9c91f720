package repository

import (
	"context"

	"PredVal/internal/domain/models"
	"PredVal/internal/domain/repository"
	pkgkafka "PredVal/pkg/kafka"
)

// MessagePublisher is the subset of the Kafka producer used for reports.
type MessagePublisher interface {
	PublishBatch(ctx context.Context, topic string, messages []pkgkafka.Message) error
	Close() error
}

// KafkaReportPublisher implements ReportPublisher for Kafka.
type KafkaReportPublisher struct {
	producer MessagePublisher
	topic    string
}

// NewKafkaReportPublisher creates Kafka publisher.
func NewKafkaReportPublisher(producer MessagePublisher, topic string) repository.ReportPublisher {
	return &KafkaReportPublisher{producer: producer, topic: topic}
}

// WindowMessage is the JSON value of one published window.
type WindowMessage struct {
	RunID      string `json:"run_id"`
	WindowSize int    `json:"window_size"`
	models.WindowSummary
}

// PublishReport sends one message per window, keyed by run id so a run stays
// on one partition and in order.
func (p *KafkaReportPublisher) PublishReport(ctx context.Context, runID string, report *models.ReportSummary) error {
	if report == nil || len(report.Windows) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(report.Windows))
	for i, w := range report.Windows {
		msgs[i] = pkgkafka.Message{
			Key: []byte(runID),
			Value: WindowMessage{
				RunID:         runID,
				WindowSize:    report.WindowSize,
				WindowSummary: w,
			},
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaReportPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
