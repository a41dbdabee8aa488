package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/config"
	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

type PaymentVerifier interface {
	VerifyPayment(ctx context.Context, p entities.Principal, cb entities.PaymentCallback) (entities.Order, error)
}

// kafkaHandler читает callback'и checkout, которые webhook-шлюз кладёт в топик.
type kafkaHandler struct {
	dlq      *kafka.Writer
	reader   *kafka.Reader
	logger   *slog.Logger
	validate *validator.Validate
	verifier PaymentVerifier
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, verifier PaymentVerifier) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.CallbackTopic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		validate: newValidator(),
		verifier: verifier,
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		callbacksInProgress.Inc()
		start := time.Now()
		err = h.handleCallback(ctx, m)
		callbackProcessingDuration.Observe(time.Since(start).Seconds())
		callbacksInProgress.Dec()

		if err != nil {
			callbacksFailed.Inc()
			h.logger.Error("failed to handle callback", slog.Any("error", err), slog.Int64("offset", m.Offset))

			// В библиотеке уже есть retry
			if err := h.WriteToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
				continue
			}
			callbacksDLQ.Inc()
		} else {
			callbacksProcessed.Inc()
		}

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

// Повтор уже обработанного callback'а не ошибка: сервис вернёт оплаченный заказ.
func (h *kafkaHandler) handleCallback(ctx context.Context, m kafka.Message) error {
	var req VerifyPaymentRequest
	if err := json.Unmarshal(m.Value, &req); err != nil {
		return fmt.Errorf("failed to unmarshal callback: %w", err)
	}

	if err := h.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid callback data: %w", err)
	}

	_, err := h.verifier.VerifyPayment(ctx, entities.SystemPrincipal, VerifyPaymentJSONToEntity(req))
	paymentVerificationsTotal.WithLabelValues("kafka", resultLabel(err)).Inc()
	return err
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	m.Topic = fmt.Sprintf("%s-dlq", m.Topic)
	return h.dlq.WriteMessages(ctx, m)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
