package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/signature"
	"github.com/segmentio/kafka-go"
)

type Callback struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	OrderID           string `json:"orderId"`
}

func randomString(n int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// Публикует подписанные callback'и для пары заказов; часть подписей портится,
// часть сообщений повторяется, чтобы проверить DLQ и идемпотентность.
func main() {
	brokers := flag.String("brokers", "localhost:9092", "kafka broker")
	topic := flag.String("topic", "payment-callbacks", "callback topic")
	secret := flag.String("secret", "", "razorpay key secret")
	orderID := flag.String("order", "", "local order id")
	gatewayOrderID := flag.String("gateway-order", "", "razorpay order id")
	interval := flag.Duration("interval", 2*time.Second, "publish interval")
	flag.Parse()

	if *secret == "" || *orderID == "" || *gatewayOrderID == "" {
		log.Fatal("secret, order and gateway-order are required")
	}

	writer := &kafka.Writer{
		Addr:  kafka.TCP(*brokers),
		Topic: *topic,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	paymentID := "pay_" + randomString(14)
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cb := Callback{
				RazorpayOrderID:   *gatewayOrderID,
				RazorpayPaymentID: paymentID,
				RazorpaySignature: signature.Sign(*gatewayOrderID, paymentID, *secret),
				OrderID:           *orderID,
			}
			if rand.Intn(4) == 0 {
				cb.RazorpaySignature = randomString(64)
			}

			data, _ := json.Marshal(cb)
			if err := writer.WriteMessages(ctx, kafka.Message{Key: []byte(cb.OrderID), Value: data}); err != nil {
				log.Println("failed to publish callback:", err)
				continue
			}
			log.Println("callback published", cb.OrderID, cb.RazorpayPaymentID)
		case <-ctx.Done():
			return
		}
	}
}
