package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/you/facility-booking/internal/events"
	"github.com/you/facility-booking/pkg/config"
	"github.com/you/facility-booking/pkg/mq"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	var cons *mq.Consumer
	for {
		cons, err = mq.NewConsumer(cfg.RabbitURL, cfg.ReservationExchange, cfg.NotifyQueue, []string{"reservation.*"}, 16)
		if err == nil {
			break
		}
		logger.Warn("rabbitmq connect failed, retrying", zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	defer cons.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := run(ctx, cons, logger); err != nil {
			logger.Error("consumer stopped", zap.Error(err))
		}
	}()
	logger.Info("notifier started",
		zap.String("queue", cfg.NotifyQueue),
		zap.String("exchange", cfg.ReservationExchange))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()
	time.Sleep(200 * time.Millisecond)
}

func run(ctx context.Context, cons *mq.Consumer, logger *zap.Logger) error {
	msgs, err := cons.Deliveries(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := handle(d, logger); err != nil {
				logger.Warn("handle delivery", zap.String("key", d.RoutingKey), zap.Error(err))
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handle(d amqp.Delivery, logger *zap.Logger) error {
	switch d.RoutingKey {
	case events.RKReservationCreated:
		ev, err := events.Decode[events.ReservationCreated](d.Body)
		if err != nil {
			return err
		}
		logger.Info("reservation created",
			zap.String("reservation_id", ev.ReservationID),
			zap.String("court_id", ev.CourtID),
			zap.String("window", humanTimeRange(ev.Start, ev.End)))
	default:
		ev, err := events.Decode[events.ReservationChanged](d.Body)
		if err != nil {
			return err
		}
		logger.Info("reservation updated",
			zap.String("key", d.RoutingKey),
			zap.String("reservation_id", ev.ReservationID),
			zap.String("status", ev.Status))
	}
	return nil
}

func humanTimeRange(startUnix, endUnix int64) string {
	st := time.Unix(startUnix, 0).UTC()
	et := time.Unix(endUnix, 0).UTC()
	return st.Format("2006-01-02 15:04") + " - " + et.Format("15:04")
}
