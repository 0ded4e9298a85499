package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	Env string `envconfig:"ENV" default:"dev"`

	// DB
	PGDSN string `envconfig:"PG_DSN" required:"true"`

	// HTTP
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// JWT
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// RabbitMQ
	RabbitURL           string `envconfig:"RABBIT_URL" required:"true"`
	ReservationExchange string `envconfig:"RESERVATION_EXCHANGE" default:"reservation.exchange"`
	NotifyQueue         string `envconfig:"NOTIFY_QUEUE" default:"notification.q"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
