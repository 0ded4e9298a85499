package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/you/facility-booking/internal/repository"
	"github.com/you/facility-booking/internal/service"
	"github.com/you/facility-booking/internal/transport/http/handlers"
	"github.com/you/facility-booking/internal/transport/http/middlewares"
	"github.com/you/facility-booking/pkg/config"
	"github.com/you/facility-booking/pkg/db"
	"github.com/you/facility-booking/pkg/mq"
	"github.com/you/facility-booking/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	cfg := must(config.Load())

	logger := must(newLogger(cfg.Env))
	defer logger.Sync()

	shutdownTracer := obs.InitTracer("facility-booking-api")
	defer shutdownTracer(context.Background())

	// DB + migrations
	gdb := db.Open(cfg.PGDSN)
	courtRepo := repository.NewCourtRepo(gdb)
	slotRepo := repository.NewTimeslotRepo(gdb)
	blockRepo := repository.NewBlockRepo(gdb)
	resvRepo := repository.NewReservationRepo(gdb)
	must(0, courtRepo.Migrate())
	must(0, slotRepo.Migrate())
	must(0, blockRepo.Migrate())
	must(0, resvRepo.Migrate())

	// Events
	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.ReservationExchange))
	defer pub.Close()

	// Services
	availSvc := service.NewAvailabilitySvc(courtRepo, slotRepo, blockRepo, resvRepo, logger)
	resvSvc := service.NewReservationSvc(resvRepo, slotRepo, pub, logger)
	courtSvc := service.NewCourtSvc(courtRepo, blockRepo)

	// HTTP
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	ah := handlers.NewAvailabilityHandler(availSvc, logger)
	rh := handlers.NewReservationHandler(resvSvc, availSvc, logger)
	ch := handlers.NewCourtHandler(courtSvc)

	v1 := r.Group("/v1")
	{
		v1.GET("/courts", ch.List)
		v1.GET("/courts/:id", ch.Get)
		// optional auth: anonymous callers see annotated availability,
		// signed-in callers additionally get the per-user day cap applied
		v1.GET("/courts/:id/availability", middlewares.OptionalJWTAuth(), ah.Day)
		v1.GET("/courts/:id/blocks", ch.ListOneOffBlocks)
		v1.GET("/courts/:id/weekly-blocks", ch.ListRecurringBlocks)

		manage := v1.Group("")
		manage.Use(middlewares.JWTAuth(), middlewares.RequireRole("OWNER", "ADMIN"))
		{
			manage.POST("/courts", ch.Create)
			manage.PUT("/courts/:id", ch.Update)
			manage.DELETE("/courts/:id", ch.Delete)
			manage.POST("/courts/:id/blocks", ch.AddOneOffBlock)
			manage.DELETE("/blocks/:id", ch.RemoveOneOffBlock)
			manage.POST("/courts/:id/weekly-blocks", ch.AddRecurringBlock)
			manage.PATCH("/weekly-blocks/:id", ch.SetRecurringBlockActive)

			manage.POST("/reservations/:id/confirm", rh.Confirm)
			manage.POST("/reservations/:id/complete", rh.Complete)
			manage.POST("/reservations/:id/no-show", rh.NoShow)
			manage.POST("/reservations/:id/check-in", rh.CheckIn)
		}

		secured := v1.Group("")
		secured.Use(middlewares.JWTAuth())
		{
			secured.POST("/reservations", rh.Create)
			secured.GET("/reservations", rh.List)
			secured.GET("/reservations/:id", rh.Get)
			secured.POST("/reservations/:id/cancel", rh.Cancel)
		}
	}

	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := r.Run(cfg.HTTPAddr); err != nil {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("stopped")
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
