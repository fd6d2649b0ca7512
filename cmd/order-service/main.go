package main

import (
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/tokoniaga/order-service/internal/config"
	"github.com/tokoniaga/order-service/internal/delivery/http/handler"
	"github.com/tokoniaga/order-service/internal/infrastructure/kafka"
	"github.com/tokoniaga/order-service/internal/infrastructure/logger"
	"github.com/tokoniaga/order-service/internal/infrastructure/metrics"
	"github.com/tokoniaga/order-service/internal/infrastructure/midtrans"
	"github.com/tokoniaga/order-service/internal/infrastructure/migrate"
	"github.com/tokoniaga/order-service/internal/infrastructure/postgres"
	"github.com/tokoniaga/order-service/internal/infrastructure/postgres/repository"
	"github.com/tokoniaga/order-service/internal/infrastructure/rajaongkir"
	"github.com/tokoniaga/order-service/internal/usecase/checkout"
)

func main() {
	godotenv.Load()

	cfg := config.MustLoad()
	log := logger.SetupLogger(cfg.Env)

	db := postgres.MustInitDB(cfg)
	if cfg.OrderDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.OrderDB.MigrationsPath); err != nil {
			log.Error("migrations failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	orderRepo := repository.NewDefaultOrderRepository(db)
	sessionRepo := repository.NewDefaultCheckoutSessionRepository(db)
	cartRepo := repository.NewDefaultCartRepository(db)
	storeRepo := repository.NewDefaultStoreRepository(db)
	addressRepo := repository.NewDefaultShippingAddressRepository(db)
	courierRepo := repository.NewDefaultCourierRepository(db)
	userRepo := repository.NewDefaultUserRepository(db)

	ratesClient := rajaongkir.NewRatesClient(cfg.RajaOngkir.CostURL, cfg.RajaOngkir.CostAPIKey)
	shipmentClient := rajaongkir.NewShipmentClient(cfg.RajaOngkir.OrderURL, cfg.RajaOngkir.OrderAPIKey)
	snapClient := midtrans.NewSnapClient(cfg.Midtrans.BaseURL, cfg.Midtrans.ServerKey)

	kafkaAddr := net.JoinHostPort(cfg.Kafka.Host, cfg.Kafka.Port)
	publisher := kafka.NewDefaultKafkaPublisher([]string{kafkaAddr}, cfg.Kafka.Topic)
	defer publisher.Close()

	orderMetrics := metrics.NewOrderMetrics()

	usecase := checkout.NewUsecase(
		log,
		orderRepo,
		sessionRepo,
		cartRepo,
		storeRepo,
		addressRepo,
		courierRepo,
		userRepo,
		ratesClient,
		shipmentClient,
		snapClient,
		publisher,
		orderMetrics,
		cfg.Checkout.SessionTTL,
	)

	router := handler.NewRouter(handler.NewOrderHandler(log, usecase))

	addr := net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Info("order service listening", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
