package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type OrderConfig struct {
	Env        string `yaml:"env" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	OrderDB    `yaml:"order_db"`
	LogConfig  `yaml:"log_config"`
	RajaOngkir `yaml:"rajaongkir"`
	Midtrans   `yaml:"midtrans"`
	Kafka      `yaml:"kafka"`
	Checkout   `yaml:"checkout"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type OrderDB struct {
	Dsn            string `yaml:"dsn" env:"ORDER_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
}

type RajaOngkir struct {
	CostURL     string `yaml:"cost_url"`
	OrderURL    string `yaml:"order_url"`
	CostAPIKey  string `yaml:"cost_api_key" env:"RAJAONGKIR_COST_API_KEY"`
	OrderAPIKey string `yaml:"order_api_key" env:"RAJAONGKIR_ORDER_API_KEY"`
}

type Midtrans struct {
	BaseURL   string `yaml:"base_url"`
	ServerKey string `yaml:"server_key" env:"MIDTRANS_SERVER_KEY"`
}

type Kafka struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"order-events"`
}

type Checkout struct {
	SessionTTL time.Duration `yaml:"session_ttl" env-default:"10m"`
}

func MustLoad() *OrderConfig {

	configPath := os.Getenv("ORDER_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ORDER_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg OrderConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
