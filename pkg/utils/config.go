package utils

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Payment PaymentConfig
	Kafka   KafkaConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type BackendConfig struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

type PaymentConfig struct {
	PollSeconds int
	TickSeconds int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	viper.SetDefault("PAYMENT_POLL_SECONDS", 3)
	viper.SetDefault("PAYMENT_TICK_SECONDS", 1)
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("KAFKA_TOPIC", "pro-events")
	viper.SetDefault("KAFKA_GROUP_ID", "fieldpro-engine")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	brokers := strings.Split(viper.GetString("KAFKA_BROKERS"), ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Backend: BackendConfig{
			BaseURL:        viper.GetString("BACKEND_BASE_URL"),
			APIKey:         viper.GetString("BACKEND_API_KEY"),
			TimeoutSeconds: viper.GetInt("BACKEND_TIMEOUT_SECONDS"),
		},
		Payment: PaymentConfig{
			PollSeconds: viper.GetInt("PAYMENT_POLL_SECONDS"),
			TickSeconds: viper.GetInt("PAYMENT_TICK_SECONDS"),
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   viper.GetString("KAFKA_TOPIC"),
			GroupID: viper.GetString("KAFKA_GROUP_ID"),
		},
	}

	return config, nil
}
