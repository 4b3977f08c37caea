package config

import (
	"fmt"

	"github.com/meritus/coinledger/pkg/mailer"
	"github.com/meritus/coinledger/pkg/mq"
	"github.com/meritus/coinledger/pkg/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	API      API           `mapstructure:"api"`
	Database mysql.Config  `mapstructure:"database"`
	RabbitMQ mq.Config     `mapstructure:"rabbitmq"`
	Mailer   mailer.Config `mapstructure:"mailer"`
	Notifier Notifier      `mapstructure:"notifier"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Notifier struct {
	Queue           string `mapstructure:"queue"`
	BatchSize       int    `mapstructure:"batch_size"`
	IntervalSeconds int    `mapstructure:"interval_seconds"`
	MaxRetries      int    `mapstructure:"max_retries"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
