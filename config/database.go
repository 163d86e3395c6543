package config

import (
	"time"

	"kacchi/utils"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type DatabaseConfig struct {
	Driver          string
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:          utils.GetEnvAsString("STORE_DRIVER", DriverMongo),
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "kacchi_likhavat"),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

func (d DatabaseConfig) MongoOptions() utils.MongoOptions {
	return utils.MongoOptions{
		URI:             d.URI,
		MaxPoolSize:     d.MaxPoolSize,
		MinPoolSize:     d.MinPoolSize,
		MaxConnIdleTime: d.MaxConnIdleTime,
		RetryWrites:     d.RetryWrites,
	}
}
