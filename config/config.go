// config/config.go
package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

// RecordStoreConfig points at the remote record-store service the inventory
// lives in.
type RecordStoreConfig struct {
	BaseURL        string `mapstructure:"baseURL"`
	APIKey         string `mapstructure:"apiKey"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
}

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Mongo       MongoConfig       `mapstructure:"mongo"`
	JWT         JWTConfig         `mapstructure:"jwt"`
	RecordStore RecordStoreConfig `mapstructure:"recordStore"`
	S3          S3Config          `mapstructure:"s3"`
}

// LoadConfig reads configuration from file and overrides it with environment
// variables.
func LoadConfig(path string) (config Config, err error) {
	// A local .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("recordStore.baseURL", "RECORD_STORE_BASE_URL")
	viper.BindEnv("recordStore.apiKey", "RECORD_STORE_API_KEY")
	viper.BindEnv("recordStore.timeoutSeconds", "RECORD_STORE_TIMEOUT_SECONDS")
	viper.BindEnv("s3.bucket", "S3_BUCKET")
	viper.BindEnv("s3.region", "S3_REGION")
	viper.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	viper.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	viper.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")

	// If the file is missing, viper falls back to environment variables only.
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
