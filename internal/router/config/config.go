package config

import "github.com/spf13/viper"

// Config - structure holding the application configuration.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	PostgresConn  string `mapstructure:"POSTGRES_CONN"`
	PostgresUser  string `mapstructure:"POSTGRES_USERNAME"`
	PostgresPass  string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost  string `mapstructure:"POSTGRES_HOST"`
	PostgresPort  string `mapstructure:"POSTGRES_PORT"`
	PostgresDB    string `mapstructure:"POSTGRES_DATABASE"`
	MigrationURL  string `mapstructure:"MIGRATION_URL"`
	LLMEndpoint   string `mapstructure:"LLM_ENDPOINT"`
	LLMAPIKey     string `mapstructure:"LLM_API_KEY"`
	LLMModelID    string `mapstructure:"LLM_MODEL_ID"`
	LLMMaxTokens  int    `mapstructure:"LLM_MAX_TOKENS"`
}

// LoadConfig loads the configuration from a file.
func LoadConfig(path string) (cfg Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("LLM_MODEL_ID", "anthropic.claude-3-sonnet-20240229-v1:0")
	viper.SetDefault("LLM_MAX_TOKENS", 4000)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}
	err = viper.Unmarshal(&cfg)
	return
}
