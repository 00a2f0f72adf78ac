package telegram

import "time"

type Config struct {
	BotToken      string        `envconfig:"BOT_TOKEN"`
	AllowUnsigned string        `envconfig:"ALLOW_UNSIGNED"` // Railway требует строки
	MaxAge        time.Duration `envconfig:"INIT_DATA_MAX_AGE" default:"24h"`
}

// IsUnsignedAllowed парсит строку AllowUnsigned в boolean
func (c *Config) IsUnsignedAllowed() bool {
	return c.AllowUnsigned == "true" || c.AllowUnsigned == "1" || c.AllowUnsigned == "True"
}

// ShouldVerify подпись проверяется, только если задан токен бота
func (c *Config) ShouldVerify() bool {
	return c.BotToken != "" && !c.IsUnsignedAllowed()
}
