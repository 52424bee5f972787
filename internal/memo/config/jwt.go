package config

import "time"

// JWTConfig содержит настройки для JWT токенов и хеширования паролей.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"MEMO_JWT_SECRET_KEY" env-required:"true"`
	TokenTTL   string `yaml:"token_ttl" env:"MEMO_JWT_TOKEN_TTL" env-default:"0"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"MEMO_JWT_BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL возвращает время жизни токена. Ноль означает бессрочный токен.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.TokenTTL)
	if err != nil || duration < 0 {
		return 0
	}
	return duration
}
