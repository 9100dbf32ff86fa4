package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

func (kb *KeyBuilder) KeyVisitsTotal() string {
	return kb.BuildKey(KeyVisitsTotal)
}

func (kb *KeyBuilder) KeyVisitsDaily(date string) string {
	return kb.BuildKey(fmt.Sprintf(KeyVisitsDaily, date))
}

func (kb *KeyBuilder) KeyVisitsLastUpdate() string {
	return kb.BuildKey(KeyVisitsLastUpdate)
}
