package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "bm_server",
}

var defaultLifecycle = Lifecycle{
	OperationTimeout: 45 * time.Second,
}

var defaultSSE = SSE{
	Debounce:           500 * time.Millisecond,
	CacheTimeout:       30 * time.Second,
	QueryTimeout:       10 * time.Second,
	CacheSweepInterval: time.Minute,
	StaleSweepInterval: 30 * time.Second,
	StaleThreshold:     5 * time.Minute,
	HeartbeatInterval:  30 * time.Second,
}

var defaultKafka = Kafka{
	Topic:   "request-assignments",
	GroupID: "bm-server-notifier",
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultLifecycle returns the default lifecycle-engine bounds.
func DefaultLifecycle() Lifecycle {
	return defaultLifecycle
}

// DefaultSSE returns the default notification timings.
func DefaultSSE() SSE {
	return defaultSSE
}

// DefaultKafka returns the default assignment-consumer settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRateLimit returns the default request budget settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
