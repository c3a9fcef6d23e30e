package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ActorSessionKey returns the cache key for an actor's login session JTI.
func (r *CacheKeyStruct) ActorSessionKey(actorID uuid.UUID) string {
	return fmt.Sprintf("login:%s", actorID)
}

// ActorScopeKey returns the cache key for an actor's resolved policy context.
func (r *CacheKeyStruct) ActorScopeKey(actorID uuid.UUID) string {
	return fmt.Sprintf("actor:%s:scope", actorID)
}

// InboxChannel returns the Redis PubSub channel for a recipient's inbox events.
func (r *CacheKeyStruct) InboxChannel(actorID uuid.UUID) string {
	return fmt.Sprintf("inbox:%s", actorID)
}

// FeeReminderQueue returns the Redis list the overdue worker pushes reminders onto.
func (r *CacheKeyStruct) FeeReminderQueue() string {
	return "fee_reminders_queue"
}

// LoginRateKey returns the fixed-window rate counter key for a client IP.
func (r *CacheKeyStruct) LoginRateKey(ip string) string {
	return fmt.Sprintf("ratelimit:login:%s", ip)
}

// OverdueSweepLock returns the SETNX lock key serializing overdue sweeps.
func (r *CacheKeyStruct) OverdueSweepLock() string {
	return "overdue_sweep_lock"
}

var CacheKey = NewCacheKeyStruct()
