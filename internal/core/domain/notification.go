package domain

import (
	"fmt"
	"hash/fnv"
	"time"
)

// ExpirationNotice is a single expiry warning for one subscription.
// Key is derived from the service name only, so a repeated check for the
// same service replaces the previous notice instead of stacking a new one.
type ExpirationNotice struct {
	Key            uint32     `json:"key"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	ServiceName    string     `json:"serviceName"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
}

// NoticeKey returns the deterministic notification key for a service name.
func NoticeKey(serviceName string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(serviceName))
	return h.Sum32()
}

// NewExpirationNotice builds the notice for an expiring subscription.
func NewExpirationNotice(sub Subscription) ExpirationNotice {
	return ExpirationNotice{
		Key:            NoticeKey(sub.ServiceName),
		Title:          "Subscription expiration notice",
		Body:           fmt.Sprintf("%s is expiring soon", sub.ServiceName),
		ServiceName:    sub.ServiceName,
		ExpirationDate: sub.ExpirationDate,
	}
}
