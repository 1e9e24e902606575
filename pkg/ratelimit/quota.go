package ratelimit

import "sync"

// Quota is a lifetime usage ceiling, as opposed to Window's rolling
// ceiling. Once the quota is reached the counter stops incrementing and
// every further request is rejected. Safe for concurrent use.
type Quota struct {
	limit int64
	used  int64
	mu    sync.Mutex
}

// QuotaStats is a point-in-time snapshot of a Quota.
type QuotaStats struct {
	Used  int64 `json:"used"`
	Limit int64 `json:"limit"`
}

// NewQuota creates a quota allowing limit requests in total. A
// non-positive limit disables quota enforcement.
func NewQuota(limit int64) *Quota {
	return &Quota{limit: limit}
}

// Allow records one request unless the quota is already exhausted.
// Rejected requests do not increment the counter.
func (q *Quota) Allow() bool {
	if q.limit <= 0 {
		return true
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.used >= q.limit {
		return false
	}
	q.used++
	return true
}

// Used returns the number of consumed requests.
func (q *Quota) Used() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.used
}

// Stats returns the current quota snapshot.
func (q *Quota) Stats() QuotaStats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return QuotaStats{Used: q.used, Limit: q.limit}
}
