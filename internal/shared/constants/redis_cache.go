package constants

import (
	"fmt"
	"strings"
	"time"
)

// Redis key layout for the Find My Rave backend
// Pattern: findmyrave:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_EVENT_DETAIL  = 1 * time.Hour    // per-event detail lookups (platform + id)
	TTL_LISTING_QUEUE = 2 * time.Minute  // admin moderation queue
	TTL_BOOKMARKS     = 10 * time.Minute // a user's saved events
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "findmyrave"
)

// ================== EVENTS ==================

const (
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:" // + platform:id
)

// ================== LISTINGS ==================

const (
	CACHE_KEY_LISTING_QUEUE = CACHE_PREFIX + ":listings:queue:" // + status
)

// ================== BOOKMARKS ==================

const (
	CACHE_KEY_BOOKMARKS = CACHE_PREFIX + ":bookmarks:user:" // + user-id
)

// ================== RATE LIMITING ==================

const (
	CACHE_KEY_RATELIMIT = CACHE_PREFIX + ":ratelimit:" // + ip:type
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_LISTING_QUEUE = CACHE_KEY_LISTING_QUEUE + "*"
	PATTERN_INVALIDATE_LOCAL_DETAIL  = CACHE_KEY_EVENT_DETAIL + "local:*"
)

// ================== KEY BUILDERS ==================

// BuildEventDetailKey keys a detail lookup by platform and platform-scoped id
func BuildEventDetailKey(platform, eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + strings.ToLower(platform) + ":" + eventID
}

func BuildListingQueueKey(status string) string {
	if status == "" {
		status = "all"
	}
	return CACHE_KEY_LISTING_QUEUE + status
}

func BuildBookmarksKey(userID string) string {
	return CACHE_KEY_BOOKMARKS + userID
}

func BuildRateLimitKey(clientIP, limitType string) string {
	return fmt.Sprintf("%s%s:%s", CACHE_KEY_RATELIMIT, clientIP, limitType)
}
