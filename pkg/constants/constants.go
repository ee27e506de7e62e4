package constants

import "time"

const (
	CHANNEL_SIZE               = 100              // in-process settlement channel size
	REDIS_TIMEOUT              = 5 * time.Second  // redis dial/read/write timeout
	REFRESH_TOKEN_EXPIRY_HOURS = 168              // refresh token lifetime, 168h = 7 days
	GROUP_LOCK_WAIT            = 3 * time.Second  // bounded wait before surfacing Busy
	GROUP_LOCK_TTL             = 10 * time.Second // lock lease, released early on completion
)
