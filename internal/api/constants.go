package api

// Cache-Control header values.
const (
	// Upload keys are random, so a stored file never changes.
	CacheImmutable = "public, max-age=31536000, immutable"
	CacheNoStore   = "no-store"
)

// Rate limits for the unauthenticated auth endpoints, per client IP.
const (
	authRatePerMinute = 20
	authRateBurst     = 10
)

// multipartMemory is how much of a multipart upload is buffered in memory
// before spilling to temporary files.
const multipartMemory = 1 << 20
