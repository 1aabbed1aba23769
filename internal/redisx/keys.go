package redisx

import "time"

const (
	// Session token issued by the identity provider: session:{token} -> user_id
	KeySession = "session:%s"

	// Cached cart mapping per account: cart:{user_id} -> JSON {product_id: qty}
	KeyCart = "cart:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLCartCache = 10 * time.Minute
	TTLDedup     = 48 * time.Hour
)
