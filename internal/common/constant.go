package common

// Metadata keys used by the client.
const (
	// OfflineStatusKey holds the persisted ONLINE/OFFLINE flag.
	OfflineStatusKey = "offline_status"

	// AccessTokenKey holds the bearer token attached to outbound requests.
	AccessTokenKey = "access_token"
)

// Content types produced by synthesized responses.
const (
	ContentTypeJSON   = "application/json"
	ContentTypeBinary = "application/octet-stream"
	ContentTypeText   = "text/plain; charset=utf-8"
)
