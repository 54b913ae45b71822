package models

// Platform is the value of the X-Platform request header sent by the
// front-end applications.
type Platform string

const (
	// PlatformWeb is assumed when the header is absent.
	PlatformWeb     Platform = "web"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// PlatformHeader is the request header carrying the caller's [Platform].
const PlatformHeader = "X-Platform"

// ParsePlatform maps a raw header value to a [Platform]. Empty values map to
// [PlatformWeb]; unknown values are kept as-is so callers can still tell web
// from non-web.
func ParsePlatform(raw string) Platform {
	if raw == "" {
		return PlatformWeb
	}
	return Platform(raw)
}

// IsWeb reports whether p is the web platform.
func (p Platform) IsWeb() bool {
	return p == PlatformWeb
}
