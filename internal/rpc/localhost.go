package rpc

import (
	"net"
	"net/url"
	"strings"

	"github.com/MKhiriev/t4-api/models"
)

// AndroidEmulatorHost is the address under which an Android emulator reaches
// the host machine's loopback interface.
const AndroidEmulatorHost = "10.0.2.2"

// EndpointPath is appended to the API base URL to reach the RPC endpoint.
const EndpointPath = "/trpc"

// ReplaceLocalhost points a loopback API URL at an address a device can
// reach: devHost when set, the Android emulator alias on android, otherwise
// the URL is returned unchanged. Ports, paths and non-loopback hosts are
// kept.
func ReplaceLocalhost(rawURL, devHost string, platform models.Platform) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}

	switch strings.ToLower(u.Hostname()) {
	case "localhost", "127.0.0.1", "::1":
	default:
		return rawURL
	}

	replacement := strings.Trim(strings.TrimSpace(devHost), "[]")
	if replacement == "" && platform == models.PlatformAndroid {
		replacement = AndroidEmulatorHost
	}
	if replacement == "" {
		return rawURL
	}

	switch port := u.Port(); {
	case port != "":
		u.Host = net.JoinHostPort(replacement, port)
	case strings.Contains(replacement, ":"):
		u.Host = "[" + replacement + "]"
	default:
		u.Host = replacement
	}
	return u.String()
}

// EndpointURL returns the RPC endpoint for the API base URL: localhost
// substituted, trailing slashes dropped and [EndpointPath] appended.
func EndpointURL(apiURL, devHost string, platform models.Platform) string {
	return strings.TrimRight(ReplaceLocalhost(apiURL, devHost, platform), "/") + EndpointPath
}
