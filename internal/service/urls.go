package service

import (
	"net/url"
	"strings"
)

// Proxy read paths served by the HTTP layer.
const (
	imageReadPath = "/media/image"
	videoReadPath = "/media/video"
)

// ImageURL maps a stored key to its proxy-relative image URL.
// Keys that are already absolute or already proxied pass through unchanged.
func ImageURL(key string) string {
	return proxyURL(imageReadPath, key)
}

// VideoURL maps a stored key to its proxy-relative video URL. Video always
// goes through the proxy: a direct store URL cannot guarantee uniform CORS
// and range handling across clients.
func VideoURL(key string) string {
	return proxyURL(videoReadPath, key)
}

func proxyURL(readPath, key string) string {
	if isAbsoluteURL(key) || strings.HasPrefix(key, "/media/") {
		return key
	}
	return readPath + "?path=" + url.QueryEscape(key)
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
