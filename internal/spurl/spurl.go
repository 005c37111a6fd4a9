// Package spurl provides URL helpers for addressing SharePoint Online resources.
package spurl

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// RootSiteURL returns the scheme://host authority of a site URL. This is the
// resource identifier tokens are scoped to.
func RootSiteURL(webURL string) (string, error) {
	u, err := url.Parse(webURL)
	if err != nil {
		return "", fmt.Errorf("parse web url %q: %w", webURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("web url %q has no authority", webURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// GetServerRelativePath combines a site URL with a web-relative folder
// reference into a server-relative path. A folder reference that already
// carries the site's server-relative prefix (compared case-insensitively) is
// returned normalized rather than prefixed twice.
func GetServerRelativePath(webURL, folderURL string) string {
	webPath := serverRelativeWebPath(webURL)

	folder := strings.TrimSuffix(folderURL, "/")
	if folder == "" {
		if webPath == "" {
			return "/"
		}
		return webPath
	}
	if !strings.HasPrefix(folder, "/") {
		folder = "/" + folder
	}

	if webPath != "" && strings.HasPrefix(strings.ToLower(folder), strings.ToLower(webPath)) {
		rest := folder[len(webPath):]
		if rest == "" || strings.HasPrefix(rest, "/") {
			return webPath + rest
		}
	}
	return webPath + folder
}

// GetAbsoluteURL resolves a server-relative path against the site's
// authority.
func GetAbsoluteURL(webURL, serverRelativeURL string) string {
	root, err := RootSiteURL(webURL)
	if err != nil {
		return serverRelativeURL
	}
	return root + "/" + strings.TrimPrefix(serverRelativeURL, "/")
}

// IsValidGUID reports whether s is a syntactically valid GUID.
func IsValidGUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ValidateSiteURL checks that raw has the shape of a SharePoint Online site
// URL. Only the https scheme and a host are required; the tenant host name
// is not pinned.
func ValidateSiteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%s is not a valid SharePoint Online site URL", raw)
	}
	return nil
}

// serverRelativeWebPath extracts the server-relative portion of a site URL,
// without a trailing slash. Empty for a root site.
func serverRelativeWebPath(webURL string) string {
	webPath := webURL
	if u, err := url.Parse(webURL); err == nil && u.Host != "" {
		webPath = u.Path
	}
	webPath = strings.TrimSuffix(webPath, "/")
	if webPath == "" {
		return ""
	}
	if !strings.HasPrefix(webPath, "/") {
		webPath = "/" + webPath
	}
	return webPath
}
