package paperdoc

import (
	"net/url"
	"strings"
)

// ApplyProxyTemplate rewrites target through an institutional proxy URL
// template. The template can contain:
//
//   - %u: the full target URL, percent-encoded
//   - %h: the target hostname
//   - %p: the target path, query and fragment, without the leading slash
//
// Example templates: "https://proxy.edu/login?qurl=%u" or "https://%h.proxy.edu/%p".
// Unrecognized placeholders are left verbatim. If the rewritten string lacks a
// scheme, "https://" is prepended. An empty template returns target unchanged.
func ApplyProxyTemplate(template, target string) string {
	if template == "" {
		return target
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return target
	}

	res := template
	if strings.Contains(res, "%u") {
		res = strings.ReplaceAll(res, "%u", url.QueryEscape(target))
	}
	if strings.Contains(res, "%h") {
		res = strings.ReplaceAll(res, "%h", parsed.Host)
	}
	if strings.Contains(res, "%p") {
		path := strings.TrimPrefix(parsed.Path, "/")
		if parsed.RawQuery != "" {
			path += "?" + parsed.RawQuery
		}
		if parsed.Fragment != "" {
			path += "#" + parsed.Fragment
		}
		res = strings.ReplaceAll(res, "%p", path)
	}

	if !strings.HasPrefix(res, "http://") && !strings.HasPrefix(res, "https://") {
		res = "https://" + res
	}

	return res
}
