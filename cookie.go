package paperdoc

import (
	"encoding/json"
	"strings"
)

// Cookie is one record of the generic cookie-export schema used by browser
// cookie-manager extensions. Only Name and Value are required; everything
// else is optional. Unknown fields in the source file are tolerated.
type Cookie struct {
	Name           string  `json:"name"`
	Value          string  `json:"value"`
	Domain         string  `json:"domain,omitempty"`
	Path           string  `json:"path,omitempty"`
	Secure         bool    `json:"secure,omitempty"`
	HTTPOnly       bool    `json:"httpOnly,omitempty"`
	ExpirationDate float64 `json:"expirationDate,omitempty"`
	SameSite       string  `json:"sameSite,omitempty"`
}

// ParseCookies decodes a cookie-export JSON document.
func ParseCookies(data []byte) ([]Cookie, error) {
	var cookies []Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, Errorf(EINVALID, "invalid cookie file: %v", err)
	}
	return cookies, nil
}

// MarshalCookies encodes cookies back into the export schema. The output is
// indented to stay diffable against hand-exported files.
func MarshalCookies(cookies []Cookie) ([]byte, error) {
	return json.MarshalIndent(cookies, "", "    ")
}

// NormalizeSameSite maps the export schema's sameSite values
// (no_restriction|lax|strict, any case) to the browser's native values
// (None|Lax|Strict). Unrecognized non-empty values map to "Lax"; an empty
// value stays empty so callers can omit the attribute entirely.
func NormalizeSameSite(v string) string {
	if v == "" {
		return ""
	}
	switch strings.ToLower(v) {
	case "no_restriction":
		return "None"
	case "lax":
		return "Lax"
	case "strict":
		return "Strict"
	default:
		return "Lax"
	}
}

// ExportSameSite is the inverse of NormalizeSameSite, mapping a browser
// sameSite value back to the export schema's spelling.
func ExportSameSite(v string) string {
	switch v {
	case "None":
		return "no_restriction"
	case "Lax":
		return "lax"
	case "Strict":
		return "strict"
	default:
		return ""
	}
}
