package rod

import (
	"errors"
	"io/fs"
	"os"

	"github.com/fwojciec/paperdoc"
	"github.com/go-rod/rod/lib/proto"
)

// loadCookies reads the configured cookie-export file and installs its
// cookies into the browser. A missing file is not an error; the file will be
// created on Close.
func (s *Session) loadCookies() error {
	if s.opts.CookiesPath == "" {
		return nil
	}

	data, err := os.ReadFile(s.opts.CookiesPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	cookies, err := paperdoc.ParseCookies(data)
	if err != nil {
		return err
	}
	if len(cookies) == 0 {
		return nil
	}

	return s.browser.SetCookies(CookiesToParams(cookies))
}

// saveCookies writes the browser's current cookies back to the configured
// file in the export schema.
func (s *Session) saveCookies() error {
	if s.opts.CookiesPath == "" || s.browser == nil {
		return nil
	}

	cookies, err := s.browser.GetCookies()
	if err != nil {
		return err
	}
	if len(cookies) == 0 {
		return nil
	}

	data, err := paperdoc.MarshalCookies(CookiesFromBrowser(cookies))
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.opts.CookiesPath, data, 0o644); err != nil {
		return err
	}
	s.logger.Info("cookies saved", "path", s.opts.CookiesPath, "count", len(cookies))
	return nil
}

// CookiesToParams converts export-schema cookies to the browser's native
// cookie schema: expirationDate becomes expires (epoch seconds) and sameSite
// values are normalized (no_restriction/lax/strict, any case, unrecognized
// mapping to Lax).
func CookiesToParams(cookies []paperdoc.Cookie) []*proto.NetworkCookieParam {
	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		p := &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
		}
		if c.ExpirationDate != 0 {
			p.Expires = proto.TimeSinceEpoch(c.ExpirationDate)
		}
		if ss := paperdoc.NormalizeSameSite(c.SameSite); ss != "" {
			p.SameSite = proto.NetworkCookieSameSite(ss)
		}
		params = append(params, p)
	}
	return params
}

// CookiesFromBrowser converts the browser's cookies back into the export
// schema so the rewritten file keeps the shape it was read in.
func CookiesFromBrowser(cookies []*proto.NetworkCookie) []paperdoc.Cookie {
	out := make([]paperdoc.Cookie, 0, len(cookies))
	for _, c := range cookies {
		e := paperdoc.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			SameSite: paperdoc.ExportSameSite(string(c.SameSite)),
		}
		if c.Expires > 0 {
			e.ExpirationDate = float64(c.Expires)
		}
		out = append(out, e)
	}
	return out
}
