package restapi

import (
	"context"
	"net/http"

	"checker/pkg/logger"

	"go.uber.org/zap"
)

// tokenPaths lists the token-challenge endpoints in probe order, relative to
// the auth service base URL. A POST without a token makes the provider answer
// 403 carrying a fresh anti-forgery token in its response headers.
var tokenPaths = []string{ //nolint: gochecknoglobals
	"/v2/logout",
	"/v2/login",
}

// AcquireToken probes the token-challenge endpoints and returns the first
// anti-forgery token the provider hands out. All endpoints exhausted without
// a token yields ("", nil): some endpoints work untokened, so absence is the
// caller's call, not a failure. There is no retry loop here.
func (c *Client) AcquireToken(ctx context.Context, credential string) (string, error) {
	for _, path := range tokenPaths {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.AuthURL+path, http.NoBody)
		if err != nil {
			return "", err
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.AddCookie(&http.Cookie{Name: credentialCookie, Value: credential})

		resp, err := c.httpClient.Do(req)
		if err != nil {
			logger.Debug(ctx, "token challenge failed, trying next endpoint",
				zap.String("path", path), zap.Error(err))

			continue
		}
		token := resp.Header.Get(tokenHeader)
		_ = resp.Body.Close()

		if token != "" {
			return token, nil
		}
	}

	return "", nil
}
