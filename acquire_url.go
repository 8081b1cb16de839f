package rampage

import (
	"context"
	"fmt"
	"net/http"
)

// httpClient is package-level so tests (and constrained runtimes with a
// custom transport) can swap it out.
var httpClient = &http.Client{}

// applyAuth materializes an Authorization header from an auth scheme and
// credential onto headers. It is a pure function on a headers container
// (Design rationale, §4.1), used by the URL transport; the S3 transport
// authenticates with its own SigV4 signing instead.
func applyAuth(headers http.Header, auth AuthKind, credential string) error {
	switch auth {
	case "", AuthNone:
		return nil
	case AuthBearer:
		if credential == "" {
			return NewDiffError(PhaseAuth, "bearer auth requires a non-empty credential")
		}

		headers.Set("Authorization", "Bearer "+credential)

		return nil
	case AuthBasic:
		if credential == "" {
			return NewDiffError(PhaseAuth, "basic auth requires a non-empty credential")
		}

		headers.Set("Authorization", "Basic "+credential)

		return nil
	default:
		return NewDiffError(PhaseAuth, fmt.Sprintf("unknown auth type: %s", auth))
	}
}

// acquireURL implements the "url" transport (§4.1).
func acquireURL(ctx context.Context, cfg URLSource) (*AcquiredStream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, NewDiffError(PhaseFetch, fmt.Sprintf("invalid URL: %s", cfg.URL))
	}

	if err := applyAuth(req.Header, cfg.Auth, cfg.Credential); err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, wrap(PhaseFetch, err, fmt.Sprintf("network error fetching %s", cfg.URL))
	}

	return handleHTTPResponse(resp, cfg.URL)
}

// handleHTTPResponse implements the shared response-handling rules of §4.1
// (status ranges, Content-Length pre-validation, empty body) for both the
// URL and S3 transports.
func handleHTTPResponse(resp *http.Response, url string) (*AcquiredStream, error) {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if resp.Body == nil {
			return nil, NewDiffError(PhaseFetch, "response has no body")
		}

		declared := int64(-1)
		if resp.ContentLength >= 0 {
			declared = resp.ContentLength
		}

		return &AcquiredStream{Stream: resp.Body, DeclaredSize: declared}, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		_ = resp.Body.Close()

		return nil, NewDiffError(PhaseAuth, fmt.Sprintf(
			"authentication failed: %d %s", resp.StatusCode, resp.Status))

	default:
		_ = resp.Body.Close()

		return nil, NewDiffError(PhaseFetch, fmt.Sprintf(
			"HTTP %d %s for %s", resp.StatusCode, resp.Status, url))
	}
}
