package rampage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// acquireS3 implements the "s3" transport (§4.1): AWS Signature V4 signed
// GET against either an already-http(s) source, or a derived path-style /
// virtual-hosted-style URL built from an "s3://bucket/key" URI.
//
// No AWS SDK or S3-signing library appears anywhere in the retrieval pack
// (SPEC_FULL.md §B/§C); SigV4 is implemented by hand against the stdlib
// crypto primitives.
func acquireS3(ctx context.Context, cfg S3Source) (*AcquiredStream, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, NewDiffError(PhaseAuth, "s3 transport requires accessKeyId and secretAccessKey")
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	rawURL, err := resolveS3URL(cfg, region)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, NewDiffError(PhaseFetch, fmt.Sprintf("invalid S3 URL: %s", rawURL))
	}

	if cfg.SessionToken != "" {
		req.Header.Set("x-amz-security-token", cfg.SessionToken)
	}

	if err := signSigV4(req, cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken, region, "s3", time.Now().UTC()); err != nil {
		return nil, wrap(PhaseAuth, err, "failed to sign S3 request")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, wrap(PhaseFetch, err, fmt.Sprintf("network error fetching %s", rawURL))
	}

	if resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()

		return nil, NewDiffError(PhaseFetch, "S3 object not found")
	}

	return handleHTTPResponse(resp, rawURL)
}

// resolveS3URL derives the request URL per §4.1: pass through an
// already-http(s) source, otherwise parse "s3://bucket/key" and build a
// path-style URL (when Endpoint is set) or a virtual-hosted-style URL.
func resolveS3URL(cfg S3Source, region string) (string, error) {
	if strings.HasPrefix(cfg.Source, "http://") || strings.HasPrefix(cfg.Source, "https://") {
		return cfg.Source, nil
	}

	if !strings.HasPrefix(cfg.Source, "s3://") {
		return "", NewDiffError(PhaseFetch, fmt.Sprintf("unrecognized S3 source: %s", cfg.Source))
	}

	rest := strings.TrimPrefix(cfg.Source, "s3://")

	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", NewDiffError(PhaseFetch, fmt.Sprintf("invalid s3:// URI, expected s3://bucket/key: %s", cfg.Source))
	}

	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + bucket + "/" + key, nil
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key), nil
}

// signSigV4 signs req in place following the canonical Signature Version 4
// algorithm for a bodyless GET request.
func signSigV4(req *http.Request, accessKeyID, secretAccessKey, sessionToken, region, service string, now time.Time) error {
	amzDate := now.Format("20060102T150405Z")
	dateStamp := now.Format("20060102")

	payloadHash := sha256Hex(nil)
	req.Header.Set("x-amz-date", amzDate)
	req.Header.Set("x-amz-content-sha256", payloadHash)
	req.Header.Set("Host", req.URL.Host)

	canonicalHeaders, signedHeaders := canonicalizeHeaders(req.Header, req.URL.Host)

	canonicalRequest := strings.Join([]string{
		http.MethodGet,
		canonicalURI(req.URL),
		canonicalQuery(req.URL),
		canonicalHeaders,
		signedHeaders,
		payloadHash,
	}, "\n")

	credentialScope := strings.Join([]string{dateStamp, region, service, "aws4_request"}, "/")
	stringToSign := strings.Join([]string{
		"AWS4-HMAC-SHA256",
		amzDate,
		credentialScope,
		sha256Hex([]byte(canonicalRequest)),
	}, "\n")

	signingKey := deriveSigningKey(secretAccessKey, dateStamp, region, service)
	signature := hex.EncodeToString(hmacSHA256(signingKey, stringToSign))

	authHeader := fmt.Sprintf(
		"AWS4-HMAC-SHA256 Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		accessKeyID, credentialScope, signedHeaders, signature,
	)
	req.Header.Set("Authorization", authHeader)

	_ = sessionToken // already set as x-amz-security-token by the caller before signing.

	return nil
}

func canonicalURI(u *url.URL) string {
	if u.EscapedPath() == "" {
		return "/"
	}

	return u.EscapedPath()
}

func canonicalQuery(u *url.URL) string {
	return u.Query().Encode()
}

func canonicalizeHeaders(h http.Header, host string) (canonical string, signed string) {
	names := []string{"host"}
	values := map[string]string{"host": strings.ToLower(strings.TrimSpace(host))}

	for name := range h {
		lower := strings.ToLower(name)
		if lower == "host" {
			continue
		}

		if lower == "x-amz-date" || lower == "x-amz-content-sha256" || lower == "x-amz-security-token" {
			names = append(names, lower)
			values[lower] = strings.TrimSpace(h.Get(name))
		}
	}

	sortStrings(names)

	var b strings.Builder

	for _, n := range names {
		b.WriteString(n)
		b.WriteByte(':')
		b.WriteString(values[n])
		b.WriteByte('\n')
	}

	return b.String(), strings.Join(names, ";")
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)

	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))

	return mac.Sum(nil)
}

func deriveSigningKey(secretAccessKey, dateStamp, region, service string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secretAccessKey), dateStamp)
	kRegion := hmacSHA256(kDate, region)
	kService := hmacSHA256(kRegion, service)

	return hmacSHA256(kService, "aws4_request")
}
