package rampage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_ResolveS3URL_BucketKeyURI_VirtualHostedStyle(t *testing.T) {
	url, err := resolveS3URL(S3Source{Source: "s3://my-bucket/path/to/key.tgz"}, "us-west-2")
	require.NoError(t, err)
	require.Equal(t, "https://my-bucket.s3.us-west-2.amazonaws.com/path/to/key.tgz", url)
}

func Test_ResolveS3URL_WithEndpoint_PathStyle(t *testing.T) {
	url, err := resolveS3URL(S3Source{Source: "s3://my-bucket/key.tgz", Endpoint: "http://localhost:9000/"}, "us-east-1")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9000/my-bucket/key.tgz", url)
}

func Test_ResolveS3URL_AlreadyHTTPS_PassedThrough(t *testing.T) {
	url, err := resolveS3URL(S3Source{Source: "https://example.com/x.tgz"}, "us-east-1")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/x.tgz", url)
}

func Test_ResolveS3URL_InvalidURI_FailsFetch(t *testing.T) {
	_, err := resolveS3URL(S3Source{Source: "not-a-uri"}, "us-east-1")
	require.Error(t, err)

	var de *DiffError
	require.ErrorAs(t, err, &de)
	require.Equal(t, PhaseFetch, de.Phase)
}

func Test_SignSigV4_Deterministic_SameInputsSameSignature(t *testing.T) {
	build := func() *http.Request {
		req, _ := http.NewRequest(http.MethodGet, "https://bucket.s3.us-east-1.amazonaws.com/key.tgz", nil)
		return req
	}

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	req1 := build()
	require.NoError(t, signSigV4(req1, "AKIDEXAMPLE", "secret", "", "us-east-1", "s3", now))

	req2 := build()
	require.NoError(t, signSigV4(req2, "AKIDEXAMPLE", "secret", "", "us-east-1", "s3", now))

	require.Equal(t, req1.Header.Get("Authorization"), req2.Header.Get("Authorization"))
	require.Contains(t, req1.Header.Get("Authorization"), "AWS4-HMAC-SHA256")
	require.Contains(t, req1.Header.Get("Authorization"), "Credential=AKIDEXAMPLE/20240101/us-east-1/s3/aws4_request")
}

func Test_AcquireS3_MissingCredentials_FailsAuth(t *testing.T) {
	_, err := acquireS3(context.Background(), S3Source{Source: "s3://b/k"})
	require.Error(t, err)

	var de *DiffError
	require.ErrorAs(t, err, &de)
	require.Equal(t, PhaseAuth, de.Phase)
}

func Test_AcquireS3_NotFound_FailsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := acquireS3(context.Background(), S3Source{
		Source:          "s3://bucket/key.tgz",
		AccessKeyID:     "AKID",
		SecretAccessKey: "secret",
		Endpoint:        srv.URL,
	})
	require.Error(t, err)

	var de *DiffError
	require.ErrorAs(t, err, &de)
	require.Equal(t, PhaseFetch, de.Phase)
}

func Test_CanonicalizeHeaders_IncludesHostAndAmzHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("x-amz-date", "20240101T000000Z")
	h.Set("x-amz-content-sha256", "abc")

	canonical, signed := canonicalizeHeaders(h, "bucket.s3.amazonaws.com")
	require.Contains(t, canonical, "host:bucket.s3.amazonaws.com")
	require.Equal(t, "host;x-amz-content-sha256;x-amz-date", signed)
}
