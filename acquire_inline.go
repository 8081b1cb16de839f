package rampage

import (
	"bytes"
	"encoding/base64"
	"io"
)

// acquireInlineBytes implements the "inline" transport for the raw-bytes
// sub-variant (§4.1).
func acquireInlineBytes(cfg InlineBytesSource) (*AcquiredStream, error) {
	if int64(len(cfg.Data)) > MaxTarballSize {
		return nil, NewDiffError(PhaseSize, "declared size exceeds limit")
	}

	return &AcquiredStream{
		Stream:       io.NopCloser(bytes.NewReader(cfg.Data)),
		DeclaredSize: int64(len(cfg.Data)),
	}, nil
}

// acquireInlineBase64 implements the "inline" transport for the base64
// sub-variant (§4.1).
func acquireInlineBase64(cfg InlineBase64Source) (*AcquiredStream, error) {
	decoded, err := base64.StdEncoding.DecodeString(cfg.Base64)
	if err != nil {
		return nil, wrap(PhaseFetch, err, "invalid base64 data")
	}

	return acquireInlineBytes(InlineBytesSource{Data: decoded})
}
