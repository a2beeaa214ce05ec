package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestValidateSignature(t *testing.T) {
	secret := "channel-secret"
	body := []byte(`{"events":[]}`)

	tests := []struct {
		name      string
		signature string
		body      []byte
		want      bool
	}{
		{name: "valid signature", signature: sign(secret, body), body: body, want: true},
		{name: "wrong secret", signature: sign("other", body), body: body, want: false},
		{name: "tampered body", signature: sign(secret, body), body: []byte(`{"events":[{}]}`), want: false},
		{name: "not base64", signature: "%%%", body: body, want: false},
		{name: "empty signature", signature: "", body: body, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSignature(secret, tt.signature, tt.body))
		})
	}
}
