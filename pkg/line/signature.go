package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// ValidateSignature checks the X-Line-Signature header against the raw
// request body: base64 of the body's HMAC-SHA256 under the channel
// secret.
func (c *Client) ValidateSignature(signature string, body []byte) bool {
	return ValidateSignature(c.channelSecret, signature, body)
}

func ValidateSignature(channelSecret, signature string, body []byte) bool {
	expected, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	return hmac.Equal(expected, mac.Sum(nil))
}
