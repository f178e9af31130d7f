package client

import (
	"encoding/json"
	"strings"

	"github.com/sumerqa/chatkit/schema"
)

// decodeError maps a non-2xx response to the service error envelope; any
// other status is an application-level outcome and passes through untouched.
func decodeError(statusCode int, data []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	ret := &schema.Error{StatusCode: statusCode}
	if err := json.Unmarshal(data, ret); err != nil || ret.Detail == "" {
		ret.Detail = strings.TrimSpace(string(data))
	}
	return ret
}
