// response/success.go
/* Responsible for handling successful API responses. It reads the response body and
unmarshals it according to the HomeKeeper envelope convention: a body of
{"data": T, "message": "..."} has its data field unwrapped into the output variable,
a bare JSON object is unmarshalled as-is, and a body that is not valid JSON is
treated as empty rather than as an error. */
package response

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// HandleAPISuccessResponse reads the 2xx response body and unmarshals it into out
// following the envelope convention. A nil out discards the body. An empty or
// non-JSON body leaves out untouched and returns nil, matching the backend's habit
// of returning bodiless 204s and the occasional non-JSON 200.
func HandleAPISuccessResponse(resp *http.Response, out any, sugar *zap.SugaredLogger) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		sugar.Errorw("Failed to read response body", zap.Error(err))
		return err
	}
	resp.Body.Close()

	if out == nil || len(bodyBytes) == 0 {
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(bodyBytes, &envelope); err == nil {
		if data, ok := envelope["data"]; ok {
			if err := json.Unmarshal(data, out); err != nil {
				sugar.Errorw("Failed to unmarshal envelope data field", zap.Error(err))
				return err
			}
			if msg, ok := envelope["message"]; ok {
				sugar.Debugw("Response envelope message", zap.ByteString("message", msg))
			}
			return nil
		}
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		// Not valid JSON for the caller's type. The contract is an empty result,
		// not an error.
		sugar.Debugw("Response body is not valid JSON, returning empty result",
			zap.Int("body_length", len(bodyBytes)),
		)
		return nil
	}

	return nil
}
