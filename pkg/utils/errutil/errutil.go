package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/adtool/pkg/utils/logging"
)

// Log writes err with its goerr values and stack to the context logger
func Log(ctx context.Context, err error, msg string, args ...any) {
	if err == nil {
		return
	}
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg, append(args,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)...)
		return
	}
	logger.Error(msg, append(args, "error", err.Error())...)
}

// HandleHTTP logs the error and writes a JSON error response.
// Messages of 5xx errors are not exposed to the client.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	Log(ctx, err, "HTTP error", "status", statusCode)

	msg := err.Error()
	if statusCode >= http.StatusInternalServerError {
		msg = http.StatusText(statusCode)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": msg}) //nolint:errcheck // header already committed
}
