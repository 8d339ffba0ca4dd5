package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hermannm.dev/datadash/datasets"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

func sendJSON(res http.ResponseWriter, value any) {
	body, err := json.Marshal(value)
	if err != nil {
		sendServerError(res, err, "failed to serialize response")
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)
	if _, err := res.Write(body); err != nil {
		log.ErrorCause(err, "failed to write response")
	}
}

func sendClientError(res http.ResponseWriter, err error, message string) {
	sendErrorWithStatus(res, http.StatusBadRequest, err, message)
}

func sendServerError(res http.ResponseWriter, err error, message string) {
	sendErrorWithStatus(res, http.StatusInternalServerError, err, message)
}

// Unknown datasets give 404. Any other error is a failed load, which gives 503.
func sendPipelineError(res http.ResponseWriter, err error) {
	if errors.Is(err, datasets.ErrUnknownDataset) {
		sendErrorWithStatus(res, http.StatusNotFound, err, "")
	} else {
		sendErrorWithStatus(res, http.StatusServiceUnavailable, err, "dataset could not be loaded")
	}
}

func sendErrorWithStatus(res http.ResponseWriter, statusCode int, err error, message string) {
	if err != nil {
		if message == "" {
			message = err.Error()
		} else {
			message = wrap.Error(err, message).Error()
		}
	}

	log.Debug("request failed", slog.Int("status", statusCode), slog.String("error", message))
	http.Error(res, message, statusCode)
}
