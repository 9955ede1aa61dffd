package status

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/resell-server/internal/logging"
)

type response struct {
	Status string `json:"status"`
}

type Handler struct{}

func NewHandler() Handler {
	return Handler{}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	logData.AddData("method", req.Method)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if req.Method == http.MethodHead {
		return nil
	}
	return json.NewEncoder(w).Encode(response{Status: "ok"})
}
