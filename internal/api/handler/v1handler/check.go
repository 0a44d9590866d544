package v1handler

import (
	"encoding/json"
	"net/http"

	"checker/pkg/domain"
	"checker/pkg/serrors"
)

// CheckBatchRequest is the request payload for POST /v1/check.
type CheckBatchRequest struct {
	Credentials []string `json:"credentials"`
}

// CheckBatchResponse echoes the batch identity, the derived counts and the
// per-credential outcomes. Credentials in the outcomes are always masked.
type CheckBatchResponse struct {
	ID      domain.BatchID   `json:"id"`
	Total   int              `json:"total"`
	Valid   int              `json:"valid"`
	Invalid int              `json:"invalid"`
	Results []domain.Outcome `json:"results"`
}

// CheckBatch runs one synchronous batch check. Structural problems with the
// request (undecodable body, empty or oversized batch) are 400s; everything
// else, including every-credential-failed, is a 200 with the outcomes inline.
func (h *Handler) CheckBatch(w http.ResponseWriter, r *http.Request) {
	var req CheckBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "could not decode request body"))

		return
	}

	result, err := h.deps.Checker.Run(r.Context(), req.Credentials)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, CheckBatchResponse{
		ID:      result.ID,
		Total:   result.Total(),
		Valid:   result.ValidCount(),
		Invalid: result.InvalidCount(),
		Results: result.Results,
	})
}
