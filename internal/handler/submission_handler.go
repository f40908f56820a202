package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/acadsharsh/mockera12/internal/middleware"
	"github.com/acadsharsh/mockera12/internal/models"
	"github.com/acadsharsh/mockera12/internal/service"
)

type SubmissionHandler struct {
	submissionService service.SubmissionService
}

func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

type submitRequest struct {
	TestID    uint64                 `json:"testId"`
	Responses []models.ResponseInput `json:"responses"`
	TimeTaken int32                  `json:"timeTaken"`
}

// Submit handles POST /api/student/submit
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TestID == 0 {
		writeError(w, http.StatusBadRequest, "testId is required")
		return
	}

	submissionID, err := h.submissionService.Submit(r.Context(), req.TestID, user.UserID, req.Responses, req.TimeTaken)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"submissionId": submissionID,
	})
}

// Result handles GET /api/student/result/{submissionId}
func (h *SubmissionHandler) Result(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	submissionID, err := strconv.ParseUint(r.PathValue("submissionId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid submission id")
		return
	}

	result, err := h.submissionService.GetResult(r.Context(), submissionID, user.UserID, user.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
