package handler

import (
	"net/http"
	"strconv"

	"github.com/acadsharsh/mockera12/internal/service"
)

type TestHandler struct {
	testService service.TestService
}

func NewTestHandler(testService service.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

// List handles GET /api/student/tests
func (h *TestHandler) List(w http.ResponseWriter, r *http.Request) {
	tests, err := h.testService.ListPublished(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tests)
}

// Get handles GET /api/test/{id}
func (h *TestHandler) Get(w http.ResponseWriter, r *http.Request) {
	testID, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid test id")
		return
	}

	details, err := h.testService.GetForAttempt(r.Context(), testID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}
