package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/remotework"
	"github.com/nimbus-hcm/hcm-backend-go/internal/handler/http/middleware"
	"github.com/nimbus-hcm/hcm-backend-go/internal/handler/http/response"
)

type RemoteWorkHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type remoteWorkHandlerImpl struct {
	remoteWorkService remotework.RemoteWorkService
}

func NewRemoteWorkHandler(remoteWorkService remotework.RemoteWorkService) RemoteWorkHandler {
	return &remoteWorkHandlerImpl{
		remoteWorkService: remoteWorkService,
	}
}

// Create implements RemoteWorkHandler.
func (h *remoteWorkHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req remotework.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.remoteWorkService.Create(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Remote work request submitted", result)
}

// Resolve implements RemoteWorkHandler.
func (h *remoteWorkHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	adminID, err := middleware.EmployeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req remotework.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.remoteWorkService.Resolve(r.Context(), adminID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Remote work request resolved", result)
}

// List implements RemoteWorkHandler.
func (h *remoteWorkHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	result, err := h.remoteWorkService.List(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
