package api

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/prasetyowira/qrgen/api/middleware"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/export"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/prasetyowira/qrgen/infrastructure/qrcode"
)

// Handler serves the UI actions of the session controller found in the
// request context.
type Handler struct {
	page *template.Template
}

// ValueRequest is the request object for the text and colour endpoints
type ValueRequest struct {
	Value string `json:"value"`
}

// StateResponse is the rendering view of a session
type StateResponse struct {
	SourceText          string          `json:"source_text"`
	Foreground          string          `json:"foreground"`
	HasArtifact         bool            `json:"has_artifact"`
	Artifact            string          `json:"artifact,omitempty"`
	Caption             string          `json:"caption,omitempty"`
	NotificationVisible bool            `json:"notification_visible"`
	Notification        string          `json:"notification,omitempty"`
	Theme               string          `json:"theme"`
	Style               generator.Style `json:"style"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// NewHandler creates a new API handler
func NewHandler() *Handler {
	return &Handler{
		page: template.Must(template.New("index").Parse(indexHTML)),
	}
}

func newStateResponse(state generator.UIState) StateResponse {
	resp := StateResponse{
		SourceText:          state.SourceText,
		Foreground:          state.Foreground,
		NotificationVisible: state.NotificationVisible,
		Theme:               string(state.Theme),
		Style:               generator.StyleFor(state.Theme),
	}
	if state.Artifact != nil {
		resp.HasArtifact = true
		resp.Artifact = state.Artifact.DataURI()
		resp.Caption = generator.CaptionFor(state.Artifact)
	}
	if state.NotificationVisible {
		resp.Notification = constant.NotificationText
	}
	return resp
}

// controller fetches the session controller or answers 500
func controller(w http.ResponseWriter, r *http.Request, function string) (*generator.Controller, bool) {
	ctrl, ok := middleware.Controller(r.Context())
	if !ok {
		appLogger.CtxError(r.Context(), "No session attached to request", appLogger.LoggerInfo{
			ContextFunction: function,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: "missing session controller",
				Type:    constant.ErrTypeAPI,
			},
		})
		WriteJSONError(w, "Session unavailable", http.StatusInternalServerError)
	}
	return ctrl, ok
}

// decodeValue reads a ValueRequest body or answers 400
func decodeValue(w http.ResponseWriter, r *http.Request, function string) (string, bool) {
	var req ValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		appLogger.CtxWarn(r.Context(), "Error decoding request body", appLogger.LoggerInfo{
			ContextFunction: function,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
		return "", false
	}
	return req.Value, true
}

// Index renders the generator page
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := controller(w, r, constant.CtxHandleIndex)
	if !ok {
		return
	}

	data := struct {
		State       StateResponse
		Placeholder string
	}{
		State:       newStateResponse(ctrl.Snapshot()),
		Placeholder: constant.MsgPlaceholder,
	}

	w.Header().Set("Content-Type", constant.ContentTypeHTML)
	if err := h.page.Execute(w, data); err != nil {
		appLogger.CtxError(r.Context(), "Error rendering page", appLogger.LoggerInfo{
			ContextFunction: constant.CtxHandleIndex,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIRender,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
	}
}

// GetState returns the session state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := controller(w, r, constant.CtxHandleState)
	if !ok {
		return
	}
	WriteJSON(w, newStateResponse(ctrl.Snapshot()), http.StatusOK)
}

// UpdateText replaces the source text
func (h *Handler) UpdateText(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := controller(w, r, constant.CtxHandleText)
	if !ok {
		return
	}
	value, ok := decodeValue(w, r, constant.CtxHandleText)
	if !ok {
		return
	}

	ctrl.SetSourceText(r.Context(), value)
	WriteJSON(w, newStateResponse(ctrl.Snapshot()), http.StatusOK)
}

// UpdateColor replaces the foreground colour
func (h *Handler) UpdateColor(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := controller(w, r, constant.CtxHandleColor)
	if !ok {
		return
	}
	value, ok := decodeValue(w, r, constant.CtxHandleColor)
	if !ok {
		return
	}

	ctrl.SetForegroundColor(r.Context(), value)
	WriteJSON(w, newStateResponse(ctrl.Snapshot()), http.StatusOK)
}

// GenerateCode encodes the current source text
func (h *Handler) GenerateCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctrl, ok := controller(w, r, constant.CtxHandleGenerate)
	if !ok {
		return
	}

	err := ctrl.Generate(ctx)
	switch {
	case err == nil, errors.Is(err, generator.ErrSuperseded):
		WriteJSON(w, newStateResponse(ctrl.Snapshot()), http.StatusOK)
	case qrcode.IsEncodingError(err):
		WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		appLogger.CtxError(ctx, "Error generating QR code", appLogger.LoggerInfo{
			ContextFunction: constant.CtxHandleGenerate,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		WriteJSONError(w, "Failed to generate QR code", http.StatusInternalServerError)
	}
}

// DownloadCode sends the current QR code as a qrcode.png attachment
func (h *Handler) DownloadCode(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := controller(w, r, constant.CtxHandleDownload)
	if !ok {
		return
	}

	// Save errors happen after the headers are written and are logged by
	// the controller.
	triggered, _ := ctrl.Download(r.Context(), export.NewResponseSaver(w))
	if !triggered {
		WriteJSONError(w, constant.ErrNoArtifact, http.StatusNotFound)
	}
}

// CopyLink copies the source text and opens the notification window
func (h *Handler) CopyLink(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := controller(w, r, constant.CtxHandleCopy)
	if !ok {
		return
	}

	ctrl.CopyLink(r.Context())
	WriteJSON(w, newStateResponse(ctrl.Snapshot()), http.StatusOK)
}

// ToggleTheme flips the session theme
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := controller(w, r, constant.CtxHandleTheme)
	if !ok {
		return
	}

	ctrl.ToggleTheme(r.Context())
	WriteJSON(w, newStateResponse(ctrl.Snapshot()), http.StatusOK)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", constant.ContentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}
