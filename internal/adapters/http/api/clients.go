package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
)

// ClientsHandler handles dataset upload and client lookups.
type ClientsHandler struct {
	deps           Dependencies
	maxUploadBytes int64
}

// NewClientsHandler creates a new clients handler.
func NewClientsHandler(deps Dependencies, maxUploadBytes int64) *ClientsHandler {
	return &ClientsHandler{deps: deps, maxUploadBytes: maxUploadBytes}
}

type clientsResponse struct {
	Clients []int64 `json:"clients"`
	Count   int     `json:"count"`
}

// HandleUpload handles POST /clients. The body is either a multipart form
// with a "file" part or a raw text/csv document.
func (h *ClientsHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "api.upload_clients"
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	body, closeBody, err := h.dataset(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFailure(w, WrapKind(op, ErrTooLarge, err))
			return
		}
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	defer closeBody()

	report, err := h.deps.Ingest(r.Context(), body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFailure(w, WrapKind(op, ErrTooLarge, err))
			return
		}
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ClientsHandler) dataset(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		// Raw CSV body.
		return r.Body, func() {}, nil
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, nil, err
	}
	return file, func() { _ = file.Close() }, nil
}

// HandleList handles GET /clients.
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ids := h.deps.Clients(r.Context())
	writeJSON(w, http.StatusOK, clientsResponse{Clients: ids, Count: len(ids)})
}

// HandleProfile handles GET /clients/{id}.
func (h *ClientsHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.client_profile"
	id, err := clientID(op, r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	profile, err := h.deps.Profile(r.Context(), id)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
