package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gitbin/service/internal/metrics"
	"github.com/gitbin/service/internal/middleware"
	"github.com/gitbin/service/internal/response"
)

// Multipart form fields. The identifier field wins over the X-User-ID header.
const (
	fileField       = "file"
	identifierField = "user_id"
)

// parseSlack is headroom on top of the file size limit for the rest of the
// multipart payload (boundaries, part headers, the identifier field).
const parseSlack = 64 << 10

// Handler holds the HTTP handler for the upload endpoint.
type Handler struct {
	svc      *Service
	maxBytes int64
	allowed  map[string]bool // empty map admits every type
	metrics  *metrics.Metrics
}

// NewHandler creates a new upload Handler. A non-empty allowedTypes list
// turns on the MIME allowlist.
func NewHandler(svc *Service, maxBytes int64, allowedTypes []string, m *metrics.Metrics) *Handler {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &Handler{svc: svc, maxBytes: maxBytes, allowed: allowed, metrics: m}
}

type uploadResponse struct {
	response.Envelope
	URL        string `json:"url,omitempty"          example:"https://cdn.jsdelivr.net/gh/acme/uploads@files/team-a-/1756100000000-photo.png"`
	GithubURL  string `json:"github_url,omitempty"   example:"https://github.com/acme/uploads/blob/files/team-a-/1756100000000-photo.png"`
	PathInRepo string `json:"path_in_repo,omitempty" example:"1756100000000-photo.png"`
	Branch     string `json:"branch,omitempty"       example:"files/team-a-"`
	FileType   string `json:"file_type,omitempty"    example:"image/png"`
	FileSize   int64  `json:"file_size,omitempty"    example:"102400"`
}

// Upload godoc
//
//	@Summary		Upload a file
//	@Description	Commit the file to the backing GitHub repository on a per-identifier branch and return a CDN URL for it. The destination branch is forked from the base branch on first use.
//	@Tags			uploads
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"File to store"
//	@Param			user_id	formData	string	false	"Caller identifier; falls back to the X-User-ID header"
//	@Success		200		{object}	uploadResponse
//	@Failure		400		{object}	response.Envelope
//	@Failure		413		{object}	response.Envelope
//	@Failure		415		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/uploads [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.metrics.ObserveUpload(metrics.OutcomeValidation, 0)
		response.UnsupportedMediaType(w, "Content-Type must be multipart/form-data")
		return
	}

	// Reject oversized requests before touching the body when the client
	// declares a length; the byte-limited reader below covers the rest.
	if r.ContentLength > h.maxBytes+parseSlack {
		h.metrics.ObserveUpload(metrics.OutcomeValidation, r.ContentLength)
		response.PayloadTooLarge(w, h.sizeLimitMessage())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+parseSlack)
	if err := r.ParseMultipartForm(h.maxBytes + parseSlack); err != nil {
		h.metrics.ObserveUpload(metrics.OutcomeValidation, 0)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(w, h.sizeLimitMessage())
			return
		}
		response.BadRequest(w, "could not parse multipart form")
		return
	}

	file, header, err := r.FormFile(fileField)
	if err != nil {
		h.metrics.ObserveUpload(metrics.OutcomeValidation, 0)
		response.BadRequest(w, fmt.Sprintf("form field %q is required", fileField))
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		h.metrics.ObserveUpload(metrics.OutcomeValidation, header.Size)
		response.PayloadTooLarge(w, h.sizeLimitMessage())
		return
	}

	mimeType := detectMimeType(header.Header.Get("Content-Type"), header.Filename)
	if len(h.allowed) > 0 && !h.allowed[mimeType] {
		h.metrics.ObserveUpload(metrics.OutcomeValidation, header.Size)
		response.UnsupportedMediaType(w, fmt.Sprintf("file type %q is not allowed", mimeType))
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		h.metrics.ObserveUpload(metrics.OutcomeValidation, header.Size)
		response.BadRequest(w, "could not read uploaded file")
		return
	}

	identifier := r.FormValue(identifierField)
	if identifier == "" {
		identifier = middleware.UserID(r.Context())
	}

	result, err := h.svc.Upload(r.Context(), Request{
		OwnerIdentifier: identifier,
		FileName:        header.Filename,
		Content:         content,
		MimeType:        mimeType,
		Size:            int64(len(content)),
	})
	if err != nil {
		if errors.Is(err, ErrConfiguration) {
			log.Error().Err(err).Msg("upload failed: check GITHUB_BASE_BRANCH and repository access")
		} else {
			log.Error().Err(err).Msg("upload failed")
		}
		response.InternalError(w, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, uploadResponse{
		Envelope:   response.Envelope{Success: true, Message: "file uploaded successfully"},
		URL:        result.CDNURL,
		GithubURL:  result.HostingURL,
		PathInRepo: result.Path,
		Branch:     result.Branch,
		FileType:   result.MimeType,
		FileSize:   result.Size,
	})
}

func (h *Handler) sizeLimitMessage() string {
	return fmt.Sprintf("file exceeds the %d byte limit", h.maxBytes)
}

// detectMimeType resolves the stored content type: the part's own header
// first, the file extension when the header is absent or the generic
// application/octet-stream, and octet-stream as the final fallback.
func detectMimeType(headerType, filename string) string {
	mimeType := headerType
	if mimeType == "" || mimeType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(path.Ext(filename))); byExt != "" {
			mimeType = byExt
		}
	}
	if mimeType == "" {
		return "application/octet-stream"
	}
	if media, _, err := mime.ParseMediaType(mimeType); err == nil {
		return media
	}
	return strings.ToLower(mimeType)
}
