package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/templui/deskboard/internal/ctxkeys"
	"github.com/templui/deskboard/internal/model"
	"github.com/templui/deskboard/internal/respond"
	"github.com/templui/deskboard/internal/service"
	"github.com/templui/deskboard/internal/validation"
)

// multipartOverhead is the room left for multipart framing on top of the file itself.
const multipartOverhead = 1 << 20

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

type uploadResponse struct {
	Message string      `json:"message"`
	File    *model.File `json:"file"`
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, validation.MaxUploadSize+multipartOverhead)
	err := r.ParseMultipartForm(validation.MaxUploadSize + multipartOverhead)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(w, http.StatusBadRequest, validation.ErrFileTooLarge.Error())
			return
		}
		respond.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			slog.Error("failed to close file", "error", closeErr)
		}
	}()

	record, err := h.fileService.Upload(r.Context(), user.ID, service.Upload{
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         file,
	})
	if err != nil {
		var inputErr *service.InvalidInputError
		switch {
		case errors.As(err, &inputErr):
			respond.Error(w, http.StatusBadRequest, inputErr.Error())
		case errors.Is(err, service.ErrStorageFailed):
			respond.Error(w, http.StatusInternalServerError, "File storage failed. Please try again.")
		default:
			respond.Error(w, http.StatusInternalServerError, "Failed to upload file")
		}
		return
	}

	respond.JSON(w, http.StatusOK, uploadResponse{
		Message: "File uploaded successfully",
		File:    record,
	})
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	files, err := h.fileService.Files(user.ID)
	if err != nil {
		slog.Error("failed to list files", "error", err, "user_id", user.ID)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.JSON(w, http.StatusOK, files)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	fileID := strings.TrimSpace(r.URL.Query().Get("id"))
	if fileID == "" {
		respond.Error(w, http.StatusBadRequest, "File ID required")
		return
	}

	err := h.fileService.Delete(r.Context(), user.ID, fileID)
	if errors.Is(err, service.ErrFileNotFound) {
		respond.Error(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete file", "error", err, "user_id", user.ID, "file_id", fileID)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.Message(w, "File deleted successfully")
}

// Content serves a file's bytes, or redirects to a presigned URL for remote backends.
func (h *FileHandler) Content(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	content, err := h.fileService.Content(r.Context(), user.ID, r.PathValue("id"))
	if errors.Is(err, service.ErrFileNotFound) {
		respond.Error(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		slog.Error("failed to open file", "error", err, "user_id", user.ID)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if content.RedirectURL != "" {
		http.Redirect(w, r, content.RedirectURL, http.StatusFound)
		return
	}
	defer func() { _ = content.Body.Close() }()

	w.Header().Set("Content-Type", content.File.Type)
	w.Header().Set("Content-Length", strconv.FormatInt(content.File.Size, 10))
	w.Header().Set("Content-Disposition", `inline; filename="`+strings.ReplaceAll(content.File.OriginalName, `"`, "")+`"`)
	_, err = io.Copy(w, content.Body)
	if err != nil {
		slog.Warn("failed to stream file", "error", err, "file_id", content.File.ID)
	}
}

// Object serves /uploads/{userId}/{name} for the local backend. Only the
// owner may read; everyone else gets 404.
func (h *FileHandler) Object(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	name := r.PathValue("name")

	if r.PathValue("userId") != user.ID || name == "" || strings.Contains(name, "..") {
		respond.Error(w, http.StatusNotFound, "File not found")
		return
	}

	body, err := h.fileService.Object(r.Context(), user.ID, name)
	if errors.Is(err, service.ErrFileNotFound) {
		respond.Error(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		slog.Error("failed to open object", "error", err, "user_id", user.ID)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	defer func() { _ = body.Close() }()

	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, err = io.Copy(w, body)
	if err != nil {
		slog.Warn("failed to stream object", "error", err, "name", name)
	}
}
