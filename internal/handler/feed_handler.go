package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"feedblog/internal/apperr"
	"feedblog/internal/models"
	"feedblog/internal/service"
	"feedblog/internal/validation"
)

type PostsResponse struct {
	Message    string        `json:"message"`
	Posts      []models.Post `json:"posts"`
	TotalItems int           `json:"totalItems"`
}

type PostResponse struct {
	Message string       `json:"message"`
	Post    *models.Post `json:"post"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	posts, total, err := h.Feed.ListPosts(r.Context(), page)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PostsResponse{
		Message:    "Posts fetched.",
		Posts:      posts,
		TotalItems: total,
	})
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	post, err := h.Feed.GetPost(r.Context(), postID)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PostResponse{Message: "Post fetched.", Post: post})
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := identityID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	in, image, cleanup, err := h.parsePostForm(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	defer cleanup()

	post, err := h.Feed.CreatePost(r.Context(), userID, in, image)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, PostResponse{Message: "Post created.", Post: post})
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := identityID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	postID := mux.Vars(r)["postId"]

	in, image, cleanup, err := h.parsePostForm(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	defer cleanup()

	post, err := h.Feed.UpdatePost(r.Context(), userID, postID, in, image)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PostResponse{Message: "Post updated.", Post: post})
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, err := identityID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	postID := mux.Vars(r)["postId"]

	if err := h.Feed.DeletePost(r.Context(), userID, postID); err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Post deleted."})
}

// UploadImage stores an image on its own and returns the URL, for clients
// that send post mutations over GraphQL and cannot attach files there.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	if _, err := identityID(r); err != nil {
		WriteError(w, err)
		return
	}

	_, image, cleanup, err := h.parsePostForm(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	defer cleanup()

	imageURL, err := h.Feed.StoreImage(r.Context(), image)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":  "Image stored.",
		"filePath": imageURL,
	})
}

// parsePostForm reads the multipart post payload. The image part is
// optional here; whether its absence is acceptable is the service's call.
// The returned cleanup closes the uploaded file and is always non-nil.
func (h *Handlers) parsePostForm(r *http.Request) (validation.PostInput, *service.ImageUpload, func(), error) {
	noop := func() {}

	r.Body = http.MaxBytesReader(nil, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		return validation.PostInput{}, nil, noop, apperr.Validation("Invalid multipart form.", nil)
	}

	in := validation.PostInput{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return in, nil, noop, nil
		}
		return validation.PostInput{}, nil, noop, apperr.Validation("Could not read the image part.", nil)
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		file.Close()
		return validation.PostInput{}, nil, noop, apperr.Validation("Unsupported image type.", []apperr.FieldError{
			{Field: "image", Message: "Allowed types: JPEG, PNG, GIF, WebP."},
		})
	}

	image := &service.ImageUpload{
		FileName: header.Filename,
		File:     file,
		Size:     header.Size,
	}

	return in, image, func() { file.Close() }, nil
}
