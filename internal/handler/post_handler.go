package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/slashrage/jalapeno-business/internal/models"
	"github.com/slashrage/jalapeno-business/internal/repository"
	"github.com/slashrage/jalapeno-business/internal/service"
	"github.com/slashrage/jalapeno-business/internal/storage"
)

type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type ListResponse struct {
	Success    bool               `json:"success"`
	Data       []*models.Post     `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// public listing with filters and pagination
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := repository.ListFilter{
		Status:   query.Get("status"),
		Category: query.Get("category"),
		Tag:      query.Get("tag"),
		Search:   query.Get("search"),
		Page:     page,
		PageSize: limit,
	}

	posts, total, err := h.QueryService.List(r.Context(), filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	response := ListResponse{
		Success: true,
		Data:    posts,
		Pagination: PaginationResponse{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: (total + int64(limit) - 1) / int64(limit),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// public read by slug, counts a view
func (h *Handlers) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := h.QueryService.GetBySlug(r.Context(), slug)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, post)
}

// read by id for editing, no view counting
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.QueryService.GetByID(r.Context(), postID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, post)
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.QueryService.Categories(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, categories)
}

func (h *Handlers) GetTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.QueryService.Tags(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, tags)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	authorID, _ := r.Context().Value("userID").(string)

	var req service.CreatePostRequest
	var uploads service.MediaUploads

	if isMultipart(r) {
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			WriteError(w, "ошибка при обработке формы", http.StatusBadRequest)
			return
		}

		req = service.CreatePostRequest{
			Title:         r.FormValue("title"),
			Content:       r.FormValue("content"),
			Excerpt:       r.FormValue("excerpt"),
			Status:        r.FormValue("status"),
			Category:      r.FormValue("category"),
			Tags:          parseTags(r.Form["tags"]),
			AudioDuration: parseFloat(r.FormValue("audioDuration")),
		}

		var ok bool
		uploads, ok = h.collectUploads(w, r)
		if !ok {
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "неверный формат запроса", http.StatusBadRequest)
			return
		}
	}

	req.AuthorID = authorID

	post, err := h.PostService.CreatePost(r.Context(), req, uploads)
	if err != nil {
		discardUploads(uploads)
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, post)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	var req service.UpdatePostRequest
	var uploads service.MediaUploads

	if isMultipart(r) {
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			WriteError(w, "ошибка при обработке формы", http.StatusBadRequest)
			return
		}

		// partial update: only the fields that were sent
		req.Title = formValuePtr(r, "title")
		req.Content = formValuePtr(r, "content")
		req.Excerpt = formValuePtr(r, "excerpt")
		req.Status = formValuePtr(r, "status")
		req.Category = formValuePtr(r, "category")
		if _, present := r.Form["tags"]; present {
			req.Tags = parseTags(r.Form["tags"])
		}
		if v := formValuePtr(r, "audioDuration"); v != nil {
			duration := parseFloat(*v)
			req.AudioDuration = &duration
		}

		var ok bool
		uploads, ok = h.collectUploads(w, r)
		if !ok {
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "неверный формат запроса", http.StatusBadRequest)
			return
		}
	}

	post, err := h.PostService.UpdatePost(r.Context(), postID, req, uploads)
	if err != nil {
		discardUploads(uploads)
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, post)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	if err := h.PostService.DeletePost(r.Context(), postID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{})
}

// collectUploads takes the thumbnail/video/audio slot files: checks the
// type and size, spools them to disk. On rejection the response is written
func (h *Handlers) collectUploads(w http.ResponseWriter, r *http.Request) (service.MediaUploads, bool) {
	uploads := service.MediaUploads{}

	for _, slot := range []string{service.SlotThumbnail, service.SlotVideo, service.SlotAudio} {
		files := r.MultipartForm.File[slot]
		if len(files) == 0 {
			continue
		}
		header := files[0]

		if header.Size > h.Cfg.MaxUploadSize {
			discardUploads(uploads)
			WriteError(w, "файл слишком большой (макс. "+strconv.FormatInt(h.Cfg.MaxUploadSize/(1024*1024), 10)+" MB)",
				http.StatusBadRequest)
			return nil, false
		}

		mimeType := header.Header.Get("Content-Type")
		if !storage.AllowedType(slot, mimeType) {
			discardUploads(uploads)
			WriteError(w, "неподдерживаемый тип файла: "+mimeType, http.StatusBadRequest)
			return nil, false
		}

		file, err := header.Open()
		if err != nil {
			discardUploads(uploads)
			WriteError(w, "не удалось получить файл", http.StatusBadRequest)
			return nil, false
		}

		stored, err := storage.Spool(h.Cfg.UploadsDir, slot, file, header)
		file.Close()
		if err != nil {
			discardUploads(uploads)
			WriteError(w, "не удалось сохранить файл", http.StatusInternalServerError)
			return nil, false
		}

		uploads[slot] = stored
	}

	return uploads, true
}

// discardUploads removes the spooled files when the request failed
func discardUploads(uploads service.MediaUploads) {
	for _, f := range uploads {
		_ = os.Remove(f.Path)
	}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func formValuePtr(r *http.Request, key string) *string {
	if values, present := r.Form[key]; present && len(values) > 0 {
		return &values[0]
	}
	return nil
}

func parseTags(values []string) []string {
	var tags []string
	for _, value := range values {
		for _, tag := range strings.Split(value, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}

func parseFloat(value string) float64 {
	f, _ := strconv.ParseFloat(value, 64)
	return f
}
