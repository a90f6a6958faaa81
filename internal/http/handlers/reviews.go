package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acrsolucoedig-spec/cellparts/internal/clients"
	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

const (
	msgListReviews  = "Erro ao carregar avaliações"
	msgCreateReview = "Erro ao criar avaliação"
	msgUpdateReview = "Erro ao atualizar avaliação"
	msgDeleteReview = "Erro ao excluir avaliação"
	msgMarkHelpful  = "Erro ao marcar avaliação como útil"
	msgReviewStats  = "Erro ao carregar estatísticas de avaliações"
)

type ReviewHandler struct{ c *clients.ReviewClient }

func NewReviewHandler(c *clients.ReviewClient) *ReviewHandler { return &ReviewHandler{c: c} }

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := model.ParseReviewFilters(r.URL.Query())
	if err != nil {
		writeClientError(w, r, err, msgListReviews)
		return
	}
	page, err := h.c.List(r.Context(), f)
	if err != nil {
		writeClientError(w, r, err, msgListReviews)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stats, err := h.c.Stats(r.Context(), q.Get("productId"), q.Get("userId"))
	if err != nil {
		writeClientError(w, r, err, msgReviewStats)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateReviewRequest
	if !readRequest(w, r, &req) {
		return
	}
	review, err := h.c.Create(r.Context(), req)
	if err != nil {
		writeClientError(w, r, err, msgCreateReview)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateReviewRequest
	if !readRequest(w, r, &req) {
		return
	}
	review, err := h.c.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeClientError(w, r, err, msgUpdateReview)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.c.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeClientError(w, r, err, msgDeleteReview)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	review, err := h.c.MarkHelpful(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeClientError(w, r, err, msgMarkHelpful)
		return
	}
	writeJSON(w, http.StatusOK, review)
}
