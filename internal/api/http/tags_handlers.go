package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/bank"
)

type tagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	ParentID    string `json:"parent_id"`
}

func CreateTagHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		t, err := bank.NewTag(req.Name, req.Description, req.Color, req.ParentID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created, err := store.CreateTag(r.Context(), t)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func GetTagHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := store.GetTag(r.Context(), chi.URLParam(r, "tagID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func ListTagsHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := store.ListTags(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tags": tags})
	}
}

func UpdateTagHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "tagID")
		existing, err := store.GetTag(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		var req tagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Name != "" {
			existing.Name = req.Name
		}
		if req.Description != "" {
			existing.Description = req.Description
		}
		if req.Color != "" {
			existing.Color = req.Color
		}
		if req.ParentID != "" {
			existing.ParentID = req.ParentID
		}
		if err := existing.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.UpdateTag(r.Context(), existing); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, existing)
	}
}

func DeleteTagHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteTag(r.Context(), chi.URLParam(r, "tagID")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ChildTagsHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		children, err := store.ChildTags(r.Context(), chi.URLParam(r, "tagID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tags": children})
	}
}
