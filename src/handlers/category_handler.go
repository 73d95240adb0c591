package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/middleware"
	"fintrack-server/src/models"
)

func CreateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)

		var req models.CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create category request body for user %s: %v", user.ID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		category := &models.Category{
			ID:     uuid.NewString(),
			UserID: user.ID,
			Name:   req.Name,
			Color:  req.Color,
			Icon:   req.Icon,
		}
		created, err := db.CreateCategory(r.Context(), pool, category)
		if err != nil {
			log.Printf("ERROR: Failed to create category for user %s: %v", user.ID, err)
			http.Error(w, "failed to create category", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Created category %s (%s) for user %s", created.ID, created.Name, user.ID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)

		categories, err := db.GetCategoriesForUser(r.Context(), pool, user.ID)
		if err != nil {
			log.Printf("ERROR: Failed to get categories for user %s: %v", user.ID, err)
			http.Error(w, "failed to get categories", http.StatusInternalServerError)
			return
		}
		if categories == nil {
			categories = []models.Category{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categories)
	}
}

func UpdateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		categoryID := chi.URLParam(r, "category_id")

		var req models.CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update category request body for user %s: %v", user.ID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateCategory(r.Context(), pool, user.ID, categoryID, req)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "category not found or is default", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to update category %s for user %s: %v", categoryID, user.ID, err)
			http.Error(w, "failed to update category", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Updated category %s for user %s", updated.ID, user.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		categoryID := chi.URLParam(r, "category_id")

		if err := db.DeleteCategory(r.Context(), pool, user.ID, categoryID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "category not found or is default", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to delete category %s for user %s: %v", categoryID, user.ID, err)
			http.Error(w, "failed to delete category", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Deleted category %s for user %s", categoryID, user.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "category deleted"})
	}
}
