package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// crudService is the shape shared by the entity services.
type crudService[T, In, Patch any] interface {
	List(ctx context.Context) ([]*T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id string, patch Patch) (*T, error)
	Delete(ctx context.Context, id string) error
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// resource mounts list/create on path and get/update/delete on path/{id}.
func resource[T, In, Patch any](r chi.Router, path, kind string, s *Server, svc crudService[T, In, Patch]) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			items, err := svc.List(r.Context())
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, items)
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var in In
			if err := decodeJSON(r, &in); err != nil {
				s.writeError(w, r, err)
				return
			}
			item, err := svc.Create(r.Context(), in)
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, item)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			item, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, item)
		})

		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			var patch Patch
			if err := decodeJSON(r, &patch); err != nil {
				s.writeError(w, r, err)
				return
			}
			item, err := svc.Update(r.Context(), chi.URLParam(r, "id"), patch)
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, item)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
				s.writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, deleteResponse{Success: true, Message: kind + " deleted successfully"})
		})
	})
}
