/*
Copyright 2022 Stefan Prodan

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/stefanprodan/gaia/pkg/errdefs"
	"github.com/stefanprodan/gaia/pkg/manager"
	"github.com/stefanprodan/gaia/pkg/record"
)

// resourceManager is the part of manager.ResourceManager served over HTTP.
type resourceManager[R record.Record, O client.Object] interface {
	Get(ctx context.Context, id int64) (R, error)
	Lookup(ctx context.Context, namespace, name string) (*manager.View[R, O], error)
	List(ctx context.Context) ([]R, error)
	Create(ctx context.Context, r R) (R, error)
	Update(ctx context.Context, id int64, patch manager.Patch[R]) (R, error)
	Delete(ctx context.Context, id int64) error
}

// resourceHandler serves the records of one kind, P is the update payload.
type resourceHandler[R record.Record, O client.Object, P manager.Patch[R]] struct {
	manager resourceManager[R, O]
	decode  func(r *http.Request) (R, error)
}

func resourceRouter[R record.Record, O client.Object, P manager.Patch[R]](h *resourceHandler[R, O, P]) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{namespace}/{name}", h.lookup)
	return r
}

// list handles GET /
func (h *resourceHandler[R, O, P]) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.manager.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if records == nil {
		records = []R{}
	}
	writeJSON(w, http.StatusOK, records)
}

// create handles POST /
func (h *resourceHandler[R, O, P]) create(w http.ResponseWriter, r *http.Request) {
	in, err := h.decode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.manager.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("%s/%d", strings.TrimSuffix(r.URL.Path, "/"), out.GetMeta().ID))
	writeJSON(w, http.StatusCreated, out)
}

// get handles GET /{id}
func (h *resourceHandler[R, O, P]) get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.manager.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// lookup handles GET /{namespace}/{name}
func (h *resourceHandler[R, O, P]) lookup(w http.ResponseWriter, r *http.Request) {
	view, err := h.manager.Lookup(r.Context(), chi.URLParam(r, "namespace"), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// update handles PUT /{id}
func (h *resourceHandler[R, O, P]) update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var patch P
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, r, errdefs.BadRequest("body", "invalid request body: %v", err))
		return
	}
	out, err := h.manager.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// delete handles DELETE /{id}
func (h *resourceHandler[R, O, P]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.manager.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errdefs.BadRequest("id", "invalid id %q", raw)
	}
	return id, nil
}

// decodeRecord returns a decoder of create requests carrying the record fields.
func decodeRecord[R record.Record](newRecord func() R) func(r *http.Request) (R, error) {
	return func(r *http.Request) (R, error) {
		out := newRecord()
		if err := json.NewDecoder(r.Body).Decode(out); err != nil {
			var zero R
			return zero, errdefs.BadRequest("body", "invalid request body: %v", err)
		}
		return out, nil
	}
}

// secretRequest carries the secret values, which are never stored.
type secretRequest struct {
	Namespace string            `json:"namespace"`
	Name      string            `json:"name"`
	Data      map[string]string `json:"data"`
}

func decodeSecret(r *http.Request) (*record.Secret, error) {
	var req secretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errdefs.BadRequest("body", "invalid request body: %v", err)
	}
	out := &record.Secret{}
	out.Namespace = req.Namespace
	out.Name = req.Name
	out.SetValues(req.Data)
	return out, nil
}
