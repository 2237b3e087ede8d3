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
	"encoding/json"
	"errors"
	"net/http"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/stefanprodan/gaia/pkg/errdefs"
)

type errorResponse struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps validation errors to 400, missing records to 404 and
// cluster errors to their API status code.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var badRequest *errdefs.BadRequestError
	if errors.As(err, &badRequest) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Field: badRequest.Field, Message: badRequest.Message})
		return
	}
	if errdefs.IsNotFound(err) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
		return
	}

	code := http.StatusInternalServerError
	var status apierrors.APIStatus
	if errors.As(err, &status) && status.Status().Code != 0 {
		code = int(status.Status().Code)
	}
	if code >= http.StatusInternalServerError {
		log.FromContext(r.Context()).Error(err, "request failed", "method", r.Method, "path", r.URL.Path)
	}
	writeJSON(w, code, errorResponse{Message: err.Error()})
}
