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

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-logr/logr"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	"github.com/stefanprodan/gaia/pkg/api"
	"github.com/stefanprodan/gaia/pkg/kinds"
	"github.com/stefanprodan/gaia/pkg/manager"
)

func newTestServer(t *testing.T, funcs *interceptor.Funcs) *httptest.Server {
	builder := fake.NewClientBuilder().WithScheme(kinds.NewScheme())
	if funcs != nil {
		builder = builder.WithInterceptorFuncs(*funcs)
	}
	registry := kinds.NewRegistry(builder.Build(), kinds.NewMemoryStores(), manager.Options{
		DefaultNamespace: "default",
		Now:              func() time.Time { return time.Unix(1714557600, 0) },
	})

	metrics := prometheus.NewRegistry()
	if err := manager.RegisterMetrics(metrics); err != nil {
		t.Fatalf("register metrics: %v", err)
	}

	ts := httptest.NewServer(api.NewServer(registry, metrics, logr.Discard()))
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

type errorBody struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func TestConfigMapLifecycle(t *testing.T) {
	g := NewWithT(t)
	ts := newTestServer(t, nil)
	base := ts.URL + "/api/v1/configmaps"

	code, body := do(t, http.MethodPost, base, `{"name":"app-config","data":{"LOG_LEVEL":"info"}}`)
	g.Expect(code).To(Equal(http.StatusCreated), string(body))
	created := decode[map[string]any](t, body)
	g.Expect(created["id"]).To(BeEquivalentTo(1))
	g.Expect(created["namespace"]).To(Equal("default"))
	g.Expect(created["created_at"]).To(BeEquivalentTo(1714557600))
	g.Expect(created["deleted_at"]).To(BeNil())

	code, body = do(t, http.MethodPost, base, `{"name":"app-config","data":{"LOG_LEVEL":"debug"}}`)
	g.Expect(code).To(Equal(http.StatusBadRequest))
	g.Expect(decode[errorBody](t, body).Field).To(Equal("name"))

	code, body = do(t, http.MethodPut, base+"/1", `{"data":{"LOG_LEVEL":"debug"}}`)
	g.Expect(code).To(Equal(http.StatusOK), string(body))

	code, body = do(t, http.MethodGet, base+"/default/app-config", "")
	g.Expect(code).To(Equal(http.StatusOK), string(body))
	view := decode[map[string]map[string]any](t, body)
	g.Expect(view["data"]["data"]).To(Equal(map[string]any{"LOG_LEVEL": "debug"}))

	code, body = do(t, http.MethodGet, base, "")
	g.Expect(code).To(Equal(http.StatusOK))
	g.Expect(decode[[]map[string]any](t, body)).To(HaveLen(1))

	code, _ = do(t, http.MethodDelete, base+"/1", "")
	g.Expect(code).To(Equal(http.StatusNoContent))
	code, _ = do(t, http.MethodDelete, base+"/1", "")
	g.Expect(code).To(Equal(http.StatusNoContent))

	code, body = do(t, http.MethodGet, base+"/1", "")
	g.Expect(code).To(Equal(http.StatusOK))
	g.Expect(decode[map[string]any](t, body)["deleted_at"]).NotTo(BeNil())

	code, _ = do(t, http.MethodGet, base+"/default/app-config", "")
	g.Expect(code).To(Equal(http.StatusNotFound))

	code, body = do(t, http.MethodGet, base, "")
	g.Expect(code).To(Equal(http.StatusOK))
	g.Expect(string(body)).To(Equal("[]\n"))
}

func TestRequestErrors(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
		field  string
	}{
		{name: "missing id", method: http.MethodGet, path: "/api/v1/secrets/42", code: http.StatusNotFound},
		{name: "invalid id", method: http.MethodGet, path: "/api/v1/secrets/abc", code: http.StatusBadRequest, field: "id"},
		{name: "invalid body", method: http.MethodPost, path: "/api/v1/configmaps", body: `{"name":`, code: http.StatusBadRequest, field: "body"},
		{name: "missing data", method: http.MethodPost, path: "/api/v1/secrets", body: `{"name":"db"}`, code: http.StatusBadRequest, field: "data"},
		{
			name:   "nfs without path",
			method: http.MethodPost,
			path:   "/api/v1/persistentvolumes",
			body:   `{"name":"nfs","capacity":"1Gi","access_mode":"ReadWriteMany","type":"network-file-share","configs":{"server":"10.0.0.5"}}`,
			code:   http.StatusBadRequest,
			field:  "path",
		},
		{
			name:   "stateful set without containers",
			method: http.MethodPost,
			path:   "/api/v1/statefulsets",
			body:   `{"name":"web","containers":[]}`,
			code:   http.StatusBadRequest,
			field:  "containers",
		},
		{name: "unversioned path", method: http.MethodGet, path: "/configmaps", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			code, body := do(t, tt.method, ts.URL+tt.path, tt.body)
			g.Expect(code).To(Equal(tt.code), string(body))
			if tt.field != "" {
				g.Expect(decode[errorBody](t, body).Field).To(Equal(tt.field))
			}
		})
	}
}

func TestSecretValuesAreNotReturned(t *testing.T) {
	g := NewWithT(t)
	ts := newTestServer(t, nil)

	code, body := do(t, http.MethodPost, ts.URL+"/api/v1/secrets", `{"name":"db","data":{"user":"admin","password":"s3cr3t"}}`)
	g.Expect(code).To(Equal(http.StatusCreated), string(body))
	g.Expect(string(body)).NotTo(ContainSubstring("s3cr3t"))

	code, body = do(t, http.MethodGet, ts.URL+"/api/v1/secrets/1", "")
	g.Expect(code).To(Equal(http.StatusOK))
	g.Expect(decode[map[string]any](t, body)["keys"]).To(Equal([]any{"password", "user"}))
}

func TestPersistentVolumeLookupIncludesObject(t *testing.T) {
	g := NewWithT(t)
	ts := newTestServer(t, nil)

	code, body := do(t, http.MethodPost, ts.URL+"/api/v1/persistentvolumes",
		`{"name":"local","capacity":"5Gi","access_mode":"ReadWriteOnce","type":"host-path","configs":{"path":"/mnt/local"}}`)
	g.Expect(code).To(Equal(http.StatusCreated), string(body))

	code, body = do(t, http.MethodGet, ts.URL+"/api/v1/persistentvolumes/default/local", "")
	g.Expect(code).To(Equal(http.StatusOK), string(body))
	view := decode[map[string]map[string]any](t, body)
	g.Expect(view["data"]["capacity"]).To(Equal("5Gi"))
	g.Expect(view).To(HaveKey("object"))
	g.Expect(view["object"]["metadata"]).To(HaveKeyWithValue("name", "local"))
}

func TestControlPlaneErrorStatus(t *testing.T) {
	g := NewWithT(t)
	ts := newTestServer(t, &interceptor.Funcs{
		Create: func(ctx context.Context, c client.WithWatch, obj client.Object, opts ...client.CreateOption) error {
			return apierrors.NewAlreadyExists(schema.GroupResource{Resource: "configmaps"}, obj.GetName())
		},
	})

	code, body := do(t, http.MethodPost, ts.URL+"/api/v1/configmaps", `{"name":"app","data":{"a":"1"}}`)
	g.Expect(code).To(Equal(http.StatusConflict), string(body))

	code, body = do(t, http.MethodGet, ts.URL+"/api/v1/configmaps", "")
	g.Expect(code).To(Equal(http.StatusOK))
	g.Expect(string(body)).To(Equal("[]\n"))
}

func TestHealthAndMetrics(t *testing.T) {
	g := NewWithT(t)
	ts := newTestServer(t, nil)

	code, body := do(t, http.MethodGet, ts.URL+"/healthz", "")
	g.Expect(code).To(Equal(http.StatusOK))
	g.Expect(string(body)).To(ContainSubstring(`"ok"`))

	code, _ = do(t, http.MethodPost, ts.URL+"/api/v1/configmaps", `{"name":"app","data":{"a":"1"}}`)
	g.Expect(code).To(Equal(http.StatusCreated))

	code, body = do(t, http.MethodGet, ts.URL+"/metrics", "")
	g.Expect(code).To(Equal(http.StatusOK))
	g.Expect(string(body)).To(ContainSubstring(`gaia_operations_total{kind="ConfigMap",operation="create",result="success"}`))
}
