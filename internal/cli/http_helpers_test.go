package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
)

func doRequest(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, body))
	return w
}
