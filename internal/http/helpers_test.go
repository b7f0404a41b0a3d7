package http_test

import (
	"io"
	"net/http"
)

func httptestHandler(capture func(method, path, header string)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capture(r.Method, r.URL.Path, r.Header.Get("X-IG-API-KEY"))
		w.WriteHeader(http.StatusOK)
	})
}

func jsonBodyHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
}

func statusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("server error"))
	})
}

func bodyCapturingHandler(dst *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		*dst = string(data)
		w.WriteHeader(http.StatusOK)
	})
}
