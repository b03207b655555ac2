package handlers

import (
	"net/http"
	"net/url"
)

// redirect answers HTMX requests with HX-Redirect so the browser navigates
// instead of swapping the target page into the current one.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func redirectWithSuccess(w http.ResponseWriter, r *http.Request, path string, message string) {
	redirect(w, r, withQuery(path, "success", message))
}

func withQuery(path, key, value string) string {
	if value == "" {
		return path
	}
	parsed, err := url.Parse(path)
	if err != nil {
		return path + "?" + key + "=" + url.QueryEscape(value)
	}
	q := parsed.Query()
	q.Set(key, value)
	parsed.RawQuery = q.Encode()
	return parsed.String()
}
