package transport

import (
	"fmt"
	"net/http"

	"github.com/UnendingLoop/UploadServer/internal/router"
)

// HandlerFunc is an endpoint bound to a resolved route match.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, m router.Match)

// Server glues the router to the handler registry. The route tables map
// patterns to handler identifiers; the registry maps identifiers to
// callables. A resolved identifier missing from the registry is a wiring
// bug and answers 500, an unresolved route answers 404.
type Server struct {
	router   *router.Router
	handlers map[string]HandlerFunc
}

func NewServer(h *ImageHandler) *Server {
	rt := router.New()
	rt.Handle(http.MethodGet, "/api/images/", "list_images")
	rt.Handle(http.MethodGet, "/", "root")
	rt.Handle(http.MethodPost, "/api/upload/", "upload_image")
	rt.Handle(http.MethodDelete, "/api/images/{filename}", "delete_image")

	return &Server{
		router: rt,
		handlers: map[string]HandlerFunc{
			"root":         h.Root,
			"list_images":  h.ListImages,
			"upload_image": h.Upload,
			"delete_image": h.DeleteImage,
		},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			sendJSONError(w, r, 500, fmt.Sprintf("Internal server error: %v", rec))
		}
	}()

	m, ok := s.router.Resolve(r.Method, r.URL.RequestURI())
	if !ok {
		sendJSONError(w, r, 404, "Not Found")
		return
	}

	fn, ok := s.handlers[m.Handler]
	if !ok {
		sendJSONError(w, r, 500, "Handler not implemented.")
		return
	}

	fn(w, r, m)
}
