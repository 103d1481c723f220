package locale

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/respond"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listLocales)
	router.Get("/{code}", handler.getLocale)
	return router
}

func (handler *Handler) listLocales(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, Supported())
}

func (handler *Handler) getLocale(writer http.ResponseWriter, request *http.Request) {
	l, ok := Lookup(chi.URLParam(request, "code"))
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Locale"))
		return
	}

	respond.OK(writer, struct {
		Locale
		Voice VoiceSelection `json:"voice"`
	}{Locale: l, Voice: SelectVoice(l.Code)})
}
