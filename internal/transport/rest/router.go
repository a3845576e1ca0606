package rest

import "net/http"

// NewRouter registers all REST routes on a fresh ServeMux. Auth, logging and
// the rest of the middleware stack wrap the returned mux in app.Run.
func NewRouter(health *HealthHandler, words *WordsHandler, books *BooksHandler, simplify *SimplifyHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health/live", health.Live)
	mux.HandleFunc("GET /health/ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("GET /api/v1/books/{bookID}/versions/{version}/cues", books.CueWords)
	mux.HandleFunc("GET /api/v1/books/{bookID}/checklist", books.Checklist)
	mux.HandleFunc("POST /api/v1/books/{bookID}/views", books.RecordView)

	mux.HandleFunc("POST /api/v1/simplify", simplify.Simplify)

	mux.HandleFunc("POST /api/v1/words/lookup", words.Lookup)
	mux.HandleFunc("POST /api/v1/words/rating", words.Rate)
	mux.HandleFunc("POST /api/v1/words/bank/remove", words.RemoveFromBank)

	return mux
}
