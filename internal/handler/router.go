package handler

import (
	"net/http"

	"pdf-edit-automation/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(pdfHandler *PDFHandler, crewHandler *CrewHandler, history *History, logger domain.Logger) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestLogger(logger))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "pdf-edit-automation"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/pdf/extract", pdfHandler.Extract).Methods(http.MethodPost)
	api.HandleFunc("/pdf/modify", pdfHandler.Modify).Methods(http.MethodPost)
	api.HandleFunc("/pdf/outputs/{id}", pdfHandler.GetOutput).Methods(http.MethodGet)

	api.HandleFunc("/runs", history.List).Methods(http.MethodGet)

	// Crew routes are optional
	if crewHandler != nil {
		api.HandleFunc("/crew/run", crewHandler.Run).Methods(http.MethodPost)
	}

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			RequestIDHeader,
		},
		ExposedHeaders: []string{
			RequestIDHeader,
			"Content-Disposition",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
