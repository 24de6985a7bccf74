package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/yourorg/land-api/deck"
)

type DeckDeps struct {
	Renderer *deck.Client
	Maps     deck.MapImageProvider
}

func RegisterDeck(r chi.Router, d DeckDeps) {
	r.Post("/generate-deck", func(w http.ResponseWriter, req *http.Request) {
		var body deck.GenerateRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}

		payload, err := deck.BuildPayload(&body, d.Maps)
		if err != nil {
			if errors.Is(err, deck.ErrInvalidRequest) {
				render.Status(req, http.StatusBadRequest)
				render.JSON(w, req, map[string]any{"error": "missing_parameters", "detail": err.Error()})
				return
			}
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]any{"error": "payload_error", "detail": err.Error()})
			return
		}

		res, err := d.Renderer.Generate(req.Context(), payload)
		if err != nil {
			var se *deck.StatusError
			if errors.As(err, &se) {
				// relay the renderer's own status and body
				render.Status(req, se.Status)
				render.JSON(w, req, map[string]any{"error": "renderer_error", "status": se.Status, "detail": se.Body})
				return
			}
			render.Status(req, http.StatusBadGateway)
			render.JSON(w, req, map[string]any{"error": "renderer_unreachable", "detail": err.Error()})
			return
		}
		defer res.Body.Close()

		w.Header().Set("Content-Type", res.ContentType)
		if res.ContentDisposition != "" {
			w.Header().Set("Content-Disposition", res.ContentDisposition)
		}
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, res.Body); err != nil {
			// headers are gone; nothing left to do but log
			log.Printf("[WARN] deck stream relay interrupted: %v", err)
		}
	})
}
