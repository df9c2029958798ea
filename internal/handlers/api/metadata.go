package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"linkdeck/internal/metadata"
	"linkdeck/internal/metrics"
)

// MetadataHandler extracts page metadata for the add-link flow.
type MetadataHandler struct {
	extractor *metadata.Extractor
}

// NewMetadataHandler creates a new metadata handler.
func NewMetadataHandler(extractor *metadata.Extractor) *MetadataHandler {
	return &MetadataHandler{extractor: extractor}
}

// Extract fetches a page and returns its title, description and favicon.
// The client calls this when the user pastes a URL, then submits the
// (possibly edited) result to the add-link endpoint.
func (h *MetadataHandler) Extract(c fiber.Ctx) error {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	meta, err := h.extractor.Extract(c.Context(), body.URL)
	if err != nil {
		if errors.Is(err, metadata.ErrInvalidURL) {
			metrics.RecordExtraction(metrics.OutcomeInvalidInput)
			return jsonError(c, fiber.StatusBadRequest, "Invalid URL")
		}

		var fetchErr *metadata.FetchError
		if errors.As(err, &fetchErr) {
			metrics.RecordExtraction(metrics.OutcomeFetchFailed)
			return jsonError(c, fiber.StatusBadGateway, "Failed to fetch metadata")
		}

		return err
	}

	metrics.RecordExtraction(metrics.OutcomeOK)
	return jsonSuccess(c, meta)
}
