package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maxzihq/maxzi-analytics/internal/ingest"
	"github.com/maxzihq/maxzi-analytics/internal/models"
)

const maxUploadBytes = 32 << 20

// uploadResponse reports the outcome of a platform CSV upload.
type uploadResponse struct {
	Platform models.Platform `json:"platform"`
	Accepted bool            `json:"accepted"`
	Records  int             `json:"records"`
	Message  string          `json:"message"`
}

// handleUpload ingests one platform's CSV export. The platform's previous
// bucket is replaced wholesale; if another upload for the same platform
// lands while this one is parsing, the earlier-started one is discarded.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	platform, err := models.ParsePlatform(chi.URLParam(r, "platform"))
	if err != nil {
		respondProblem(w, http.StatusNotFound, "Unknown platform", err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		respondProblem(w, http.StatusBadRequest, "Missing file",
			`multipart form must carry a CSV under the "file" field`)
		return
	}
	defer file.Close()

	if !ingest.IsCSVPath(header.Filename) {
		respondProblem(w, http.StatusBadRequest, "Unsupported file type",
			fmt.Sprintf("%s is not a CSV file", header.Filename))
		return
	}

	gen := s.buffer.Generation(platform)
	rows, err := ingest.ReadRows(file)
	if err != nil {
		if errors.Is(err, ingest.ErrNotCSV) {
			respondProblem(w, http.StatusBadRequest, "Unsupported file type", err.Error())
			return
		}
		respondProblem(w, http.StatusBadRequest, "Unreadable CSV", err.Error())
		return
	}

	records := ingest.NewNormalizer().NormalizeAll(rows, platform)
	if !s.buffer.ReplaceIfCurrent(r.Context(), platform, gen, records) {
		respondJSON(w, http.StatusConflict, uploadResponse{
			Platform: platform,
			Accepted: false,
			Records:  len(records),
			Message:  "a newer upload for this platform superseded this one",
		})
		return
	}

	s.logger.Info().
		Str("platform", string(platform)).
		Str("file", header.Filename).
		Int("records", len(records)).
		Msg("platform data replaced")

	respondJSON(w, http.StatusOK, uploadResponse{
		Platform: platform,
		Accepted: true,
		Records:  len(records),
		Message:  fmt.Sprintf("replaced %s data with %d records", platform.DisplayName(), len(records)),
	})
}
