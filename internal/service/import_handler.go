package service

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/mfcastro/financas/backend/internal/auth"
	"github.com/mfcastro/financas/backend/internal/importer"
)

// maxWorkbookBytes bounds the multipart upload; the workbook is read fully
// into memory before parsing.
const maxWorkbookBytes = 16 << 20

// handleImport accepts a multipart workbook upload, archives it when a
// bucket is configured and runs the import pipeline. A failed batch aborts
// the run but leaves earlier batches committed; the response reports how
// many records made it in either case.
func (s *FinanceService) handleImport(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxWorkbookBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("multipart field 'file' is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if s.archive != nil {
		object, err := s.archive.Store(r.Context(), claims.UID, header.Filename, data)
		if err != nil {
			// Archival is best-effort: the import itself still runs.
			s.log.Warn().Err(err).Str("file", header.Filename).Msg("failed to archive workbook")
		} else {
			s.log.Info().Str("object", object).Msg("workbook archived")
		}
	}

	imported, err := s.importer.Import(r.Context(), claims.UID, bytes.NewReader(data))
	if errors.Is(err, importer.ErrNoRecords) {
		writeJSON(w, http.StatusOK, map[string]any{
			"imported": 0,
			"message":  "no transactions found",
		})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int("imported", imported).Msg("import aborted")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"imported": imported,
			"error":    err.Error(),
		})
		return
	}

	s.log.Info().Int("imported", imported).Str("user", claims.UID).Msg("workbook imported")
	writeJSON(w, http.StatusOK, map[string]any{"imported": imported})
}
