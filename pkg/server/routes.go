package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// multipartOverheadBytes is the raw-body headroom granted on top of the file
// content limit, to account for multipart boundaries and part headers.
const multipartOverheadBytes int64 = 64 * 1024

var payloadMaxSizeErr *http.MaxBytesError

type errorResponse struct {
	Detail string `json:"detail"`
}

type statusCheckCreate struct {
	ClientName string `json:"client_name"`
}

func RegisterCompressionRoutes(api *Api, svc *CompressionService, sizeLimit int64) {
	api.mux.Route("/api", func(r chi.Router) {
		r.Get("/", rootHandler())
		r.Post("/compress", compressHandler(api, svc, sizeLimit))
		r.Get("/download/{file_id}", downloadHandler(api, svc))
		r.Post("/status", createStatusCheckHandler(api, svc))
		r.Get("/status", listStatusChecksHandler(api, svc))
	})
}

func rootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "SkyCodec API"})
	}
}

func compressHandler(api *Api, svc *CompressionService, sizeLimit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePart, header, err := r.FormFile("file")
		if err != nil {
			api.log.Warn("compress request with unreadable multipart body", "error", err)
			if errors.As(err, &payloadMaxSizeErr) {
				writeJSON(w, http.StatusRequestEntityTooLarge,
					errorResponse{Detail: "File size exceeds the allowed limit"})
				increaseErrorCount("request_entity_too_large", r.URL.Path)
				return
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid multipart body"})
			increaseErrorCount("error_reading_body", r.URL.Path)
			return
		}
		defer filePart.Close()

		content, err := io.ReadAll(filePart)
		if err != nil {
			api.log.Warn("error reading uploaded file", "error", err)
			if errors.As(err, &payloadMaxSizeErr) {
				writeJSON(w, http.StatusRequestEntityTooLarge,
					errorResponse{Detail: "File size exceeds the allowed limit"})
				increaseErrorCount("request_entity_too_large", r.URL.Path)
				return
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Error reading file content"})
			increaseErrorCount("error_reading_body", r.URL.Path)
			return
		}

		observeSize(r.URL.Path, float64(len(content)))

		if int64(len(content)) > sizeLimit {
			writeJSON(w, http.StatusRequestEntityTooLarge,
				errorResponse{Detail: fmt.Sprintf("File size exceeds the %d bytes limit", sizeLimit)})
			increaseErrorCount("request_entity_too_large", r.URL.Path)
			return
		}

		if len(content) == 0 {
			api.log.Warn("compress request without file content, ignoring")
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Empty file"})
			increaseErrorCount("request_without_body", r.URL.Path)
			return
		}

		result, err := svc.Compress(header.Filename, content)
		if err != nil {
			api.log.Error("compression failed", "filename", header.Filename, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Compression failed"})
			increaseErrorCount("compression_failed", r.URL.Path)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func downloadHandler(api *Api, svc *CompressionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileID := chi.URLParam(r, "file_id")

		record, data, err := svc.OpenArtifact(fileID)
		if err != nil {
			if errors.Is(err, ErrRecordNotFound) {
				writeJSON(w, http.StatusNotFound, errorResponse{Detail: "File not found"})
				return
			}
			api.log.Error("error serving artifact", "file_id", fileID, "error", err)
			writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Compressed file not found"})
			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", "compressed_"+record.OriginalName))
		w.WriteHeader(http.StatusOK)
		_, err = w.Write(data)
		if err != nil {
			api.log.Warn("error writing artifact to response", "file_id", fileID, "error", err)
		}
	}
}

func createStatusCheckHandler(api *Api, svc *CompressionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := statusCheckCreate{}
		err := json.NewDecoder(r.Body).Decode(&input)
		if err != nil || input.ClientName == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "client_name is mandatory"})
			return
		}

		check := svc.CreateStatusCheck(input.ClientName)
		writeJSON(w, http.StatusOK, check)
	}
}

func listStatusChecksHandler(api *Api, svc *CompressionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.ListStatusChecks())
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
