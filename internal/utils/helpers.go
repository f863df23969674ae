package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/agentic-procure/rfp-service/internal/models"
)

// SendErrorResponse sends an error in JSON format.
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// SendError sends a service error, preserving its status code and
// machine-readable code when it is an ErrorResponse.
func SendError(w http.ResponseWriter, err error, fallbackMessage string) {
	if errorResponse, ok := err.(*models.ErrorResponse); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(errorResponse.StatusCode)
		if encodeErr := json.NewEncoder(w).Encode(errorResponse); encodeErr != nil {
			log.Println(encodeErr)
		}
		return
	}
	SendErrorResponse(w, http.StatusInternalServerError, fallbackMessage)
}

// ParseLimitOffset parses limit and offset query parameters.
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > 50 {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [0:50]")
		}
	} else {
		limit = 20
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// ContainsRFPStatus checks whether a status transition is allowed for RFPs.
func ContainsRFPStatus(validTransitions []models.RFPStatus, newStatus models.RFPStatus) bool {
	for _, validStatus := range validTransitions {
		if validStatus == newStatus {
			return true
		}
	}
	return false
}

// ContainsArtifactStatus checks whether a status transition is allowed for artifacts.
func ContainsArtifactStatus(validTransitions []models.ArtifactStatus, newStatus models.ArtifactStatus) bool {
	for _, validStatus := range validTransitions {
		if validStatus == newStatus {
			return true
		}
	}
	return false
}
