package services

import (
	"fmt"
	"strings"

	"github.com/cupstage/cupstage/models"
)

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.StatusDraft:        {models.StatusRegistration, models.StatusCanceled},
		models.StatusRegistration: {models.StatusActive, models.StatusCanceled},
		models.StatusActive:       {models.StatusCompleted, models.StatusCanceled},
		models.StatusCompleted:    {},
		models.StatusCanceled:     {},
	}
	for _, allowed := range allowedTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

func isValidTournamentStatus(status models.TournamentStatus) bool {
	switch status {
	case models.StatusDraft, models.StatusRegistration, models.StatusActive,
		models.StatusCompleted, models.StatusCanceled:
		return true
	}
	return false
}

// normalizeOptionalText trims and nils out empty optional text fields so the
// store never keeps whitespace-only values.
func normalizeOptionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func matchRecordsToValues(slice []*models.MatchRecord) []models.MatchRecord {
	if slice == nil {
		return []models.MatchRecord{}
	}
	result := make([]models.MatchRecord, len(slice))
	for i, ptr := range slice {
		if ptr != nil {
			result[i] = *ptr
		}
	}
	return result
}

func participantsToValues(slice []*models.Participant) []models.Participant {
	if slice == nil {
		return []models.Participant{}
	}
	result := make([]models.Participant, len(slice))
	for i, ptr := range slice {
		if ptr != nil {
			result[i] = *ptr
		}
	}
	return result
}

// GetExtensionFromContentType maps an uploaded image's content type to a
// file extension for the storage key.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("could not determine file extension from content type: %q", contentType)
	}
}
