package tasks

import (
	"errors"
	"fmt"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/shared"
)

// Fixed success notifications.
const (
	RegisteredNotice     = "user registered successfully!"
	ProfileUpdatedNotice = "Your profile was updated successfully!"
	LoggedOutNotice      = "You successfully logged out!"
	AccountDeletedNotice = "Your account has been deleted."
	NotLoggedInNotice    = "You are not logged in. Run \"myflix auth login\" first."
)

func AddedNotice(title string) string {
	return fmt.Sprintf("%s has been added to your favorites!", title)
}

func RemovedNotice(title string) string {
	return fmt.Sprintf("%s has been removed from your favorites!", title)
}

func LoginNotice(username string) string {
	return fmt.Sprintf("%s logged in successfully!", username)
}

// Notice returns the notification text for err.
//
// With detailed off, every API failure yields [services.GenericMessage] regardless of status.
// A missing local session is reported as such in both modes since no request was made.
func Notice(err error, detailed bool) string {
	if err == nil {
		return ""
	}

	var apiErr *services.APIError
	isAPI := errors.As(err, &apiErr)

	if !isAPI && errors.Is(err, shared.ErrNotAuthenticated) {
		return NotLoggedInNotice
	}
	if !detailed {
		return services.GenericMessage
	}

	switch services.KindOf(err) {
	case services.KindUnauthorized:
		return "Your session was rejected; please log in again."
	case services.KindNotFound:
		return "We couldn't find what you were looking for."
	case services.KindValidation:
		return "Please check your input: " + validationDetail(err, apiErr)
	case services.KindDecode:
		return "The server sent a response we couldn't read; please try again later."
	default:
		return services.GenericMessage
	}
}

func validationDetail(err error, apiErr *services.APIError) string {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if apiErr != nil && apiErr.Err != nil {
		return apiErr.Err.Error()
	}
	return err.Error()
}
