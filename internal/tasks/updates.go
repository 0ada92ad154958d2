package tasks

import "fmt"

// ImportProgress is a progress event emitted by [Controller.ImportFavorites].
type ImportProgress struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	MovieID string // Movie being processed, if any
	Message string // Human-readable message for display
	Err     error  // Failure for this step, if any
}

// Operation phase enumeration
type Phase int

const (
	FetchFavorites Phase = iota
	AddFavorites
	Resync
)

func (p Phase) String() string {
	switch p {
	case FetchFavorites:
		return "fetch_favorites"
	case AddFavorites:
		return "add_favorites"
	case Resync:
		return "resync"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ImportProgress, update ImportProgress) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func fetchingFavoritesUpdate(username string) ImportProgress {
	return ImportProgress{
		Phase:   FetchFavorites,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching current favorites for %s", username),
	}
}

func favoriteAddedUpdate(step, total int, movieID string) ImportProgress {
	return ImportProgress{
		Phase:   AddFavorites,
		Step:    step,
		Total:   total,
		MovieID: movieID,
		Message: fmt.Sprintf("Added %s (%d/%d)", movieID, step, total),
	}
}

func favoriteFailedUpdate(step, total int, movieID string, err error) ImportProgress {
	return ImportProgress{
		Phase:   AddFavorites,
		Step:    step,
		Total:   total,
		MovieID: movieID,
		Message: fmt.Sprintf("Failed to add %s (%d/%d)", movieID, step, total),
		Err:     err,
	}
}

func resyncUpdate(count int) ImportProgress {
	return ImportProgress{
		Phase:   Resync,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Favorites now contain %d movies", count),
	}
}
