package tasks

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
	"golang.org/x/time/rate"
)

// ImportOptions configures [Controller.ImportFavorites].
type ImportOptions struct {
	NumWorkers int     // Concurrent workers (default: 4, max: 10)
	RateLimit  float64 // Requests per second (default: 5)
}

// ImportItemResult is the outcome for one movie id.
type ImportItemResult struct {
	MovieID string
	Error   error
}

// ImportResult summarizes an import.
type ImportResult struct {
	Requested []string           // Unique ids requested
	Skipped   []string           // Ids already in the favorites
	Results   []ImportItemResult // One entry per id sent to the server
	Added     int
	Failed    int
	Favorites []string // Favorites after the final resync
}

// ImportFavorites adds every id in ids to the current user's favorites.
//
// Ids already present are skipped. Requests are spread over a worker pool and throttled by a
// token bucket limiter. A failed id does not stop the others. After all workers finish the user
// is re-fetched so Favorites reflects the server.
func (c *Controller) ImportFavorites(ctx context.Context, ids []string, opts ImportOptions, progress chan<- ImportProgress) (*ImportResult, error) {
	s, err := c.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	result := &ImportResult{Requested: dedupe(ids)}

	sendProgress(progress, fetchingFavoritesUpdate(s.Username))
	currentIDs, err := c.api.FavoriteIDs(ctx, s.Username)
	if err != nil {
		return nil, err
	}
	existing := models.NewFavoriteSet(currentIDs...)

	var pending []string
	for _, id := range result.Requested {
		if existing.Has(id) {
			result.Skipped = append(result.Skipped, id)
			continue
		}
		pending = append(pending, id)
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan string, len(pending))
	results := make(chan ImportItemResult, len(pending))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go c.importWorker(ctx, &wg, limiter, s.Username, jobs, results)
	}

	for _, id := range pending {
		jobs <- id
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)
		if res.Error == nil {
			result.Added++
			sendProgress(progress, favoriteAddedUpdate(completed, len(pending), res.MovieID))
		} else {
			result.Failed++
			sendProgress(progress, favoriteFailedUpdate(completed, len(pending), res.MovieID, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	user, err := c.api.User(ctx, s.Username)
	if err != nil {
		return result, fmt.Errorf("import finished but resync failed: %w", err)
	}
	result.Favorites = user.Favorites().IDs()
	sendProgress(progress, resyncUpdate(len(result.Favorites)))

	c.logger.Info("imported favorites", "added", result.Added, "failed", result.Failed, "skipped", len(result.Skipped))
	return result, nil
}

// importWorker adds ids from jobs until the channel closes or ctx is done.
func (c *Controller) importWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	username string,
	jobs <-chan string,
	results chan<- ImportItemResult,
) {
	defer wg.Done()

	for id := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			results <- ImportItemResult{MovieID: id, Error: err}
			continue
		}

		_, err := c.api.AddFavorite(ctx, username, id)
		results <- ImportItemResult{MovieID: id, Error: err}
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// ParseImportIDs reads movie ids from a JSON array (of ids or movie records) or from plain
// text with one id per line. Blank lines and lines starting with "#" are ignored.
func ParseImportIDs(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: import file is empty", shared.ErrInvalidInput)
	}

	if trimmed[0] == '[' {
		if err := shared.ValidateJSON(trimmed); err != nil {
			return nil, err
		}

		var ids []string
		if err := json.Unmarshal(trimmed, &ids); err == nil {
			return dedupe(ids), nil
		}

		var movies []models.Movie
		if err := json.Unmarshal(trimmed, &movies); err != nil {
			return nil, fmt.Errorf("%w: expected an array of ids or movies: %v", shared.ErrInvalidInput, err)
		}
		ids = make([]string, 0, len(movies))
		for _, m := range movies {
			ids = append(ids, m.ID)
		}
		return dedupe(ids), nil
	}

	var ids []string
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return dedupe(ids), nil
}
