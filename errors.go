package nordfeed

import "errors"

var (
	// ErrMissingTitleElement means an article page has neither an h2 nor an
	// h3 heading.
	ErrMissingTitleElement = errors.New("article has no title heading")

	// ErrMissingContentContainer means a layout container the scraper relies
	// on is absent, which usually means the site markup changed.
	ErrMissingContentContainer = errors.New("expected content container not found")

	// ErrUnresolvableRegion means a region slug is not one the site knows.
	ErrUnresolvableRegion = errors.New("unknown region")

	// ErrFetchFailure wraps network and parse failures of a page load.
	ErrFetchFailure = errors.New("failed to fetch page")
)
