// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Result is one ranked web-search hit fed into the drafting prompt.
type Result struct {
	// Title is the page title as returned by the search API.
	Title string `json:"title" yaml:"title"`

	// URL is the landing page address.
	URL string `json:"url" yaml:"url"`

	// Snippet is the short excerpt shown with the hit.
	Snippet string `json:"snippet" yaml:"snippet"`
}
