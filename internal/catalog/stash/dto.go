package stash

import "encoding/json"

// graphqlRequest is the wire format for POST /graphql
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlError is a single error entry in a GraphQL error payload
type graphqlError struct {
	Message string `json:"message"`
}

// graphqlResponse wraps the data/errors envelope
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors,omitempty"`
}

// findFilter is the FindFilterType input object
type findFilter struct {
	Q         string `json:"q"`
	Page      int    `json:"page"`
	PerPage   int    `json:"per_page"`
	Sort      string `json:"sort"`
	Direction string `json:"direction"`
}

// named holds entities referenced only by name (studio, performers, tags)
type named struct {
	Name string `json:"name"`
}

// scenePaths carries the resolved media URLs for a scene
type scenePaths struct {
	Stream     string `json:"stream"`
	Screenshot string `json:"screenshot"`
}

// Scene is one findScenes result record
type Scene struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Date       string     `json:"date"`
	Rating100  int        `json:"rating100"`
	PlayCount  int        `json:"play_count"`
	Paths      scenePaths `json:"paths"`
	Studio     *named     `json:"studio"`
	Performers []named    `json:"performers"`
	Tags       []named    `json:"tags"`
}

// findScenesData is the payload under data.findScenes
type findScenesData struct {
	FindScenes struct {
		Count  int     `json:"count"`
		Scenes []Scene `json:"scenes"`
	} `json:"findScenes"`
}

// imagePaths carries the resolved media URLs for an image
type imagePaths struct {
	Image     string `json:"image"`
	Thumbnail string `json:"thumbnail"`
}

// Image is one findImages result record
type Image struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Date       string     `json:"date"`
	Rating100  int        `json:"rating100"`
	OCounter   int        `json:"o_counter"`
	Paths      imagePaths `json:"paths"`
	Studio     *named     `json:"studio"`
	Performers []named    `json:"performers"`
	Tags       []named    `json:"tags"`
}

// findImagesData is the payload under data.findImages
type findImagesData struct {
	FindImages struct {
		Count  int     `json:"count"`
		Images []Image `json:"images"`
	} `json:"findImages"`
}
