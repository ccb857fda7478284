// Package stash provides a client for the Stash GraphQL API.
package stash

// Entity is a named catalog entity (performer, tag, or studio).
type Entity struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"alias_list,omitempty"`
}

// Scene is a video record in the catalog.
type Scene struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Files []File `json:"files,omitempty"`
}

// Image is an image or gallery record in the catalog.
type Image struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Files []File `json:"files,omitempty"`
}

// File is a media file attached to a record.
type File struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// JobStatus is the lifecycle state of a server-side job.
type JobStatus string

const (
	JobStatusReady     JobStatus = "READY"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusFinished  JobStatus = "FINISHED"
	JobStatusStopping  JobStatus = "STOPPING"
	JobStatusCancelled JobStatus = "CANCELLED"
	JobStatusFailed    JobStatus = "FAILED"
)

// Terminal reports whether the status is a final state.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusFinished, JobStatusCancelled, JobStatusFailed:
		return true
	}
	return false
}

// Job is a long-running server-side operation tracked by id.
type Job struct {
	ID       string    `json:"id"`
	Status   JobStatus `json:"status"`
	Progress *float64  `json:"progress"`
	Error    string    `json:"error"`
}

// SceneCreateInput is the payload for creating a scene record.
type SceneCreateInput struct {
	Title        string   `json:"title,omitempty"`
	Details      string   `json:"details,omitempty"`
	Date         string   `json:"date,omitempty"`
	URLs         []string `json:"urls,omitempty"`
	StudioID     string   `json:"studio_id,omitempty"`
	PerformerIDs []string `json:"performer_ids,omitempty"`
	TagIDs       []string `json:"tag_ids,omitempty"`
	CoverImage   string   `json:"cover_image,omitempty"`
}

// SceneUpdateInput is the payload for updating an existing scene.
type SceneUpdateInput struct {
	ID           string   `json:"id"`
	Title        string   `json:"title,omitempty"`
	Details      string   `json:"details,omitempty"`
	Date         string   `json:"date,omitempty"`
	URLs         []string `json:"urls,omitempty"`
	StudioID     string   `json:"studio_id,omitempty"`
	PerformerIDs []string `json:"performer_ids,omitempty"`
	TagIDs       []string `json:"tag_ids,omitempty"`
	CoverImage   string   `json:"cover_image,omitempty"`
}

// ImageCreateInput is the payload for creating an image or gallery record.
type ImageCreateInput struct {
	Title        string   `json:"title,omitempty"`
	Details      string   `json:"details,omitempty"`
	Date         string   `json:"date,omitempty"`
	URLs         []string `json:"urls,omitempty"`
	StudioID     string   `json:"studio_id,omitempty"`
	PerformerIDs []string `json:"performer_ids,omitempty"`
	TagIDs       []string `json:"tag_ids,omitempty"`
}

// ImageUpdateInput is the payload for updating an image record.
type ImageUpdateInput struct {
	ID           string   `json:"id"`
	Title        string   `json:"title,omitempty"`
	Details      string   `json:"details,omitempty"`
	Date         string   `json:"date,omitempty"`
	URLs         []string `json:"urls,omitempty"`
	StudioID     string   `json:"studio_id,omitempty"`
	PerformerIDs []string `json:"performer_ids,omitempty"`
	TagIDs       []string `json:"tag_ids,omitempty"`
}

// ScrapedScene is metadata returned by the catalog's own scraper surface.
type ScrapedScene struct {
	Title      string          `json:"title"`
	Details    string          `json:"details"`
	Date       string          `json:"date"`
	URL        string          `json:"url"`
	Image      string          `json:"image"`
	Studio     *ScrapedNamed   `json:"studio"`
	Performers []*ScrapedNamed `json:"performers"`
	Tags       []*ScrapedNamed `json:"tags"`
}

// ScrapedNamed is a named reference inside a scraper result. StoredID is
// set when the catalog already knows the entity.
type ScrapedNamed struct {
	StoredID string `json:"stored_id"`
	Name     string `json:"name"`
}

// Scraper describes one scraper installed on the catalog side.
type Scraper struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// graphQLRequest is the wire form of a GraphQL call.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLError is a single error entry in a GraphQL response.
type graphQLError struct {
	Message string `json:"message"`
}
