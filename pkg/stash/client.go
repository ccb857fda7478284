package stash

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Sentinel errors for catalog API responses.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized: invalid API key")
)

// Client is a Stash GraphQL API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the API key sent on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "stash")
	}
}

// New creates a client for the Stash instance at baseURL
// (e.g. "http://localhost:9999").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// gql executes one GraphQL call and decodes the "data" object into out.
func (c *Client) gql(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("ApiKey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graphql request failed: %s", resp.Status)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", envelope.Errors[0].Message)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

// Version returns the catalog's version string. Used as a health check.
func (c *Client) Version(ctx context.Context) (string, error) {
	var data struct {
		Version struct {
			Version string `json:"version"`
		} `json:"version"`
	}
	if err := c.gql(ctx, `query { version { version } }`, nil, &data); err != nil {
		return "", err
	}
	return data.Version.Version, nil
}

const entityFields = `id name alias_list`

// FindPerformers looks up performers whose name or alias contains name.
func (c *Client) FindPerformers(ctx context.Context, name string) ([]Entity, error) {
	var data struct {
		FindPerformers struct {
			Performers []Entity `json:"performers"`
		} `json:"findPerformers"`
	}
	query := `query FindPerformers($name: String!) {
		findPerformers(performer_filter: { name: { value: $name, modifier: INCLUDES } }) {
			performers { ` + entityFields + ` }
		}
	}`
	if err := c.gql(ctx, query, map[string]any{"name": name}, &data); err != nil {
		return nil, fmt.Errorf("find performers: %w", err)
	}
	return data.FindPerformers.Performers, nil
}

// FindTags looks up tags whose name or alias contains name.
func (c *Client) FindTags(ctx context.Context, name string) ([]Entity, error) {
	var data struct {
		FindTags struct {
			Tags []Entity `json:"tags"`
		} `json:"findTags"`
	}
	query := `query FindTags($name: String!) {
		findTags(tag_filter: { name: { value: $name, modifier: INCLUDES } }) {
			tags { ` + entityFields + ` }
		}
	}`
	if err := c.gql(ctx, query, map[string]any{"name": name}, &data); err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	return data.FindTags.Tags, nil
}

// FindStudios looks up studios whose name or alias contains name.
func (c *Client) FindStudios(ctx context.Context, name string) ([]Entity, error) {
	var data struct {
		FindStudios struct {
			Studios []Entity `json:"studios"`
		} `json:"findStudios"`
	}
	query := `query FindStudios($name: String!) {
		findStudios(studio_filter: { name: { value: $name, modifier: INCLUDES } }) {
			studios { ` + entityFields + ` }
		}
	}`
	if err := c.gql(ctx, query, map[string]any{"name": name}, &data); err != nil {
		return nil, fmt.Errorf("find studios: %w", err)
	}
	return data.FindStudios.Studios, nil
}

// CreatePerformer creates a performer with the given name.
func (c *Client) CreatePerformer(ctx context.Context, name string) (*Entity, error) {
	var data struct {
		PerformerCreate Entity `json:"performerCreate"`
	}
	query := `mutation CreatePerformer($name: String!) {
		performerCreate(input: { name: $name }) { ` + entityFields + ` }
	}`
	if err := c.gql(ctx, query, map[string]any{"name": name}, &data); err != nil {
		return nil, fmt.Errorf("create performer: %w", err)
	}
	return &data.PerformerCreate, nil
}

// CreateTag creates a tag with the given name.
func (c *Client) CreateTag(ctx context.Context, name string) (*Entity, error) {
	var data struct {
		TagCreate Entity `json:"tagCreate"`
	}
	query := `mutation CreateTag($name: String!) {
		tagCreate(input: { name: $name }) { ` + entityFields + ` }
	}`
	if err := c.gql(ctx, query, map[string]any{"name": name}, &data); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return &data.TagCreate, nil
}

// CreateStudio creates a studio with the given name.
func (c *Client) CreateStudio(ctx context.Context, name string) (*Entity, error) {
	var data struct {
		StudioCreate Entity `json:"studioCreate"`
	}
	query := `mutation CreateStudio($name: String!) {
		studioCreate(input: { name: $name }) { ` + entityFields + ` }
	}`
	if err := c.gql(ctx, query, map[string]any{"name": name}, &data); err != nil {
		return nil, fmt.Errorf("create studio: %w", err)
	}
	return &data.StudioCreate, nil
}

// CreateScene creates a new scene record.
func (c *Client) CreateScene(ctx context.Context, input SceneCreateInput) (*Scene, error) {
	var data struct {
		SceneCreate Scene `json:"sceneCreate"`
	}
	query := `mutation CreateScene($input: SceneCreateInput!) {
		sceneCreate(input: $input) { id title }
	}`
	if err := c.gql(ctx, query, map[string]any{"input": input}, &data); err != nil {
		return nil, fmt.Errorf("create scene: %w", err)
	}
	return &data.SceneCreate, nil
}

// UpdateScene updates an existing scene record.
func (c *Client) UpdateScene(ctx context.Context, input SceneUpdateInput) (*Scene, error) {
	var data struct {
		SceneUpdate Scene `json:"sceneUpdate"`
	}
	query := `mutation UpdateScene($input: SceneUpdateInput!) {
		sceneUpdate(input: $input) { id title }
	}`
	if err := c.gql(ctx, query, map[string]any{"input": input}, &data); err != nil {
		return nil, fmt.Errorf("update scene: %w", err)
	}
	return &data.SceneUpdate, nil
}

// CreateImage creates a new image or gallery record.
func (c *Client) CreateImage(ctx context.Context, input ImageCreateInput) (*Image, error) {
	var data struct {
		ImageCreate Image `json:"imageCreate"`
	}
	query := `mutation CreateImage($input: ImageCreateInput!) {
		imageCreate(input: $input) { id title }
	}`
	if err := c.gql(ctx, query, map[string]any{"input": input}, &data); err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	return &data.ImageCreate, nil
}

// UpdateImage updates an existing image record.
func (c *Client) UpdateImage(ctx context.Context, input ImageUpdateInput) (*Image, error) {
	var data struct {
		ImageUpdate Image `json:"imageUpdate"`
	}
	query := `mutation UpdateImage($input: ImageUpdateInput!) {
		imageUpdate(input: $input) { id title }
	}`
	if err := c.gql(ctx, query, map[string]any{"input": input}, &data); err != nil {
		return nil, fmt.Errorf("update image: %w", err)
	}
	return &data.ImageUpdate, nil
}

// FindScenesByPath returns scenes whose file path contains path.
func (c *Client) FindScenesByPath(ctx context.Context, path string) ([]Scene, error) {
	var data struct {
		FindScenes struct {
			Scenes []Scene `json:"scenes"`
		} `json:"findScenes"`
	}
	query := `query FindScenesByPath($path: String!) {
		findScenes(scene_filter: { path: { value: $path, modifier: INCLUDES } }) {
			scenes { id title files { id path } }
		}
	}`
	if err := c.gql(ctx, query, map[string]any{"path": path}, &data); err != nil {
		return nil, fmt.Errorf("find scenes by path: %w", err)
	}
	return data.FindScenes.Scenes, nil
}

// FindImagesByPath returns images whose file path contains path.
func (c *Client) FindImagesByPath(ctx context.Context, path string) ([]Image, error) {
	var data struct {
		FindImages struct {
			Images []Image `json:"images"`
		} `json:"findImages"`
	}
	query := `query FindImagesByPath($path: String!) {
		findImages(image_filter: { path: { value: $path, modifier: INCLUDES } }) {
			images { id title files { id path } }
		}
	}`
	if err := c.gql(ctx, query, map[string]any{"path": path}, &data); err != nil {
		return nil, fmt.Errorf("find images by path: %w", err)
	}
	return data.FindImages.Images, nil
}

// ListScrapers returns scrapers installed on the catalog that support
// URL-based scene scraping.
func (c *Client) ListScrapers(ctx context.Context) ([]Scraper, error) {
	var data struct {
		ListScrapers []Scraper `json:"listScrapers"`
	}
	query := `query ListScrapers {
		listScrapers(types: [SCENE]) { id name }
	}`
	if err := c.gql(ctx, query, nil, &data); err != nil {
		return nil, fmt.Errorf("list scrapers: %w", err)
	}
	return data.ListScrapers, nil
}

// ScrapeSceneURL asks the catalog's scraper subsystem to scrape url.
// Returns ErrNotFound when no installed scraper matched the URL.
func (c *Client) ScrapeSceneURL(ctx context.Context, url string) (*ScrapedScene, error) {
	var data struct {
		ScrapeSceneURL *ScrapedScene `json:"scrapeSceneURL"`
	}
	query := `query ScrapeSceneURL($url: String!) {
		scrapeSceneURL(url: $url) {
			title details date url image
			studio { stored_id name }
			performers { stored_id name }
			tags { stored_id name }
		}
	}`
	if err := c.gql(ctx, query, map[string]any{"url": url}, &data); err != nil {
		return nil, fmt.Errorf("scrape scene url: %w", err)
	}
	if data.ScrapeSceneURL == nil {
		return nil, ErrNotFound
	}
	return data.ScrapeSceneURL, nil
}

// RunPluginTask starts a named task of an installed plugin and returns the
// job id tracking it.
func (c *Client) RunPluginTask(ctx context.Context, pluginID, taskName string, args map[string]string) (string, error) {
	argList := make([]map[string]any, 0, len(args))
	for k, v := range args {
		argList = append(argList, map[string]any{"key": k, "value": map[string]any{"str": v}})
	}
	var data struct {
		RunPluginTask string `json:"runPluginTask"`
	}
	query := `mutation RunPluginTask($plugin_id: ID!, $task_name: String!, $args: [PluginArgInput!]) {
		runPluginTask(plugin_id: $plugin_id, task_name: $task_name, args: $args)
	}`
	vars := map[string]any{"plugin_id": pluginID, "task_name": taskName, "args": argList}
	if err := c.gql(ctx, query, vars, &data); err != nil {
		return "", fmt.Errorf("run plugin task: %w", err)
	}
	return data.RunPluginTask, nil
}

// PluginResult fetches a task result file published by a plugin under its
// HTTP results directory and decodes it into out. Plugins use this to hand
// back structured output, since runPluginTask itself returns only a job id.
func (c *Client) PluginResult(ctx context.Context, pluginID, resultID string, out any) error {
	url := fmt.Sprintf("%s/plugin/%s/assets/results/%s.json", c.baseURL, pluginID, resultID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("ApiKey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch plugin result: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch plugin result: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode plugin result: %w", err)
	}
	return nil
}

// FindJob returns the state of a server-side job.
// Returns ErrNotFound when the job id is no longer tracked.
func (c *Client) FindJob(ctx context.Context, id string) (*Job, error) {
	var data struct {
		FindJob *Job `json:"findJob"`
	}
	query := `query FindJob($id: ID!) {
		findJob(input: { id: $id }) { id status progress error }
	}`
	if err := c.gql(ctx, query, map[string]any{"id": id}, &data); err != nil {
		return nil, fmt.Errorf("find job: %w", err)
	}
	if data.FindJob == nil {
		return nil, ErrNotFound
	}
	return data.FindJob, nil
}

// StopJob asks the server to stop a running job.
func (c *Client) StopJob(ctx context.Context, id string) error {
	query := `mutation StopJob($id: ID!) { stopJob(job_id: $id) }`
	if err := c.gql(ctx, query, map[string]any{"id": id}, nil); err != nil {
		return fmt.Errorf("stop job: %w", err)
	}
	return nil
}

// MetadataScan triggers a library scan of the given paths and returns the
// job id. An empty paths slice scans all configured libraries.
func (c *Client) MetadataScan(ctx context.Context, paths []string) (string, error) {
	var data struct {
		MetadataScan string `json:"metadataScan"`
	}
	query := `mutation MetadataScan($paths: [String!]) {
		metadataScan(input: { paths: $paths })
	}`
	if err := c.gql(ctx, query, map[string]any{"paths": paths}, &data); err != nil {
		return "", fmt.Errorf("metadata scan: %w", err)
	}
	return data.MetadataScan, nil
}

// MetadataIdentify triggers the catalog's identify task for the given
// scene ids and returns the job id.
func (c *Client) MetadataIdentify(ctx context.Context, sceneIDs []string) (string, error) {
	var data struct {
		MetadataIdentify string `json:"metadataIdentify"`
	}
	query := `mutation MetadataIdentify($ids: [ID!]) {
		metadataIdentify(input: { sceneIDs: $ids })
	}`
	if err := c.gql(ctx, query, map[string]any{"ids": sceneIDs}, &data); err != nil {
		return "", fmt.Errorf("metadata identify: %w", err)
	}
	return data.MetadataIdentify, nil
}

// LibraryPaths returns the library root directories configured on the
// catalog side.
func (c *Client) LibraryPaths(ctx context.Context) ([]string, error) {
	var data struct {
		Configuration struct {
			General struct {
				Stashes []struct {
					Path string `json:"path"`
				} `json:"stashes"`
			} `json:"general"`
		} `json:"configuration"`
	}
	query := `query { configuration { general { stashes { path } } } }`
	if err := c.gql(ctx, query, nil, &data); err != nil {
		return nil, fmt.Errorf("library paths: %w", err)
	}
	paths := make([]string, 0, len(data.Configuration.General.Stashes))
	for _, s := range data.Configuration.General.Stashes {
		paths = append(paths, s.Path)
	}
	if c.log != nil {
		c.log.Debug("library paths fetched", "count", len(paths))
	}
	return paths, nil
}
