package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// ReleasesURL is the latest-release endpoint of the project
	ReleasesURL  = "https://api.github.com/repos/studiowebux/voidrunner/releases/latest"
	checkTimeout = 5 * time.Second
)

// Release is the subset of a GitHub release the checker reads
type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// Update is the outcome of a check
type Update struct {
	Available bool
	Latest    string
	URL       string
}

// Checker queries a releases endpoint
type Checker struct {
	url    string
	client *http.Client
}

// NewChecker creates a checker for url; an empty url uses ReleasesURL
func NewChecker(url string) *Checker {
	if url == "" {
		url = ReleasesURL
	}
	return &Checker{
		url:    url,
		client: &http.Client{Timeout: checkTimeout},
	}
}

// Check reports whether a release newer than current exists
func (c *Checker) Check(ctx context.Context, current string) (Update, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Update{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "voidrunner/"+current)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Update{}, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Update{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return Update{}, fmt.Errorf("failed to decode response: %w", err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	return Update{
		Available: latest != "" && IsNewer(latest, strings.TrimPrefix(current, "v")),
		Latest:    latest,
		URL:       release.HTMLURL,
	}, nil
}

// IsNewer compares dotted numeric versions and reports latest > current.
// Pre-release and build suffixes ("-dev", "+build") are ignored.
func IsNewer(latest, current string) bool {
	a, b := parse(latest), parse(current)
	for len(a) < len(b) {
		a = append(a, 0)
	}
	for len(b) < len(a) {
		b = append(b, 0)
	}

	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

func parse(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	nums := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}
