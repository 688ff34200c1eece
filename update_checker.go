package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultRepository = "hindsight-sh/hindsight"

// ReleaseInfo describes a release published on GitHub
type ReleaseInfo struct {
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Prerelease  bool   `json:"prerelease"`
	PublishedAt string `json:"published_at"`
}

// UpdateChecker checks GitHub for newer releases
type UpdateChecker struct {
	client     *resty.Client
	repository string
}

// NewUpdateChecker creates an update checker for the given GitHub repository
func NewUpdateChecker(repository string) *UpdateChecker {
	if repository == "" {
		repository = defaultRepository
	}

	client := resty.New()
	client.SetTimeout(10 * time.Second)
	client.SetHeader("Accept", "application/vnd.github.v3+json")

	return &UpdateChecker{
		client:     client,
		repository: repository,
	}
}

// LatestRelease fetches the most recent release from GitHub
func (uc *UpdateChecker) LatestRelease() (*ReleaseInfo, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", uc.repository)

	var release ReleaseInfo
	resp, err := uc.client.R().SetResult(&release).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("unexpected status %d from GitHub", resp.StatusCode())
	}

	return &release, nil
}

// CheckForUpdate compares the current version against the latest release.
// Returns the latest version and whether it is newer.
func (uc *UpdateChecker) CheckForUpdate(currentVersion string) (string, bool, error) {
	release, err := uc.LatestRelease()
	if err != nil {
		return "", false, err
	}

	latest := release.TagName
	return latest, isNewerVersion(currentVersion, latest), nil
}

// isNewerVersion reports whether latest is a newer semantic version than
// current. Tags may carry a leading "v" and a prerelease suffix.
func isNewerVersion(current, latest string) bool {
	currentParts := parseVersionParts(current)
	latestParts := parseVersionParts(latest)

	for i := 0; i < 3; i++ {
		if latestParts[i] > currentParts[i] {
			return true
		}
		if latestParts[i] < currentParts[i] {
			return false
		}
	}
	return false
}

// parseVersionParts extracts the numeric major/minor/patch components
func parseVersionParts(version string) [3]int {
	version = strings.TrimPrefix(version, "v")
	if idx := strings.IndexAny(version, "-+"); idx >= 0 {
		version = version[:idx]
	}

	var parts [3]int
	for i, piece := range strings.SplitN(version, ".", 3) {
		if n, err := strconv.Atoi(piece); err == nil {
			parts[i] = n
		}
	}
	return parts
}
