package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Version information - will be injected at build time
var (
	Version   = "dev"     // Will be set via ldflags
	GitCommit = "unknown" // Will be set via ldflags
	BuildDate = "unknown" // Will be set via ldflags

	// ReleaseFeedURL points at a "latest release" document in the GitHub API format.
	// Update checks are disabled when it is empty.
	ReleaseFeedURL = ""
)

// ErrUpdatesDisabled is returned by CheckForUpdates when no release feed is configured
var ErrUpdatesDisabled = errors.New("update checks are disabled in this build")

// UpdateCheckTimeout bounds the release feed request
const UpdateCheckTimeout = 10 * time.Second

// VersionInfo represents version information
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

// UpdateInfo represents update information from the release feed
type UpdateInfo struct {
	Available      bool   `json:"available"`
	LatestVersion  string `json:"latestVersion"`
	CurrentVersion string `json:"currentVersion"`
	ReleaseURL     string `json:"releaseUrl"`
	ReleaseNotes   string `json:"releaseNotes"`
}

// GitHubRelease represents GitHub release API response
type GitHubRelease struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Body       string `json:"body"`
	HTMLURL    string `json:"html_url"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

// GetVersionInfo returns current application version information
func (a *App) GetVersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// CheckForUpdates asks the release feed for a newer version. The frontend opens
// ReleaseURL through the opener when the user wants to download it.
func (a *App) CheckForUpdates() (*UpdateInfo, error) {
	if ReleaseFeedURL == "" {
		return nil, ErrUpdatesDisabled
	}
	client := &http.Client{Timeout: UpdateCheckTimeout}
	return checkForUpdates(client, ReleaseFeedURL, Version)
}

func checkForUpdates(client *http.Client, feedURL, current string) (*UpdateInfo, error) {
	resp, err := client.Get(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release feed returned status %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release info: %w", err)
	}

	// Skip draft and prerelease versions
	if release.Draft || release.Prerelease {
		return &UpdateInfo{
			Available:      false,
			CurrentVersion: current,
			LatestVersion:  current,
		}, nil
	}

	updateInfo := &UpdateInfo{
		CurrentVersion: current,
		LatestVersion:  release.TagName,
		ReleaseNotes:   release.Body,
		Available:      isNewerVersion(current, release.TagName),
	}
	if updateInfo.Available {
		updateInfo.ReleaseURL = release.HTMLURL
	}
	return updateInfo, nil
}

// isNewerVersion compares two version strings using semantic versioning
func isNewerVersion(current, latest string) bool {
	// Handle dev version - always consider updates available
	if strings.HasPrefix(current, "dev") {
		return !strings.HasPrefix(latest, "dev")
	}

	// Parse versions - remove 'v' prefix if present
	currentVer, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		// If current version is not valid semver, consider update available
		return true
	}

	latestVer, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		// If latest version is not valid semver, no update available
		return false
	}

	return latestVer.GreaterThan(currentVer)
}
