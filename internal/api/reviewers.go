package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/colonyops/lintlens/internal/core/linter"
	"github.com/colonyops/lintlens/internal/core/version"
)

// GetVersionFile fetches a version with the content of path. An empty path
// lets the server pick its default file.
func (c *Client) GetVersionFile(ctx context.Context, addonID, versionID int, path string) (version.Version, error) {
	var query url.Values
	if path != "" {
		query = url.Values{"file": {path}}
	}

	var ext version.External
	endpoint := fmt.Sprintf("reviewers/addon/%d/versions/%d", addonID, versionID)
	if err := c.callAPI(ctx, http.MethodGet, endpoint, query, &ext); err != nil {
		return version.Version{}, fmt.Errorf("get version file: %w", err)
	}

	return version.FromExternal(ext), nil
}

// GetAnalyzerReport fetches and parses the report at location.
func (c *Client) GetAnalyzerReport(ctx context.Context, location string) (linter.Report, error) {
	if location == "" {
		return linter.Report{}, fmt.Errorf("get analyzer report: empty location")
	}

	u, err := c.resolve(location)
	if err != nil {
		return linter.Report{}, fmt.Errorf("get analyzer report: %w", err)
	}

	body, err := c.do(ctx, http.MethodGet, u)
	if err != nil {
		return linter.Report{}, fmt.Errorf("get analyzer report: %w", err)
	}
	defer c.close(body)

	report, err := linter.ParseReport(body)
	if err != nil {
		return linter.Report{}, fmt.Errorf("get analyzer report: %w", err)
	}
	return report, nil
}

// ValidationLocation returns the analyzer report location the API serves for
// a version. It lets callers fetch the report without first loading the
// version.
func (c *Client) ValidationLocation(addonID, versionID int) string {
	return c.endpointURL(fmt.Sprintf("reviewers/addon/%d/versions/%d/validation", addonID, versionID), nil)
}
