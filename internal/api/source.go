package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/colonyops/lintlens/internal/core/linter"
	"github.com/colonyops/lintlens/internal/core/version"
)

// Source provides file content and analyzer messages for a version.
type Source interface {
	FetchAnalyzerReport(ctx context.Context, versionID int, location string) ([]linter.Message, error)
	FetchFileContent(ctx context.Context, versionID int, path string) (version.FileContent, error)
}

// Remote is a Source backed by the review API for one add-on.
type Remote struct {
	client  *Client
	addonID int
}

// NewRemote returns a Source for addonID.
func NewRemote(client *Client, addonID int) *Remote {
	return &Remote{client: client, addonID: addonID}
}

// LoadVersion fetches the version and the content of path.
func (r *Remote) LoadVersion(ctx context.Context, versionID int, path string) (version.Version, error) {
	return r.client.GetVersionFile(ctx, r.addonID, versionID, path)
}

func (r *Remote) FetchAnalyzerReport(ctx context.Context, _ int, location string) ([]linter.Message, error) {
	report, err := r.client.GetAnalyzerReport(ctx, location)
	if err != nil {
		return nil, err
	}
	return report.Messages, nil
}

func (r *Remote) FetchFileContent(ctx context.Context, versionID int, path string) (version.FileContent, error) {
	v, err := r.client.GetVersionFile(ctx, r.addonID, versionID, path)
	if err != nil {
		return version.FileContent{}, err
	}
	return v.File, nil
}

// LocalVersionID is the version id given to versions built from local files.
const LocalVersionID = 1

// Local is a Source over files on disk. Paths passed to FetchFileContent are
// resolved against Root.
type Local struct {
	Root       string
	ReportPath string
}

// NewLocal returns a Local source rooted at root.
func NewLocal(root, reportPath string) *Local {
	return &Local{Root: root, ReportPath: reportPath}
}

// FetchAnalyzerReport reads the report at location, or at ReportPath when
// location is empty. No report configured yields no messages.
func (l *Local) FetchAnalyzerReport(_ context.Context, _ int, location string) ([]linter.Message, error) {
	if location == "" {
		location = l.ReportPath
	}
	if location == "" {
		return []linter.Message{}, nil
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer func() { _ = f.Close() }()

	report, err := linter.ParseReport(f)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", location, err)
	}
	return report.Messages, nil
}

func (l *Local) FetchFileContent(_ context.Context, _ int, path string) (version.FileContent, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(l.Root, path)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return version.FileContent{}, fmt.Errorf("read file: %w", err)
	}

	sum := sha256.Sum256(data)
	return version.FileContent{
		Text:     string(data),
		MimeType: DetectMimeType(path, data),
		Size:     int64(len(data)),
		SHA256:   hex.EncodeToString(sum[:]),
	}, nil
}

// Version builds a single-file version for path, reading its content.
func (l *Local) Version(ctx context.Context, path string) (version.Version, error) {
	content, err := l.FetchFileContent(ctx, LocalVersionID, path)
	if err != nil {
		return version.Version{}, err
	}

	rel := filepath.ToSlash(path)
	return version.Version{
		ID:             LocalVersionID,
		SelectedPath:   rel,
		ReportLocation: l.ReportPath,
		Entries: map[string]version.FileEntry{
			rel: {
				Path:     rel,
				Filename: filepath.Base(rel),
				Depth:    strings.Count(rel, "/"),
				MimeType: content.MimeType,
				Size:     content.Size,
				SHA256:   content.SHA256,
			},
		},
		File: content,
	}, nil
}

// DetectMimeType guesses a MIME type from the file extension and falls back
// to content sniffing. Parameters are stripped.
func DetectMimeType(path string, data []byte) string {
	mt := mime.TypeByExtension(filepath.Ext(path))
	if mt == "" {
		mt = http.DetectContentType(data)
	}
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}
