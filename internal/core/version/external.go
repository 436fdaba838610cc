package version

// External is the wire shape returned by the reviewers version endpoint.
type External struct {
	ID                int          `json:"id"`
	Addon             int          `json:"addon"`
	Version           string       `json:"version"`
	ValidationURLJSON string       `json:"validation_url_json"`
	File              ExternalFile `json:"file"`
}

// ExternalFile is the file block of External.
type ExternalFile struct {
	ID           int                      `json:"id"`
	Content      string                   `json:"content"`
	Hash         string                   `json:"hash"`
	Size         int64                    `json:"size"`
	MimeType     string                   `json:"mimetype"`
	SelectedFile string                   `json:"selected_file"`
	DownloadURL  string                   `json:"download_url"`
	Entries      map[string]ExternalEntry `json:"entries"`
}

// ExternalEntry is one entry of ExternalFile.Entries.
type ExternalEntry struct {
	Depth    int    `json:"depth"`
	Filename string `json:"filename"`
	MimeType string `json:"mimetype"`
	Path     string `json:"path"`
	SHA256   string `json:"sha256"`
	Size     int64  `json:"size"`
}

// FromExternal converts the wire shape into a Version.
func FromExternal(ext External) Version {
	entries := make(map[string]FileEntry, len(ext.File.Entries))
	for key, e := range ext.File.Entries {
		path := e.Path
		if path == "" {
			path = key
		}
		entries[path] = FileEntry{
			Path:     path,
			Filename: e.Filename,
			Depth:    e.Depth,
			MimeType: e.MimeType,
			Size:     e.Size,
			SHA256:   e.SHA256,
		}
	}

	v := Version{
		ID:             ext.ID,
		AddonID:        ext.Addon,
		Number:         ext.Version,
		SelectedPath:   ext.File.SelectedFile,
		ReportLocation: ext.ValidationURLJSON,
		Entries:        entries,
		File: FileContent{
			Text:        ext.File.Content,
			MimeType:    ext.File.MimeType,
			Size:        ext.File.Size,
			SHA256:      ext.File.Hash,
			DownloadURL: ext.File.DownloadURL,
		},
	}

	// file metadata the endpoint left out comes from the package listing
	if entry, ok := v.SelectedEntry(); ok {
		if v.File.MimeType == "" {
			v.File.MimeType = entry.MimeType
		}
		if v.File.Size == 0 {
			v.File.Size = entry.Size
		}
		if v.File.SHA256 == "" {
			v.File.SHA256 = entry.SHA256
		}
	}

	return v
}
