package styles

import (
	"path"
	"strings"
)

// Tip: To find icons use https://github.com/loichyan/nerdfix

// File type icons
var (
	IconFileDefault  = " "
	IconFileJS       = "󰌞 "
	IconFileTS       = "󰛦 "
	IconFileMarkdown = " "
	IconFileJSON     = " "
	IconFileXML      = "󰗀 "
	IconFileHTML     = " "
	IconFileCSS      = " "
	IconFileImage    = " "
)

// Notification icons
var (
	IconNotifyError   = "✗"
	IconNotifyWarning = "▲"
	IconNotifyInfo    = "●"
)

var iconsByExt = map[string]string{
	".js":   IconFileJS,
	".jsm":  IconFileJS,
	".mjs":  IconFileJS,
	".jsx":  IconFileJS,
	".ts":   IconFileTS,
	".tsx":  IconFileTS,
	".md":   IconFileMarkdown,
	".json": IconFileJSON,
	".xml":  IconFileXML,
	".rdf":  IconFileXML,
	".html": IconFileHTML,
	".htm":  IconFileHTML,
	".css":  IconFileCSS,
	".png":  IconFileImage,
	".svg":  IconFileImage,
	".jpg":  IconFileImage,
	".gif":  IconFileImage,
}

// IconForPath returns the file type icon for p.
func IconForPath(p string) string {
	if icon, ok := iconsByExt[strings.ToLower(path.Ext(p))]; ok {
		return icon
	}
	return IconFileDefault
}
