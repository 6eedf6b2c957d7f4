package stitch

import (
	"path/filepath"
	"strings"
)

// Format is the merge strategy selected for a file.
type Format int

// Recognized formats.
const (
	FormatUnknown Format = iota
	FormatPDF
	FormatImage
	FormatOffice
)

// String returns a human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatImage:
		return "image"
	case FormatOffice:
		return "document"
	}
	return "unknown"
}

// imageExtensions lists raster formats the image adapter can decode.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".jpe": true, ".jfif": true,
	".png": true, ".gif": true, ".bmp": true, ".dib": true,
	".tif": true, ".tiff": true, ".webp": true,
}

// officeExtensions lists formats handed to the office suite.
var officeExtensions = map[string]bool{
	// Text documents
	".doc": true, ".docx": true, ".docm": true, ".dot": true, ".dotx": true, ".dotm": true,
	".odt": true, ".ott": true, ".fodt": true, ".rtf": true, ".txt": true, ".wpd": true,
	".wps": true, ".pages": true, ".abw": true, ".zabw": true, ".lwp": true, ".sxw": true,
	".stw": true, ".html": true, ".htm": true, ".xhtml": true, ".md": true, ".markdown": true,

	// Spreadsheets
	".xls": true, ".xlsx": true, ".xlsm": true, ".xlsb": true, ".xlt": true, ".xltx": true,
	".xltm": true, ".ods": true, ".ots": true, ".fods": true, ".csv": true, ".sxc": true,
	".stc": true, ".numbers": true, ".dif": true, ".slk": true,

	// Presentations
	".ppt": true, ".pptx": true, ".pptm": true, ".pps": true, ".ppsx": true, ".pot": true,
	".potx": true, ".potm": true, ".odp": true, ".otp": true, ".fodp": true, ".sxi": true,
	".sti": true, ".key": true,

	// Drawings
	".odg": true, ".otg": true, ".fodg": true, ".vsd": true, ".vsdx": true, ".vdx": true,
	".cdr": true, ".pub": true, ".sxd": true, ".std": true,
}

// markdownExtensions are office documents rendered to HTML before conversion.
var markdownExtensions = map[string]bool{".md": true, ".markdown": true}

// Classify maps a path to its format using the case-insensitive suffix only.
func Classify(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".pdf":
		return FormatPDF
	case imageExtensions[ext]:
		return FormatImage
	case officeExtensions[ext]:
		return FormatOffice
	}
	return FormatUnknown
}

// IsPDF reports whether path has a PDF extension.
func IsPDF(path string) bool { return Classify(path) == FormatPDF }

// IsImage reports whether path has a raster image extension.
func IsImage(path string) bool { return Classify(path) == FormatImage }

// IsOffice reports whether path has an office document extension.
func IsOffice(path string) bool { return Classify(path) == FormatOffice }

// IsRecognized reports whether path can be merged.
func IsRecognized(path string) bool { return Classify(path) != FormatUnknown }

// isMarkdown reports whether path is a Markdown source.
func isMarkdown(path string) bool {
	return markdownExtensions[strings.ToLower(filepath.Ext(path))]
}
