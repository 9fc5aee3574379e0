package domain

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultMaxResumeSize is the upload cap used when none is configured
const DefaultMaxResumeSize int64 = 5 * 1024 * 1024

// DefaultResumeExtensions are the document types accepted by default
var DefaultResumeExtensions = []string{".pdf", ".doc", ".docx"}

// FileDescriptor describes an uploaded file without its bytes
type FileDescriptor struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"type"`
}

// Ext returns the lower-cased extension including the dot
func (f FileDescriptor) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// ResumePolicy limits what can be attached as a resume
type ResumePolicy struct {
	AcceptedExtensions []string
	MaxSize            int64
}

// DefaultResumePolicy accepts .pdf/.doc/.docx up to 5MB
func DefaultResumePolicy() ResumePolicy {
	return ResumePolicy{
		AcceptedExtensions: slices.Clone(DefaultResumeExtensions),
		MaxSize:            DefaultMaxResumeSize,
	}
}

// Check validates the file type and size
func (p ResumePolicy) Check(f FileDescriptor) error {
	if strings.TrimSpace(f.Name) == "" {
		return invalidf("file name is required")
	}

	ext := f.Ext()
	accepted := false
	for _, a := range p.AcceptedExtensions {
		if strings.EqualFold(normalizeExt(a), ext) {
			accepted = true
			break
		}
	}
	if !accepted {
		return invalidf("file type %q is not accepted, use one of %s", ext, strings.Join(p.AcceptedExtensions, ","))
	}

	if f.Size <= 0 {
		return invalidf("file is empty")
	}
	if p.MaxSize > 0 && f.Size > p.MaxSize {
		return invalidf("file size must be less than %s", formatMB(p.MaxSize))
	}

	return nil
}

// ResumeUpload is the outcome of attaching a resume
type ResumeUpload struct {
	FileName    string `json:"file_name"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"type"`
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.ToLower(ext)
}

func formatMB(n int64) string {
	return fmt.Sprintf("%dMB", (n+512*1024)/(1024*1024))
}
