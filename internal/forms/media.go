package forms

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxFileSize is the largest file accepted for staging.
const MaxFileSize int64 = 5 * 1024 * 1024

// MediaKind distinguishes image and video staging.
type MediaKind int

const (
	KindImage MediaKind = iota
	KindVideo
)

func (k MediaKind) String() string {
	if k == KindVideo {
		return "video"
	}
	return "image"
}

// AcceptedImageTypes and AcceptedVideoTypes are the MIME allow-lists.
var (
	AcceptedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}
	AcceptedVideoTypes = []string{"video/mp4", "video/webm", "video/quicktime"}
)

var formatHints = map[MediaKind]string{
	KindImage: "JPEG, PNG or WebP",
	KindVideo: "MP4, WebM or QuickTime",
}

// File is a local file the user picked.
type File interface {
	Name() string
	Size() int64
	ContentType() string
	Open() (io.ReadCloser, error)
}

// LocalFile is a File on disk whose content type was sniffed from its bytes.
type LocalFile struct {
	path        string
	size        int64
	contentType string
}

// OpenLocalFile stats path and detects its content type.
func OpenLocalFile(path string) (*LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect type of %s: %w", path, err)
	}
	return &LocalFile{
		path:        path,
		size:        info.Size(),
		contentType: baseType(mtype.String()),
	}, nil
}

func (f *LocalFile) Name() string                 { return filepath.Base(f.path) }
func (f *LocalFile) Size() int64                  { return f.size }
func (f *LocalFile) ContentType() string          { return f.contentType }
func (f *LocalFile) Open() (io.ReadCloser, error) { return os.Open(f.path) }

// MemoryFile is a File held in memory.
type MemoryFile struct {
	name        string
	data        []byte
	contentType string
}

// NewMemoryFile wraps data, sniffing its content type.
func NewMemoryFile(name string, data []byte) *MemoryFile {
	return &MemoryFile{
		name:        name,
		data:        data,
		contentType: baseType(mimetype.Detect(data).String()),
	}
}

func (f *MemoryFile) Name() string        { return f.name }
func (f *MemoryFile) Size() int64         { return int64(len(f.data)) }
func (f *MemoryFile) ContentType() string { return f.contentType }
func (f *MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func baseType(mime string) string {
	t, _, _ := strings.Cut(mime, ";")
	return strings.TrimSpace(t)
}

// Rejection explains why a file was not staged.
type Rejection struct {
	File   string
	Reason string
}

func (r Rejection) Error() string { return r.Reason }

// CheckFile applies the size limit and the allow-list for kind.
func CheckFile(kind MediaKind, f File) *Rejection {
	if f.Size() > MaxFileSize {
		return &Rejection{
			File:   f.Name(),
			Reason: fmt.Sprintf("File %s is too large. Max size is 5MB.", f.Name()),
		}
	}
	accepted := AcceptedImageTypes
	if kind == KindVideo {
		accepted = AcceptedVideoTypes
	}
	if !contains(accepted, f.ContentType()) {
		return &Rejection{
			File:   f.Name(),
			Reason: fmt.Sprintf("File %s has unsupported format. Please use %s.", f.Name(), formatHints[kind]),
		}
	}
	return nil
}

// PreviewRegistry hands out preview handles for staged files and tracks which
// are still live, the way a browser tracks object URLs.
type PreviewRegistry struct {
	mu   sync.Mutex
	live map[string]File
}

// NewPreviewRegistry creates an empty registry.
func NewPreviewRegistry() *PreviewRegistry {
	return &PreviewRegistry{live: make(map[string]File)}
}

// Create issues a new handle for f.
func (r *PreviewRegistry) Create(f File) string {
	handle := "blob:" + uuid.New().String()
	r.mu.Lock()
	r.live[handle] = f
	r.mu.Unlock()
	return handle
}

// Revoke releases handle and reports whether it was live.
func (r *PreviewRegistry) Revoke(handle string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.live[handle]
	delete(r.live, handle)
	return ok
}

// Resolve returns the file behind a live handle.
func (r *PreviewRegistry) Resolve(handle string) (File, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.live[handle]
	return f, ok
}

// Live returns the number of unreleased handles.
func (r *PreviewRegistry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Artifact is a staged file together with its preview handle.
type Artifact struct {
	File    File
	Preview string
}

// MediaList is the ordered list of staged artifacts of one kind.
type MediaList struct {
	kind     MediaKind
	previews *PreviewRegistry

	mu    sync.Mutex
	items []Artifact
}

// NewMediaList creates an empty list whose previews come from previews.
func NewMediaList(kind MediaKind, previews *PreviewRegistry) *MediaList {
	if previews == nil {
		previews = NewPreviewRegistry()
	}
	return &MediaList{kind: kind, previews: previews}
}

// Kind returns the media kind the list accepts.
func (l *MediaList) Kind() MediaKind { return l.kind }

// Stage checks each file and appends the accepted ones with a fresh preview.
// Rejected files are reported and not added.
func (l *MediaList) Stage(files ...File) []Rejection {
	var rejected []Rejection
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range files {
		if r := CheckFile(l.kind, f); r != nil {
			rejected = append(rejected, *r)
			continue
		}
		l.items = append(l.items, Artifact{File: f, Preview: l.previews.Create(f)})
	}
	return rejected
}

// Remove drops the artifact at index i and revokes its preview.
func (l *MediaList) Remove(i int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("no staged %s at index %d", l.kind, i)
	}
	l.previews.Revoke(l.items[i].Preview)
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	return nil
}

// Clear drops every artifact and revokes all their previews.
func (l *MediaList) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range l.items {
		l.previews.Revoke(a.Preview)
	}
	l.items = nil
}

// Items returns a copy of the staged artifacts.
func (l *MediaList) Items() []Artifact {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Artifact(nil), l.items...)
}

// Files returns the staged files in order.
func (l *MediaList) Files() []File {
	l.mu.Lock()
	defer l.mu.Unlock()
	files := make([]File, len(l.items))
	for i, a := range l.items {
		files[i] = a.File
	}
	return files
}

// Len returns the number of staged artifacts.
func (l *MediaList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}
