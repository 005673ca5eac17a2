package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// displayableContentType is the only content type Fetch accepts. Anything
// else must be pulled with SaveTo, which does not care what it stores.
const displayableContentType = "image/jpeg"

// Resource is a remote file or an ordered burst sequence of remote files.
// The fingerprint is the identity used during container differencing: equal
// fingerprints are treated as the same underlying file set.
type Resource interface {
	Fingerprint() string
	SaveTo(f Fetcher, destination string) error
}

// fingerprint is the documented identity function: sha256 over the
// canonical name material. Collisions would be wrongly treated as "already
// seen" during differencing; with sha256 over filenames that is a stated,
// accepted weakness rather than a practical concern.
func fingerprint(material string) string {
	sum := sha256.Sum256([]byte(material))
	return hex.EncodeToString(sum[:])
}

// SingleResource is one file in the camera's file space, identified by its
// full remote URI, plus any metadata decoded from its filename.
type SingleResource struct {
	remoteURI string
	metadata  map[string]string
	print     string
}

func newSingleResource(remoteURI string, metadata map[string]string) *SingleResource {
	return &SingleResource{
		remoteURI: remoteURI,
		metadata:  metadata,
		print:     fingerprint(remoteURI),
	}
}

// RemoteURI returns the file's full URI on the camera.
func (r *SingleResource) RemoteURI() string { return r.remoteURI }

// Metadata returns the fields decoded from the filename. Nil when no name
// pattern was supplied to the scan or the name did not match it.
func (r *SingleResource) Metadata() map[string]string { return r.metadata }

// Fingerprint implements Resource.
func (r *SingleResource) Fingerprint() string { return r.print }

// Fetch retrieves the file and returns its raw bytes. Only displayable
// media is served this way; any other content type is a ContentTypeError.
// Use SaveTo to store arbitrary content.
func (r *SingleResource) Fetch(f Fetcher) ([]byte, error) {
	body, contentType, err := f.Fetch(r.remoteURI)
	if err != nil {
		return nil, err
	}
	if mediaType(contentType) != displayableContentType {
		return nil, &ContentTypeError{URI: r.remoteURI, ContentType: contentType}
	}
	return body, nil
}

// SaveTo retrieves the file and writes it verbatim to destination. An empty
// destination uses the remote basename in the working directory.
func (r *SingleResource) SaveTo(f Fetcher, destination string) error {
	body, _, err := f.Fetch(r.remoteURI)
	if err != nil {
		return err
	}
	if destination == "" {
		destination = path.Base(r.remoteURI)
	}
	return os.WriteFile(destination, body, 0644)
}

// SequenceResource is an ordered, immutable set of files produced by a
// single trigger in continuous (burst) mode.
type SequenceResource struct {
	members []*SingleResource
	print   string
}

// newSequenceResource builds a sequence from grouped entries. The
// fingerprint covers the concatenated member filenames in the order the
// members ended up in, so the same file set always fingerprints the same
// under the same scan options.
func newSequenceResource(dirURI string, members []entry) *SequenceResource {
	seq := &SequenceResource{}
	names := ""
	for _, e := range members {
		names += e.name
		seq.members = append(seq.members, newSingleResource(dirURI+e.name, e.metadata))
	}
	seq.print = fingerprint(names)
	return seq
}

// Len returns the number of files in the sequence.
func (r *SequenceResource) Len() int { return len(r.members) }

// At returns the i-th member, zero based. The camera's own frame counter is
// one based.
func (r *SequenceResource) At(i int) *SingleResource { return r.members[i] }

// Members returns the sequence members in order.
func (r *SequenceResource) Members() []*SingleResource { return r.members }

// Fingerprint implements Resource.
func (r *SequenceResource) Fingerprint() string { return r.print }

// Fetch retrieves every member in order, stopping at the first failure.
func (r *SequenceResource) Fetch(f Fetcher) ([][]byte, error) {
	result := make([][]byte, 0, len(r.members))
	for _, m := range r.members {
		body, err := m.Fetch(f)
		if err != nil {
			return nil, err
		}
		result = append(result, body)
	}
	return result, nil
}

// SaveTo stores every member into the destination directory (the working
// directory when empty), each under its own remote basename.
func (r *SequenceResource) SaveTo(f Fetcher, destination string) error {
	if destination == "" {
		destination = "."
	}
	for _, m := range r.members {
		target := filepath.Join(destination, path.Base(m.RemoteURI()))
		if err := m.SaveTo(f, target); err != nil {
			return err
		}
	}
	return nil
}

// mediaType strips any content type parameters, e.g. "; charset=...".
func mediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(strings.ToLower(contentType))
}
