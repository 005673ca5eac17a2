package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

type fakePage struct {
	body        []byte
	contentType string
	err         error
}

type fakeFetcher struct {
	pages map[string]fakePage
}

func (f *fakeFetcher) Fetch(uri string) ([]byte, string, error) {
	page, ok := f.pages[uri]
	if !ok {
		return nil, "", fmt.Errorf("no such page: %s", uri)
	}
	return page.body, page.contentType, page.err
}

// listing builds a directory page the way the camera's web server does,
// parent link first.
func listing(names ...string) []byte {
	page := `<html><body><a href="../">../</a>`
	for _, n := range names {
		page += fmt.Sprintf(`<a href="%s">%s</a>`, n, n)
	}
	return []byte(page + `</body></html>`)
}

func imageFetcher(dirURI string, names ...string) *fakeFetcher {
	return &fakeFetcher{pages: map[string]fakePage{
		dirURI: {body: listing(names...), contentType: "text/html"},
	}}
}

const dirURI = "http://192.168.100.1/DCIM/Image/"

func imageOpts() ScanOptions {
	return ScanOptions{Pattern: ImageNamePattern, GroupBy: ImageGroupBy, OrderBy: ImageOrderBy}
}

func TestScanDropsParentDirectoryLink(t *testing.T) {
	f := imageFetcher(dirURI, "Img_20190101_120000_001.jpg")
	c, err := Scan(f, dirURI, imageOpts())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 resource, got %d", c.Len())
	}
	single, ok := c.At(0).(*SingleResource)
	if !ok {
		t.Fatalf("expected a SingleResource, got %T", c.At(0))
	}
	if single.RemoteURI() != dirURI+"Img_20190101_120000_001.jpg" {
		t.Fatalf("unexpected remote URI %s", single.RemoteURI())
	}
}

func TestScanGroupsBurstIntoSequence(t *testing.T) {
	f := imageFetcher(dirURI,
		"Img_20190101_120000_001.jpg",
		"Img_20190101_120000_002.jpg",
		"Img_20190101_130000_001.jpg",
	)
	c, err := Scan(f, dirURI, imageOpts())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 resources, got %d", c.Len())
	}

	seq, ok := c.At(0).(*SequenceResource)
	if !ok {
		t.Fatalf("expected first resource to be a sequence, got %T", c.At(0))
	}
	if seq.Len() != 2 {
		t.Fatalf("expected 2 members, got %d", seq.Len())
	}
	if seq.At(0).Metadata()["frame"] != "001" || seq.At(1).Metadata()["frame"] != "002" {
		t.Fatalf("members out of order: %s, %s",
			seq.At(0).Metadata()["frame"], seq.At(1).Metadata()["frame"])
	}

	if _, ok := c.At(1).(*SingleResource); !ok {
		t.Fatalf("expected second resource to be a single, got %T", c.At(1))
	}
}

func TestScanOrdersSequenceByNumericFrame(t *testing.T) {
	// Listed out of order; numeric sort must fix it (10 after 2, not
	// lexicographic).
	f := imageFetcher(dirURI,
		"Img_20190101_120000_010.jpg",
		"Img_20190101_120000_002.jpg",
		"Img_20190101_120000_001.jpg",
	)
	c, err := Scan(f, dirURI, imageOpts())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	seq, ok := c.At(0).(*SequenceResource)
	if !ok {
		t.Fatalf("expected a sequence, got %T", c.At(0))
	}
	frames := []string{}
	for _, m := range seq.Members() {
		frames = append(frames, m.Metadata()["frame"])
	}
	if frames[0] != "001" || frames[1] != "002" || frames[2] != "010" {
		t.Fatalf("unexpected frame order: %v", frames)
	}
}

func TestScanOrderingIsStableForEqualValues(t *testing.T) {
	pattern := regexp.MustCompile(`(?P<set>[a-z]+)_(?P<n>[0-9]+)_(?P<tag>[a-z])\.dat`)
	f := &fakeFetcher{pages: map[string]fakePage{
		"http://cam/d/": {body: listing("grp_1_b.dat", "grp_1_a.dat", "grp_1_c.dat")},
	}}
	c, err := Scan(f, "http://cam/d/", ScanOptions{
		Pattern: pattern,
		GroupBy: []string{"set"},
		OrderBy: "n",
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	seq := c.At(0).(*SequenceResource)
	tags := []string{}
	for _, m := range seq.Members() {
		tags = append(tags, m.Metadata()["tag"])
	}
	// All order-by values are equal; encounter order must survive.
	if tags[0] != "b" || tags[1] != "a" || tags[2] != "c" {
		t.Fatalf("stable order violated: %v", tags)
	}
}

func TestScanUnmatchedNamesStaySingletons(t *testing.T) {
	f := imageFetcher(dirURI,
		"notes.txt",
		"readme.txt",
		"Img_20190101_120000_001.jpg",
	)
	c, err := Scan(f, dirURI, imageOpts())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 singleton resources, got %d", c.Len())
	}
	for i := 0; i < 2; i++ {
		single, ok := c.At(i).(*SingleResource)
		if !ok {
			t.Fatalf("resource %d should be a single, got %T", i, c.At(i))
		}
		if single.Metadata() != nil {
			t.Fatalf("unmatched name should carry nil metadata, got %v", single.Metadata())
		}
	}
}

func TestScanUnmatchedNeverFusesWithMetadataKeys(t *testing.T) {
	// A metadata-derived group key that looks like a positional key must
	// not capture the unmatched entry sitting at that position.
	pattern := regexp.MustCompile(`(?P<k>#[0-9]+)\.dat`)
	f := &fakeFetcher{pages: map[string]fakePage{
		"http://cam/d/": {body: listing("junk.bin", "#0.dat")},
	}}
	c, err := Scan(f, "http://cam/d/", ScanOptions{
		Pattern: pattern,
		GroupBy: []string{"k"},
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 singleton resources, got %d", c.Len())
	}
	junk, ok := c.At(0).(*SingleResource)
	if !ok {
		t.Fatalf("unmatched entry was fused into a %T", c.At(0))
	}
	if junk.Metadata() != nil {
		t.Fatalf("unmatched entry grew metadata: %v", junk.Metadata())
	}
	if _, ok := c.At(1).(*SingleResource); !ok {
		t.Fatalf("matched singleton became a %T", c.At(1))
	}
}

func TestScanRejectsNonNumericOrderField(t *testing.T) {
	pattern := regexp.MustCompile(`(?P<set>[a-z]+)_(?P<tag>[a-z]+)\.dat`)
	f := &fakeFetcher{pages: map[string]fakePage{
		"http://cam/d/": {body: listing("grp_aa.dat", "grp_bb.dat")},
	}}
	_, err := Scan(f, "http://cam/d/", ScanOptions{
		Pattern: pattern,
		GroupBy: []string{"set"},
		OrderBy: "tag",
	})
	var se *ScanError
	if !errors.As(err, &se) {
		t.Fatalf("expected ScanError for non-numeric order field, got %v", err)
	}
}

func TestScanWithoutPatternKeepsEncounterOrder(t *testing.T) {
	f := imageFetcher(dirURI, "c.jpg", "a.jpg", "b.jpg")
	c, err := Scan(f, dirURI, ScanOptions{})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 resources, got %d", c.Len())
	}
	want := []string{"c.jpg", "a.jpg", "b.jpg"}
	for i, name := range want {
		if got := c.At(i).(*SingleResource).RemoteURI(); got != dirURI+name {
			t.Fatalf("resource %d: got %s, want %s", i, got, dirURI+name)
		}
	}
}

func TestScanErrorWrapsTransportFailure(t *testing.T) {
	cause := errors.New("connection refused")
	f := &fakeFetcher{pages: map[string]fakePage{
		dirURI: {err: cause},
	}}
	_, err := Scan(f, dirURI, imageOpts())
	var se *ScanError
	if !errors.As(err, &se) {
		t.Fatalf("expected ScanError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("scan error does not wrap the transport cause")
	}
}

func scanNames(t *testing.T, names ...string) *Container {
	t.Helper()
	c, err := Scan(imageFetcher(dirURI, names...), dirURI, imageOpts())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	return c
}

func TestDifferenceWithSelfIsEmpty(t *testing.T) {
	a := scanNames(t,
		"Img_20190101_120000_001.jpg",
		"Img_20190101_120000_002.jpg",
		"Img_20190101_130000_001.jpg",
	)
	if d := a.Difference(a); d.Len() != 0 {
		t.Fatalf("A-A should be empty, got %d resources", d.Len())
	}
}

func TestDifferenceWithEmptyIsIdentity(t *testing.T) {
	a := scanNames(t,
		"Img_20190101_120000_001.jpg",
		"Img_20190101_130000_001.jpg",
	)
	empty := &Container{}
	d := a.Difference(empty)
	if d.Len() != a.Len() {
		t.Fatalf("A-empty should equal A, got %d resources", d.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if d.At(i).Fingerprint() != a.At(i).Fingerprint() {
			t.Fatalf("resource %d changed identity or order", i)
		}
	}
}

func TestDifferenceIsAsymmetric(t *testing.T) {
	a := scanNames(t,
		"Img_20190101_110000_001.jpg",
		"Img_20190101_120000_001.jpg",
		"Img_20190101_130000_001.jpg",
	)
	b := scanNames(t,
		"Img_20190101_120000_001.jpg",
		"Img_20190101_130000_001.jpg",
		"Img_20190101_140000_001.jpg",
	)

	aMinusB := a.Difference(b)
	if aMinusB.Len() != 1 {
		t.Fatalf("A-B: expected 1 resource, got %d", aMinusB.Len())
	}
	if got := aMinusB.At(0).(*SingleResource).RemoteURI(); got != dirURI+"Img_20190101_110000_001.jpg" {
		t.Fatalf("A-B kept the wrong resource: %s", got)
	}

	bMinusA := b.Difference(a)
	if bMinusA.Len() != 1 {
		t.Fatalf("B-A: expected 1 resource, got %d", bMinusA.Len())
	}
	if got := bMinusA.At(0).(*SingleResource).RemoteURI(); got != dirURI+"Img_20190101_140000_001.jpg" {
		t.Fatalf("B-A kept the wrong resource: %s", got)
	}
}

func TestSequenceFingerprintTracksMemberSet(t *testing.T) {
	a := scanNames(t, "Img_20190101_120000_001.jpg", "Img_20190101_120000_002.jpg")
	b := scanNames(t, "Img_20190101_120000_001.jpg", "Img_20190101_120000_002.jpg")
	c := scanNames(t, "Img_20190101_120000_001.jpg", "Img_20190101_120000_003.jpg")

	if a.At(0).Fingerprint() != b.At(0).Fingerprint() {
		t.Fatalf("same file set must produce the same fingerprint")
	}
	if a.At(0).Fingerprint() == c.At(0).Fingerprint() {
		t.Fatalf("different file sets must not share a fingerprint")
	}
}

func TestFetchRejectsUnsupportedContentType(t *testing.T) {
	uri := dirURI + "Img_20190101_120000_001.jpg"
	f := &fakeFetcher{pages: map[string]fakePage{
		uri: {body: []byte("<html>error</html>"), contentType: "text/html"},
	}}
	r := newSingleResource(uri, nil)
	_, err := r.Fetch(f)
	var cte *ContentTypeError
	if !errors.As(err, &cte) {
		t.Fatalf("expected ContentTypeError, got %v", err)
	}
	if cte.ContentType != "text/html" {
		t.Fatalf("error names content type %q", cte.ContentType)
	}
}

func TestFetchAcceptsJPEGWithParameters(t *testing.T) {
	uri := dirURI + "Img_20190101_120000_001.jpg"
	f := &fakeFetcher{pages: map[string]fakePage{
		uri: {body: []byte{0xFF, 0xD8}, contentType: "image/jpeg; charset=binary"},
	}}
	r := newSingleResource(uri, nil)
	body, err := r.Fetch(f)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("unexpected body length %d", len(body))
	}
}

func TestSequenceFetchShortCircuitsOnFirstFailure(t *testing.T) {
	c := scanNames(t, "Img_20190101_120000_001.jpg", "Img_20190101_120000_002.jpg")
	seq := c.At(0).(*SequenceResource)

	f := &fakeFetcher{pages: map[string]fakePage{
		seq.At(0).RemoteURI(): {body: []byte{1}, contentType: "image/jpeg"},
		seq.At(1).RemoteURI(): {body: []byte("nope"), contentType: "text/plain"},
	}}
	_, err := seq.Fetch(f)
	var cte *ContentTypeError
	if !errors.As(err, &cte) {
		t.Fatalf("expected ContentTypeError from the failing member, got %v", err)
	}
}

func TestSaveToWritesVerbatimRegardlessOfContentType(t *testing.T) {
	uri := dirURI + "Vid_20190101_120000_001.mp4"
	payload := []byte{0x00, 0x01, 0x02}
	f := &fakeFetcher{pages: map[string]fakePage{
		uri: {body: payload, contentType: "video/mp4"},
	}}
	r := newSingleResource(uri, nil)

	dest := filepath.Join(t.TempDir(), "clip.mp4")
	if err := r.SaveTo(f, dest); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("file content mangled: %v", got)
	}
}

func TestSequenceSaveToUsesRemoteBasenames(t *testing.T) {
	c := scanNames(t, "Img_20190101_120000_001.jpg", "Img_20190101_120000_002.jpg")
	seq := c.At(0).(*SequenceResource)

	f := &fakeFetcher{pages: map[string]fakePage{
		seq.At(0).RemoteURI(): {body: []byte{1}, contentType: "image/jpeg"},
		seq.At(1).RemoteURI(): {body: []byte{2}, contentType: "image/jpeg"},
	}}

	dir := t.TempDir()
	if err := seq.SaveTo(f, dir); err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, name := range []string{"Img_20190101_120000_001.jpg", "Img_20190101_120000_002.jpg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
	}
}
