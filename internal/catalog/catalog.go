package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// Fetcher is the transport the catalog needs: one blocking GET returning the
// body and the content type the server reported.
type Fetcher interface {
	Fetch(uri string) (body []byte, contentType string, err error)
}

// anchorPattern extracts file entries from the camera's directory listing.
// This is a structural assumption about the NGINX autoindex format, not a
// general HTML parser.
var anchorPattern = regexp.MustCompile(`<a href="(?P<href>.+?)">.+?</a>`)

// ScanOptions configure how a directory scan interprets filenames. The
// naming convention is device specific, so it is passed in here rather than
// living as process-wide state.
type ScanOptions struct {
	// Pattern is a regular expression with named groups used to decode
	// metadata from a filename. Entries that fail to match keep nil
	// metadata and are never grouped with anything.
	Pattern *regexp.Regexp
	// GroupBy lists named groups whose concatenated values identify a
	// burst sequence. Entries sharing the key land in the same sequence.
	GroupBy []string
	// OrderBy names a single numeric group to sort sequence members by,
	// e.g. the frame counter. Ties keep encounter order. A member whose
	// field does not decode as an integer fails the whole scan.
	OrderBy string
}

// Container is an immutable, ordered collection of resources built from one
// scan of a directory listing. Differencing produces a new Container.
type Container struct {
	resources []Resource
}

// Len returns the number of resources in the container.
func (c *Container) Len() int { return len(c.resources) }

// At returns the resource at index i in scan order.
func (c *Container) At(i int) Resource { return c.resources[i] }

// Resources returns the resources in scan order.
func (c *Container) Resources() []Resource { return c.resources }

// Difference returns the resources present in c but not in other, keyed by
// fingerprint. Order follows c. The operand order encodes "after minus
// before": scanning before a trigger, triggering, scanning again and taking
// after.Difference(before) isolates the newly created resources. An empty
// result is a valid outcome, not an error. Equal fingerprints are treated
// as the same resource; the fingerprint is the sole membership key.
func (c *Container) Difference(other *Container) *Container {
	seen := make(map[string]struct{}, len(other.resources))
	for _, r := range other.resources {
		seen[r.Fingerprint()] = struct{}{}
	}

	diff := &Container{}
	for _, r := range c.resources {
		if _, ok := seen[r.Fingerprint()]; !ok {
			diff.resources = append(diff.resources, r)
		}
	}
	return diff
}

// entry is one parsed listing row prior to grouping.
type entry struct {
	name     string
	metadata map[string]string
	groupKey string
	grouped  bool
	order    int
}

// Scan fetches a directory listing and builds a container of resources.
// Groups of one become a SingleResource, groups of two or more become a
// SequenceResource. Resource order is the order group keys were first
// encountered. dirURI must keep its trailing slash; member URIs are formed
// by direct concatenation.
func Scan(f Fetcher, dirURI string, opts ScanOptions) (*Container, error) {
	body, _, err := f.Fetch(dirURI)
	if err != nil {
		return nil, &ScanError{URI: dirURI, Err: err}
	}

	matches := anchorPattern.FindAllStringSubmatch(string(body), -1)
	if len(matches) > 0 {
		// The first anchor is always the parent directory link.
		matches = matches[1:]
	}

	entries := make([]entry, 0, len(matches))
	for _, m := range matches {
		e := entry{name: m[1]}
		if opts.Pattern != nil {
			if sub := opts.Pattern.FindStringSubmatch(e.name); sub != nil {
				e.metadata = namedGroups(opts.Pattern, sub)
				if len(opts.GroupBy) > 0 {
					key := ""
					for _, field := range opts.GroupBy {
						key += e.metadata[field]
					}
					e.groupKey = key
					e.grouped = true
				}
			}
		}
		entries = append(entries, e)
	}

	// Partition into groups; first occurrence of a key fixes group order.
	// Ungrouped entries get a position-based key so they stay singletons.
	// The two key kinds carry distinct prefixes: a metadata-derived key can
	// never collide with a positional one, so an unmatched entry can never
	// fuse into a sequence.
	var order []string
	groups := make(map[string][]entry)
	for i, e := range entries {
		key := "#" + strconv.Itoa(i)
		if e.grouped {
			key = "g:" + e.groupKey
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], e)
	}

	container := &Container{resources: make([]Resource, 0, len(order))}
	for _, key := range order {
		members := groups[key]
		if len(members) == 1 {
			e := members[0]
			container.resources = append(container.resources,
				newSingleResource(dirURI+e.name, e.metadata))
			continue
		}
		if opts.OrderBy != "" {
			for i := range members {
				n, err := strconv.Atoi(members[i].metadata[opts.OrderBy])
				if err != nil {
					return nil, &ScanError{URI: dirURI, Err: fmt.Errorf(
						"order field %q of %s is not numeric: %w",
						opts.OrderBy, members[i].name, err)}
				}
				members[i].order = n
			}
			sort.SliceStable(members, func(i, j int) bool {
				return members[i].order < members[j].order
			})
		}
		container.resources = append(container.resources,
			newSequenceResource(dirURI, members))
	}
	return container, nil
}

func namedGroups(re *regexp.Regexp, submatch []string) map[string]string {
	meta := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name != "" && i < len(submatch) {
			meta[name] = submatch[i]
		}
	}
	return meta
}
