package session

import (
	"errors"
	"fmt"
	"sort"

	"github.com/registryops/eppproxy/internal/epp"
)

// Permanent negotiation failures. A session that hits one of these closes
// for good instead of cycling through reconnects that can never succeed.
var (
	ErrNoCommonVersion  = errors.New("server offers no common protocol version")
	ErrNoCommonLanguage = errors.New("server offers no common language")
	ErrNoCommonObjects  = errors.New("server offers no usable object namespace")
)

// isPermanent reports whether the error can never be cured by a
// reconnect.
func isPermanent(err error) bool {
	return errors.Is(err, ErrNoCommonVersion) ||
		errors.Is(err, ErrNoCommonLanguage) ||
		errors.Is(err, ErrNoCommonObjects)
}

// FeatureSet is the negotiated view of one registry connection: which
// object and extension URIs the greeting advertised, the language the
// login will pin, and the operator-supplied errata tag. Frozen once the
// login succeeds; command encoders read it concurrently.
type FeatureSet struct {
	serverID   string
	language   string
	errata     string
	objects    map[string]bool
	extensions map[string]bool
}

// negotiate builds a feature set from the first greeting of a connection.
// loginObjects, when non-empty, restricts the set to the listed object
// URIs; subordinate sessions use this to log in against a single
// namespace.
func negotiate(g *epp.Greeting, errata string, loginObjects []string) (*FeatureSet, error) {
	versionOK := false
	for _, v := range g.SvcMenu.Versions {
		if v == "1.0" {
			versionOK = true
			break
		}
	}
	if !versionOK {
		return nil, fmt.Errorf("%w: advertised %v", ErrNoCommonVersion, g.SvcMenu.Versions)
	}

	language := ""
	for _, want := range []string{"en", "en-US"} {
		for _, lang := range g.SvcMenu.Languages {
			if lang == want {
				language = want
				break
			}
		}
		if language != "" {
			break
		}
	}
	if language == "" {
		return nil, fmt.Errorf("%w: advertised %v", ErrNoCommonLanguage, g.SvcMenu.Languages)
	}

	fs := &FeatureSet{
		serverID:   g.ServerID,
		language:   language,
		errata:     errata,
		objects:    make(map[string]bool),
		extensions: make(map[string]bool),
	}
	for _, uri := range g.SvcMenu.ObjectURIs {
		fs.objects[uri] = true
	}
	if g.SvcMenu.SvcExtension != nil {
		for _, uri := range g.SvcMenu.SvcExtension.ExtensionURIs {
			fs.extensions[uri] = true
		}
	}

	if len(loginObjects) > 0 {
		kept := make(map[string]bool)
		for _, uri := range loginObjects {
			if fs.objects[uri] {
				kept[uri] = true
			}
		}
		fs.objects = kept
	}
	if len(fs.objects) == 0 {
		return nil, fmt.Errorf("%w: advertised %v", ErrNoCommonObjects, g.SvcMenu.ObjectURIs)
	}
	return fs, nil
}

// HasObject reports whether the server advertises the object URI.
func (f *FeatureSet) HasObject(uri string) bool { return f.objects[uri] }

// HasExtension reports whether the server advertises the extension URI.
func (f *FeatureSet) HasExtension(uri string) bool { return f.extensions[uri] }

// Errata returns the operator-supplied workaround tag, empty for none.
func (f *FeatureSet) Errata() string { return f.errata }

// Language returns the negotiated language tag.
func (f *FeatureSet) Language() string { return f.language }

// ServerID returns the server's self-reported identifier.
func (f *FeatureSet) ServerID() string { return f.serverID }

// ObjectURIs returns the advertised object URIs, sorted for a
// deterministic login frame.
func (f *FeatureSet) ObjectURIs() []string {
	out := make([]string, 0, len(f.objects))
	for uri := range f.objects {
		out = append(out, uri)
	}
	sort.Strings(out)
	return out
}

// ExtensionURIs returns the advertised extension URIs, sorted.
func (f *FeatureSet) ExtensionURIs() []string {
	out := make([]string, 0, len(f.extensions))
	for uri := range f.extensions {
		out = append(out, uri)
	}
	sort.Strings(out)
	return out
}
