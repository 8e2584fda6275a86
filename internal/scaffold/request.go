package scaffold

import (
	"regexp"
	"strings"

	founderr "github.com/ekim5sg/plugforge/internal/foundation/errors"
)

// DefaultSubtitle is the placeholder tagline embedded in generated stubs
// when the caller supplies no subtitle.
const DefaultSubtitle = "Plug scaffold is live. Replace this content with your real app."

// namePattern constrains plug identifiers: lowercase letters, digits, hyphens.
var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Request describes one scaffold invocation. It is constructed from caller
// input, consumed by Generator.Generate, and discarded.
type Request struct {
	// Name is the plug identifier. Must match ^[a-z0-9-]+$.
	Name string

	// Title is the display title. Falls back to Name when blank.
	Title string

	// Subtitle is the display tagline. Falls back to DefaultSubtitle when blank.
	Subtitle string

	// Publish selects whether the stage/commit/push side effect runs.
	Publish bool
}

// Validate checks the plug name against the identifier pattern. It runs
// before any filesystem action so invalid input causes no side effects.
func (r Request) Validate() error {
	if !namePattern.MatchString(r.Name) {
		return founderr.ValidationError("invalid plug name: must be lowercase letters, numbers, hyphens").
			WithContext("name", r.Name).
			Build()
	}
	return nil
}

// EffectiveTitle returns the title to embed, defaulting to the name.
func (r Request) EffectiveTitle() string {
	if strings.TrimSpace(r.Title) == "" {
		return r.Name
	}
	return r.Title
}

// EffectiveSubtitle returns the subtitle to embed, defaulting to the fixed tagline.
func (r Request) EffectiveSubtitle() string {
	if strings.TrimSpace(r.Subtitle) == "" {
		return DefaultSubtitle
	}
	return r.Subtitle
}

// PackageName derives the generated manifest's package identifier from the
// plug name, normalizing hyphens to underscores.
func (r Request) PackageName() string {
	return strings.ReplaceAll(r.Name, "-", "_")
}

// DeployURL returns the fixed-shape deployment URL for the plug.
func (r Request) DeployURL(host string) string {
	return "https://" + host + "/" + r.Name + "/"
}
