package profile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Registry maps file extensions to language profiles.
type Registry struct {
	byExt    map[string]*Profile
	profiles []*Profile
}

// Defaults returns a registry with every built-in language profile.
func Defaults() *Registry {
	r := &Registry{byExt: make(map[string]*Profile)}
	for _, p := range []*Profile{CSharp(), VBNet(), CSS(), SCSS(), Twig()} {
		r.Add(p)
	}
	return r
}

func (r *Registry) Add(p *Profile) {
	r.profiles = append(r.profiles, p)
	for _, ext := range p.Extensions {
		r.byExt[ext] = p
	}
}

// Restrict keeps only the named languages. Unknown names are an error; a
// misspelled allow-list should fail the run, not silently scan nothing.
func (r *Registry) Restrict(languages []string) error {
	if len(languages) == 0 {
		return nil
	}

	allowed := make(map[string]bool, len(languages))
	for _, name := range languages {
		allowed[strings.ToLower(name)] = true
	}
	for name := range allowed {
		if !r.hasProfile(name) {
			return fmt.Errorf("unknown language %q", name)
		}
	}

	kept := r.profiles[:0]
	byExt := make(map[string]*Profile)
	for _, p := range r.profiles {
		if !allowed[p.Name] {
			continue
		}
		kept = append(kept, p)
		for _, ext := range p.Extensions {
			byExt[ext] = p
		}
	}
	r.profiles = kept
	r.byExt = byExt
	return nil
}

func (r *Registry) hasProfile(name string) bool {
	for _, p := range r.profiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

// ForPath picks the profile for a file, favoring the longest matching
// extension so ".html.twig" wins over ".twig"-style overlaps.
func (r *Registry) ForPath(path string) (*Profile, bool) {
	base := filepath.Base(path)
	best := ""
	var found *Profile
	for ext, p := range r.byExt {
		if strings.HasSuffix(base, ext) && len(ext) > len(best) {
			best = ext
			found = p
		}
	}
	return found, found != nil
}

// Profiles returns every registered profile.
func (r *Registry) Profiles() []*Profile {
	return r.profiles
}

// Validate checks every profile; a broken one fails the whole analysis at
// start.
func (r *Registry) Validate() error {
	for _, p := range r.profiles {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Extensions returns all recognized extensions.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}
