// Package results owns the output contract of a scan: one FileResult per
// source file, one EntityResult per matched declaration, collected in a
// per-analysis Registry.
package results

// FileResult describes one scanned source file.
type FileResult struct {
	AbsolutePath string
	RelativePath string // relative to the analysis root; doubles as the unique name
	DisplayName  string
	Language     string

	// ModuleName is the dotted namespace/package of the file; at most one
	// per file, first declaration wins.
	ModuleName string

	// Imports is append-only and may contain duplicates.
	Imports []string

	// Tokens is the normalized, comment-stripped token sequence for the
	// whole file.
	Tokens []string

	Entities []*EntityResult
}

func (f *FileResult) UniqueName() string {
	return f.RelativePath
}

// AddImport appends a dependency. Entries are never removed or deduplicated
// at the file level.
func (f *FileResult) AddImport(name string) {
	f.Imports = append(f.Imports, name)
}

// SetModuleName records the namespace; later declarations are ignored.
func (f *FileResult) SetModuleName(name string) {
	if f.ModuleName == "" {
		f.ModuleName = name
	}
}

// EntityResult describes one matched declaration. Its token span is a copy;
// the record stays valid independently of the owning file's sequence.
type EntityResult struct {
	EntityName string
	Unique     string
	Language   string
	ModuleName string

	Tokens   []string
	Imports  []string
	Inherits []string

	parent *FileResult
}

// NewEntityResult builds an entity owned by file. The parent reference is
// fixed at construction. The file's import set is copied in wholesale,
// deduplicated; imports the file gains later are not propagated.
func NewEntityResult(name, unique string, span []string, file *FileResult) *EntityResult {
	e := &EntityResult{
		EntityName: name,
		Unique:     unique,
		Language:   file.Language,
		ModuleName: file.ModuleName,
		Tokens:     append([]string(nil), span...),
		parent:     file,
	}
	for _, imp := range file.Imports {
		e.AddImport(imp)
	}
	file.Entities = append(file.Entities, e)
	return e
}

func (e *EntityResult) UniqueName() string {
	return e.Unique
}

func (e *EntityResult) ParentFile() *FileResult {
	return e.parent
}

// AddImport appends a dependency unless already present.
func (e *EntityResult) AddImport(name string) {
	for _, existing := range e.Imports {
		if existing == name {
			return
		}
	}
	e.Imports = append(e.Imports, name)
}

// AddInheritance records a parent/base name.
func (e *EntityResult) AddInheritance(name string) {
	e.Inherits = append(e.Inherits, name)
}
