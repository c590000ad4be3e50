package mods

// Project represents a project: the set of source files compiled together and
// the options for compiling them.  It is either loaded from a project file or
// synthesized for a lone source file.
type Project struct {
	// Name is the name of the project.
	Name string

	// Root is the path to the root directory of the project.
	Root string

	// Sources is the list of absolute paths to the project's source files in
	// the order they are compiled.
	Sources []string

	// OutputPath is the path to the output files without their extensions.
	OutputPath string

	// Emit is the kind of output to produce: one of the `common.Emit` kinds.
	Emit string

	// Prelude indicates whether the prelude should be compiled before the
	// project's sources.
	Prelude bool

	// Version is the compiler version the project file was written for.  It is
	// empty for projects without a project file.
	Version string
}

// IsValidIdentifier returns whether idstr is a valid identifier: project names
// must be identifiers.
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
