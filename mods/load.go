package mods

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/sergey-rogatin/compiler/common"
)

// tomlProjectFile represents the project file as it is encoded in TOML.
type tomlProjectFile struct {
	Project *tomlProject `toml:"project"`
}

// tomlProject represents a project as it is encoded in TOML.
type tomlProject struct {
	Name    string   `toml:"name"`
	Sources []string `toml:"sources,omitempty"`
	Output  string   `toml:"output,omitempty"`
	Emit    string   `toml:"emit,omitempty"`
	Prelude *bool    `toml:"prelude,omitempty"`
	Version string   `toml:"lvlc-version"`
}

// LoadProject loads the project at path.  If path names a source file, a
// project containing only that file is returned.  Otherwise, path must be a
// directory containing a project file.
func LoadProject(path string) (*Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid project path %s", path)
	}

	finfo, err := os.Stat(absPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open project")
	}

	if !finfo.IsDir() {
		return singleFileProject(absPath)
	}

	return loadProjectFile(absPath)
}

// singleFileProject creates a project for a lone source file.
func singleFileProject(absPath string) (*Project, error) {
	if filepath.Ext(absPath) != common.SrcFileExtension {
		return nil, errors.Errorf("source file %s must have the extension %s", absPath, common.SrcFileExtension)
	}

	name := strings.TrimSuffix(filepath.Base(absPath), common.SrcFileExtension)
	return &Project{
		Name:       name,
		Root:       filepath.Dir(absPath),
		Sources:    []string{absPath},
		OutputPath: strings.TrimSuffix(absPath, common.SrcFileExtension),
		Emit:       common.EmitC,
		Prelude:    true,
	}, nil
}

// loadProjectFile loads and validates the project file in the directory root.
func loadProjectFile(root string) (*Project, error) {
	buff, err := os.ReadFile(filepath.Join(root, common.ProjectFileName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read project file")
	}

	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, errors.Wrap(err, "failed to decode project file")
	}

	if tpf.Project == nil {
		return nil, errors.Errorf("project file in %s has no [project] table", root)
	}

	proj := &Project{
		Name:    tpf.Project.Name,
		Root:    root,
		Emit:    tpf.Project.Emit,
		Prelude: true,
		Version: tpf.Project.Version,
	}

	if err := validateProject(proj); err != nil {
		return nil, err
	}

	if tpf.Project.Prelude != nil {
		proj.Prelude = *tpf.Project.Prelude
	}

	if tpf.Project.Output == "" {
		proj.OutputPath = filepath.Join(root, proj.Name)
	} else {
		proj.OutputPath = absFrom(root, tpf.Project.Output)
	}

	if len(tpf.Project.Sources) == 0 {
		if proj.Sources, err = findSources(root); err != nil {
			return nil, err
		}
	} else {
		for _, src := range tpf.Project.Sources {
			proj.Sources = append(proj.Sources, absFrom(root, src))
		}
	}

	if len(proj.Sources) == 0 {
		return nil, errors.Errorf("project `%s` has no source files", proj.Name)
	}

	return proj, nil
}

// validateProject checks that the project file contents are valid and fills
// in defaults.
func validateProject(proj *Project) error {
	if proj.Name == "" {
		return errors.Errorf("missing project name for project at %s", proj.Root)
	}

	if !IsValidIdentifier(proj.Name) {
		return errors.New("project name must be a valid identifier")
	}

	if proj.Emit == "" {
		proj.Emit = common.EmitC
	}

	return ValidateEmit(proj.Emit)
}

// ValidateEmit checks that emit names a valid output kind.
func ValidateEmit(emit string) error {
	for _, kind := range common.EmitKinds {
		if emit == kind {
			return nil
		}
	}

	return errors.Errorf("invalid output kind `%s`: expected one of %s", emit, strings.Join(common.EmitKinds, ", "))
}

// findSources returns every source file directly inside root sorted by name.
func findSources(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read project directory")
	}

	var sources []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == common.SrcFileExtension {
			sources = append(sources, filepath.Join(root, entry.Name()))
		}
	}

	sort.Strings(sources)
	return sources, nil
}

// absFrom makes path absolute relative to root.
func absFrom(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(root, path)
}
