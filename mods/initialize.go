package mods

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/sergey-rogatin/compiler/common"
)

// InitProject creates a new project file for a project with the given name in
// the directory at path.
func InitProject(name, path string) error {
	projFilePath := filepath.Join(path, common.ProjectFileName)

	// check to see if a project already exists
	_, err := os.Stat(projFilePath)
	if err == nil {
		return errors.New("project file already exists")
	}

	if !os.IsNotExist(err) {
		return errors.Wrap(err, "project file error")
	}

	if !IsValidIdentifier(name) {
		return errors.New("project name must be a valid identifier")
	}

	prelude := true
	proj := &tomlProject{
		Name:    name,
		Output:  filepath.Join("out", name),
		Emit:    common.EmitC,
		Prelude: &prelude,
		Version: common.LvlcVersion,
	}

	f, err := os.Create(projFilePath)
	if err != nil {
		return errors.Wrap(err, "error creating project file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlProjectFile{Project: proj}); err != nil {
		return errors.Wrap(err, "error encoding TOML")
	}

	return nil
}
