package common

const (
	SrcFileExtension = ".lang"
	ProjectFileName  = "lvlc.toml"
	LvlcVersion      = "0.1.0"
)

// Output kinds selectable with `--emit` or the project file.
const (
	EmitC    = "c"
	EmitLLVM = "llvm"
	EmitBoth = "both"
)

// EmitKinds lists the valid output kinds.
var EmitKinds = []string{EmitC, EmitLLVM, EmitBoth}
