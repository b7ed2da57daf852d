package domain

const (
	// LockFileName is the run marker created in the working directory.
	LockFileName = ".donk.lock"

	// TempScriptPattern is the os.CreateTemp pattern for scripts handed to
	// external interpreters.
	TempScriptPattern = ".donk-*.tmp"

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// ConfigFileNames are the default config file names, in lookup order.
var ConfigFileNames = []string{
	"donk.yml",
	"donk.yaml",
	"donkey.yml",
	"donkey.yaml",
	"donkey-make.yml",
	"donkey-make.yaml",
	"donk.toml",
}
