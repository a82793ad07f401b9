package backend

// Well-known keys of the [core] section of .git/config
const (
	CfgCore              = "core"
	CfgCoreFormatVersion = "repositoryformatversion"
	CfgCoreFileMode      = "filemode"
	CfgCoreBare          = "bare"
)
