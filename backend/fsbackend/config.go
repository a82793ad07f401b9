package fsbackend

import (
	"github.com/wyag/git-go/backend"
	"github.com/wyag/git-go/internal/gitpath"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	"gopkg.in/ini.v1"
)

// setDefaultCfg sets and persists the default git configuration for a
// freshly initialized repository: a single [core] section with
// repositoryformatversion, filemode, and bare.
// Calling this on a repository that already has a config is a no-op.
func (b *Backend) setDefaultCfg() error {
	p := b.systemPath(gitpath.ConfigPath)
	if exists, err := afero.Exists(b.fs, p); err != nil {
		return xerrors.Errorf("could not check for an existing config: %w", err)
	} else if exists {
		return nil
	}

	cfg := ini.Empty()
	core, err := cfg.NewSection(backend.CfgCore)
	if err != nil {
		return xerrors.Errorf("could not create core section: %w", err)
	}
	coreCfg := []struct{ k, v string }{
		{backend.CfgCoreFormatVersion, "0"},
		{backend.CfgCoreFileMode, "false"},
		{backend.CfgCoreBare, "false"},
	}
	for _, c := range coreCfg {
		if _, err := core.NewKey(c.k, c.v); err != nil {
			return xerrors.Errorf("could not set %s: %w", c.k, err)
		}
	}

	f, err := b.fs.Create(p)
	if err != nil {
		return xerrors.Errorf("could not create config file: %w", err)
	}
	defer f.Close() //nolint:errcheck // WriteTo below is what can actually fail

	if _, err := cfg.WriteTo(f); err != nil {
		return xerrors.Errorf("could not write config file: %w", err)
	}
	return nil
}

// RepositoryFormatVersion reads core.repositoryformatversion from the
// on-disk config. Repository.Open uses this to reject a version other
// than 0, the only version this implementation understands.
func (b *Backend) RepositoryFormatVersion() (int, error) {
	p := b.systemPath(gitpath.ConfigPath)
	f, err := b.fs.Open(p)
	if err != nil {
		return 0, xerrors.Errorf("could not open config: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	cfg, err := ini.Load(f)
	if err != nil {
		return 0, xerrors.Errorf("could not parse config: %w", err)
	}
	return cfg.Section(backend.CfgCore).Key(backend.CfgCoreFormatVersion).MustInt(0), nil
}
