package fsbackend

import (
	"bytes"
	"compress/zlib"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wyag/git-go/ginternals"
	"github.com/wyag/git-go/ginternals/object"
	"github.com/wyag/git-go/internal/errutil"
	"github.com/wyag/git-go/internal/gitpath"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// looseObjectPath returns the absolute path of an object:
// objects/<first 2 hex chars>/<remaining 38 hex chars>
// Ex. path of fcfe68a0e44e04bd7fd564fc0b75f1ae457e18b3 is:
// objects/fc/fe68a0e44e04bd7fd564fc0b75f1ae457e18b3
func (b *Backend) looseObjectPath(oid ginternals.Oid) string {
	sha := oid.String()
	return b.systemPath(filepath.Join(gitpath.ObjectsPath, sha[:2], sha[2:]))
}

// Object returns the object stored under oid.
// ErrObjectNotFound is returned if no such object exists.
func (b *Backend) Object(oid ginternals.Oid) (o *object.Object, err error) {
	p := b.looseObjectPath(oid)
	f, err := b.fs.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, xerrors.Errorf("%s: %w", oid.String(), ginternals.ErrObjectNotFound)
		}
		return nil, xerrors.Errorf("could not open object %s: %w", oid.String(), err)
	}
	defer errutil.Close(f, &err)

	return readLooseObject(f)
}

// readLooseObject decompresses and parses the wire form of a loose
// object: "<type> <size>\x00<content>".
func readLooseObject(r io.Reader) (o *object.Object, err error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, xerrors.Errorf("could not open zlib reader: %w", err)
	}
	defer errutil.Close(zr, &err)

	raw, err := ioutil.ReadAll(zr)
	if err != nil {
		return nil, xerrors.Errorf("could not decompress object: %w", err)
	}

	sep := bytes.IndexByte(raw, 0)
	if sep < 0 {
		return nil, xerrors.Errorf("malformed object header: %w", object.ErrObjectInvalid)
	}
	header := string(raw[:sep])
	content := raw[sep+1:]

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return nil, xerrors.Errorf("malformed object header %q: %w", header, object.ErrObjectInvalid)
	}
	typ, err := object.NewTypeFromString(parts[0])
	if err != nil {
		return nil, xerrors.Errorf("unsupported type %q: %w", parts[0], err)
	}
	size, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, xerrors.Errorf("malformed object size %q: %w", parts[1], object.ErrObjectInvalid)
	}
	if size != len(content) {
		return nil, xerrors.Errorf("size mismatch: header says %d, got %d: %w", size, len(content), object.ErrObjectInvalid)
	}

	return object.New(typ, content), nil
}

// HasObject returns whether an object exists in the odb
func (b *Backend) HasObject(oid ginternals.Oid) (bool, error) {
	_, err := b.fs.Stat(b.looseObjectPath(oid))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, xerrors.Errorf("could not check object %s: %w", oid.String(), err)
	}
	return true, nil
}

// WriteObject persists o as a loose object and returns its oid. Writes
// are idempotent: if an object with the same oid is already on disk it
// is left untouched, since its content is necessarily identical.
func (b *Backend) WriteObject(o *object.Object) (ginternals.Oid, error) {
	oid := o.ID()

	has, err := b.HasObject(oid)
	if err != nil {
		return ginternals.NullOid, err
	}
	if has {
		return oid, nil
	}

	data, err := o.Compress()
	if err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not compress object %s: %w", oid.String(), err)
	}

	p := b.looseObjectPath(oid)
	if err := b.fs.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not create object directory: %w", err)
	}
	// objects are read-only once written
	if err := afero.WriteFile(b.fs, p, data, 0o444); err != nil {
		return ginternals.NullOid, xerrors.Errorf("could not persist object %s at path %s: %w", oid.String(), p, err)
	}
	return oid, nil
}

// ResolvePrefix returns every object id stored in the odb whose hex
// representation starts with prefix. prefix must be at least 2 hex
// characters (the name resolver enforces a 4-character minimum).
func (b *Backend) ResolvePrefix(prefix string) ([]ginternals.Oid, error) {
	prefix = strings.ToLower(prefix)
	if len(prefix) < 2 {
		return nil, xerrors.Errorf("prefix %q is too short", prefix)
	}

	dir := b.systemPath(filepath.Join(gitpath.ObjectsPath, prefix[:2]))
	entries, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, xerrors.Errorf("could not list %s: %w", dir, err)
	}

	rest := prefix[2:]
	var out []ginternals.Oid
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), rest) {
			continue
		}
		oid, err := ginternals.NewOidFromHex(prefix[:2] + e.Name())
		if err != nil {
			continue
		}
		out = append(out, oid)
	}
	return out, nil
}
