package util

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Digest returns the hex md5 digest of everything left in r.
func Digest(r io.Reader) (string, error) {
	h := md5.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", errors.Wrap(err, "digest")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FileDigest digests a corpus file so trained models can record which
// treebank they came from.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	sum, err := Digest(f)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return sum, nil
}
