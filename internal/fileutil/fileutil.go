package fileutil

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WorkingSibling returns a hidden scratch path in the same directory as path.
// Same directory keeps the final rename atomic; the dot prefix keeps scanners
// from picking the scratch file up.
func WorkingSibling(path string) (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate scratch suffix: %w", err)
	}
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+".karasync-"+hex.EncodeToString(buf[:])), nil
}

// CopyVerified streams src to dst with SHA256 and size integrity checks,
// preserving the source file mode. Removes dst on mismatch.
func CopyVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	return nil
}

// ClaimPath creates path exclusively as an empty placeholder. A second claim
// of the same path fails, which is how concurrent rewrites detect a name
// collision before any rename happens.
func ClaimPath(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// ReplaceFile moves src over dst atomically. Both must live on the same
// filesystem, which WorkingSibling guarantees for scratch files.
func ReplaceFile(src, dst string) error {
	return os.Rename(src, dst)
}

// SameFile reports whether two paths name the same file after symlink and
// case resolution, so a rename to an equivalent path can be skipped.
func SameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
