package ops

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// skipEntry reports files a backup leaves out: half-written temp files
// from an interrupted save.
func skipEntry(name string) bool {
	return strings.HasSuffix(name, ".tmp")
}

// BackupSaveDir archives every regular file in saveDir (no subdirectories,
// no temp files) into a .tar.gz at archivePath.
func BackupSaveDir(saveDir, archivePath string) (err error) {
	saveDir = filepath.Clean(strings.TrimSpace(saveDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if saveDir == "." || archivePath == "." {
		return errors.New("save dir and archive path are required")
	}
	info, err := os.Stat(saveDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", saveDir)
	}
	entries, err := os.ReadDir(saveDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for _, e := range entries {
		if !e.Type().IsRegular() || skipEntry(e.Name()) {
			continue
		}
		if err := addFile(tw, filepath.Join(saveDir, e.Name()), e.Name()); err != nil {
			return fmt.Errorf("archive %s: %w", e.Name(), err)
		}
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}

func addFile(tw *tar.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = name
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err = io.Copy(tw, src)
	return err
}

// RestoreSaveDir unpacks an archive made by BackupSaveDir into targetDir.
// Each file lands through a temp file and rename so an existing save is
// never left half-written.
func RestoreSaveDir(archivePath, targetDir string) error {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	targetDir = filepath.Clean(strings.TrimSpace(targetDir))
	if archivePath == "." || targetDir == "." {
		return errors.New("archive path and target dir are required")
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		name, err := sanitizeEntryName(hdr.Name)
		if err != nil {
			return err
		}
		if err := restoreFile(tr, filepath.Join(targetDir, name), os.FileMode(hdr.Mode).Perm()); err != nil {
			return fmt.Errorf("restore %s: %w", name, err)
		}
	}
}

func restoreFile(r io.Reader, dst string, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if mode == 0 {
		mode = 0o644
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Save archives are flat, so any directory component is rejected.
func sanitizeEntryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	clean := filepath.Clean(name)
	if clean == "." || clean == "" || clean == ".." {
		return "", fmt.Errorf("invalid archive entry: %q", name)
	}
	if filepath.IsAbs(clean) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid archive entry path: %s", name)
	}
	return clean, nil
}

// DrillResult is what a backup/restore drill produced.
type DrillResult struct {
	Archive    string
	RestoreDir string
	Digest     string
}

// Drill backs up saveDir, restores it into workDir and checks the restored
// files match byte for byte.
func Drill(saveDir, workDir string, now time.Time) (DrillResult, error) {
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return DrillResult{}, err
	}
	ts := now.UTC().Format("20060102T150405Z")
	res := DrillResult{
		Archive:    filepath.Join(workDir, "anthill-drill-"+ts+".tar.gz"),
		RestoreDir: filepath.Join(workDir, "anthill-drill-restore-"+ts),
	}

	if err := BackupSaveDir(saveDir, res.Archive); err != nil {
		return res, err
	}
	if err := RestoreSaveDir(res.Archive, res.RestoreDir); err != nil {
		return res, err
	}
	srcDigest, err := DirDigest(saveDir)
	if err != nil {
		return res, err
	}
	restoredDigest, err := DirDigest(res.RestoreDir)
	if err != nil {
		return res, err
	}
	if srcDigest != restoredDigest {
		return res, fmt.Errorf("digest mismatch after restore: src=%s restored=%s", srcDigest, restoredDigest)
	}
	res.Digest = srcDigest
	return res, nil
}

// DirDigest hashes the names and contents of the files a backup would
// include.
func DirDigest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && !skipEntry(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		_, _ = io.WriteString(h, name)
		_, _ = io.WriteString(h, "\n")
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", err
		}
		_, _ = h.Write(b)
		_, _ = io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
