package fileutil

import (
	"encoding/base64"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

func Exists(pathname string) bool {
	_, err := os.Stat(pathname)
	return err == nil
}

// PathnameInParents searches the current working directory and each of its
// parents for filename. It returns the closest relative pathname in which the
// given filename exists or an error if filename doesn't exist in any parent.
func PathnameInParents(filename string) (string, error) {
	pathname := filename
	for {
		if Exists(pathname) {
			return pathname, nil
		}
		pathname = filepath.Join("..", pathname)
		if dirname, err := filepath.Abs(filepath.Dir(pathname)); err != nil {
			return "", err
		} else if dirname == "/" {
			break
		}
	}
	return "", fs.ErrNotExist
}

// ReadBase64 reads the file at pathname and returns its contents encoded
// with standard base64, as files travel to and from the code interpreter.
func ReadBase64(pathname string) (string, error) {
	b, err := os.ReadFile(pathname)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// WriteBase64 decodes contents and writes it to name, which must be a local
// path, beneath dirname, creating intermediate directories as needed. It
// returns the pathname it wrote.
func WriteBase64(dirname, name, contents string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("refusing to write %q outside %s", name, dirname)
	}
	b, err := base64.StdEncoding.DecodeString(contents)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", name, err)
	}
	pathname := filepath.Join(dirname, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(pathname), 0777); err != nil {
		return "", err
	}
	return pathname, os.WriteFile(pathname, b, 0666)
}
