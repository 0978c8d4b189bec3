package samplesheet

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// GSPrefix marks a samplesheet stored in Google Cloud Storage
const GSPrefix = "gs://"

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", pfx.Err(err)
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	return path, nil
}

// SplitGSPath splits gs://bucket/some/object into its bucket and object name
func SplitGSPath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, GSPrefix), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", pfx.Err(fmt.Errorf("tried to split your google storage path into a bucket and an object, but got %v", pathParts))
	}
	return pathParts[0], pathParts[1], nil
}

// gsReadCloser closes the object reader and the client that produced it
type gsReadCloser struct {
	*storage.Reader
	client *storage.Client
}

func (g *gsReadCloser) Close() error {
	rerr := g.Reader.Close()
	cerr := g.client.Close()
	if rerr != nil {
		return rerr
	}
	return cerr
}

// Open opens a samplesheet for reading. Paths with the gs:// prefix are
// streamed from Google Cloud Storage using application default credentials;
// everything else is a local file, with ~/ expanded.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, GSPrefix) {
		bucketName, objectName, err := SplitGSPath(path)
		if err != nil {
			return nil, err
		}

		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		rdr, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
		if err != nil {
			client.Close()
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return &gsReadCloser{Reader: rdr, client: client}, nil
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, pfx.Err(err)
	}
	return f, nil
}
