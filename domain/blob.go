package domain

import (
	"context"
)

// BlobStore hands out retrievable URLs for stored media and upload URLs
// for new media. Keys are opaque paths inside the store.
type BlobStore interface {
	SignedGetURL(ctx context.Context, key string) (string, error)
	SignedPutURL(ctx context.Context) (key string, url string, err error)
}
