package blobstore

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Item is a named blob queued for upload.
type Item struct {
	Name string
	Data []byte
}

// Uploader ships batches of snapshot artifacts to a Store with bounded
// parallelism and optional byte-rate throttling.
//
// Throttling applies per blob before its Put; parallelism is enforced with
// an errgroup limit, so a slow backend cannot fan out unbounded work.
type Uploader struct {
	store       Store
	concurrency int
	limiter     *rate.Limiter
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithConcurrency limits the number of parallel uploads. Default: 4.
func WithConcurrency(n int) UploaderOption {
	return func(u *Uploader) {
		if n > 0 {
			u.concurrency = n
		}
	}
}

// WithRateLimit throttles uploads to bytesPerSec. Zero means unlimited.
func WithRateLimit(bytesPerSec int) UploaderOption {
	return func(u *Uploader) {
		if bytesPerSec > 0 {
			u.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec)
		}
	}
}

// NewUploader creates an Uploader writing to store.
func NewUploader(store Store, optFns ...UploaderOption) *Uploader {
	u := &Uploader{
		store:       store,
		concurrency: 4,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(u)
		}
	}
	return u
}

// Upload writes all items to the store. It fails fast on the first error;
// already-written blobs are not rolled back.
func (u *Uploader) Upload(ctx context.Context, items []Item) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)

	for _, item := range items {
		g.Go(func() error {
			if u.limiter != nil {
				if err := u.waitN(ctx, len(item.Data)); err != nil {
					return err
				}
			}
			return u.store.Put(ctx, item.Name, item.Data)
		})
	}

	return g.Wait()
}

// waitN reserves n bytes from the limiter, splitting requests larger than
// the limiter's burst.
func (u *Uploader) waitN(ctx context.Context, n int) error {
	burst := u.limiter.Burst()
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := u.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
