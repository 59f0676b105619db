package provider

import (
	"context"
	"image"
	"net/url"

	"streamable/internal/async"
	"streamable/internal/generic"
	"streamable/internal/media"
)

// Async exposes the Streamable operations as futures. Each call starts one
// goroutine, never blocks the caller, and resolves exactly once.
type Async struct {
	s *Streamable
}

// Async returns the non-blocking form of the client.
func (s *Streamable) Async() Async {
	return Async{s: s}
}

func (a Async) Fetch(ctx context.Context, shortcode string) *async.Future[*media.VideoResource] {
	return async.Go(func() (*media.VideoResource, error) {
		return a.s.Fetch(ctx, shortcode)
	})
}

func (a Async) Thumbnail(ctx context.Context, shortcode string) *async.Future[generic.Option[image.Image]] {
	return async.Run(func() generic.Option[image.Image] {
		return a.s.Thumbnail(ctx, shortcode)
	})
}

func (a Async) TitleAndThumbnail(ctx context.Context, shortcode string) *async.Future[media.TitleThumbnail] {
	return async.Run(func() media.TitleThumbnail {
		return a.s.TitleAndThumbnail(ctx, shortcode)
	})
}

func (a Async) VideoItem(ctx context.Context, shortcode string) *async.Future[generic.Option[*media.Playable]] {
	return async.Run(func() generic.Option[*media.Playable] {
		return a.s.VideoItem(ctx, shortcode)
	})
}

func (a Async) VideoURL(ctx context.Context, shortcode string) *async.Future[generic.Option[*url.URL]] {
	return async.Run(func() generic.Option[*url.URL] {
		return a.s.VideoURL(ctx, shortcode)
	})
}
