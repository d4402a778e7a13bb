package server

import (
	"context"

	"golang.org/x/text/language"
)

type (
	serverKey struct{}
	localeKey struct{}
)

func withServer(ctx context.Context, server *Server) context.Context {
	return context.WithValue(ctx, serverKey{}, server)
}

func serverFromContext(ctx context.Context) *Server {
	return ctx.Value(serverKey{}).(*Server)
}

func withLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, localeKey{}, tag)
}

func localeFromContext(ctx context.Context) (language.Tag, bool) {
	tag, ok := ctx.Value(localeKey{}).(language.Tag)
	return tag, ok
}
