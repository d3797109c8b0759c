package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gigledger/internal/profile"
)

// ProfileHeader carries the id of the profile making the request.
const ProfileHeader = "profile_id"

type profileKey struct{}

// Profile resolves the caller from ProfileHeader and stores it in the request
// context. Requests without a known profile get 401; lookup failures get 500.
func Profile(svc *profile.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get(ProfileHeader))
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			p, err := svc.Get(r.Context(), id)
			if err != nil {
				if errors.Is(err, profile.ErrNotFound) {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}

				slog.ErrorContext(r.Context(), "failed to resolve profile", "error", err)
				w.WriteHeader(http.StatusInternalServerError)

				return
			}

			next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), p)))
		})
	}
}

func WithProfile(ctx context.Context, p *profile.Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, p)
}

// ProfileFrom returns the caller stored by Profile.
func ProfileFrom(ctx context.Context) (*profile.Profile, bool) {
	p, ok := ctx.Value(profileKey{}).(*profile.Profile)
	return p, ok
}
