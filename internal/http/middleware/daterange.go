package middleware

import (
	"context"
	"net/http"

	"github.com/MrJamesThe3rd/gigledger/internal/report"
)

type rangeKey struct{}

// DateRange validates the start and end query parameters and stores them as
// a report.Range. Both are required.
func DateRange(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		rng, err := report.ParseRange(q.Get("start"), q.Get("end"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), rangeKey{}, rng)))
	})
}

// RangeFrom returns the range stored by DateRange.
func RangeFrom(ctx context.Context) (report.Range, bool) {
	rng, ok := ctx.Value(rangeKey{}).(report.Range)
	return rng, ok
}
