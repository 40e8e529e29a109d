package wallpaper

import (
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/echoflaresat/sunpaper/solar"
)

type dateKey struct {
	year  int
	month time.Month
	day   int
}

// CachedProvider memoizes day by calendar date, so batch queries spanning
// many instants of the same few days evaluate the solar series once per day.
// The cache is safe for concurrent use.
func CachedProvider(day Provider, size int) Provider {
	if size < 1 {
		size = 8
	}
	cache, _ := lru.New(size)

	return func(t time.Time) (solar.Day, error) {
		y, m, d := t.Date()
		key := dateKey{y, m, d}

		if v, ok := cache.Get(key); ok {
			return v.(solar.Day), nil
		}

		sd, err := day(t)
		if err != nil {
			return solar.Day{}, err
		}
		cache.Add(key, sd)
		return sd, nil
	}
}
