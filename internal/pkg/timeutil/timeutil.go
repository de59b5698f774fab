package timeutil

import "time"

func NowUnix() int64 {
	return time.Now().Unix()
}

// FormatUnix renders a unix timestamp as RFC3339 UTC; zero renders empty.
func FormatUnix(ts int64) string {
	if ts <= 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}
