package common

import "time"

const (
	CacheKeyArticleList = "topline:articles"

	ListCacheTTL = 60 * time.Second
)
