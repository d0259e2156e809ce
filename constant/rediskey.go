package constant

import "fmt"

const (
	BasePrefix = "shorturl:"
	Separator  = ":"
)

// Redis 键模板
const (
	ResolveKey = BasePrefix + "code" + Separator + "%s" // shorturl:code:<short code>
)

// Cache TTLs in seconds. Negative entries are short-lived so a code
// created right after a miss becomes visible quickly.
const (
	ResolveTTL         = 3600
	ResolveNegativeTTL = 300
)

// GetResolveKey 生成短码缓存 key
func GetResolveKey(shortCode string) string {
	return fmt.Sprintf(ResolveKey, shortCode)
}
