package formatters

import "strings"

const (
	URLListFileName = "urls.txt"
	URLListMimeType = "text/plain; charset=utf-8"
)

// ToURLList joins URLs with commas, the input format of downstream
// scraping tools. URLs are not escaped.
func ToURLList(urls []string) string {
	return strings.Join(urls, ",")
}
