package formatters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToURLList(t *testing.T) {
	urls := []string{"https://x/1", "https://x/2", "https://x/1"}
	out := ToURLList(urls)

	assert.Equal(t, "https://x/1,https://x/2,https://x/1", out)
	assert.Equal(t, urls, strings.Split(out, ","))
}

func TestToURLList_Edges(t *testing.T) {
	assert.Equal(t, "", ToURLList(nil))
	assert.Equal(t, "https://x/1", ToURLList([]string{"https://x/1"}))
	assert.Equal(t, "No URL,No URL", ToURLList([]string{"No URL", "No URL"}))
}
