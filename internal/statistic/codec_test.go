package statistic

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exportlens/internal/models"
	"exportlens/internal/testutil"
)

func TestZstdCompression_Roundtrip(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)

	original := []byte(`{"platform":"tiktok","records":[]}`)
	compressed, err := c.Compress(original)
	require.NoError(t, err)
	assert.NotEqual(t, original, compressed)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestZstdCompression_LargeData(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)

	original := bytes.Repeat([]byte(`{"l":"https://www.youtube.com/watch?v=abc"}`), 20_000)
	compressed, err := c.Compress(original)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(original)/2)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestZstdCompression_DecompressInvalidData(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)

	_, err = c.Decompress([]byte("not valid zstd data"))
	assert.Error(t, err)
}

func youtubeTable(t *testing.T) *models.Table {
	table, err := models.NewTable(models.PlatformYouTube)
	require.NoError(t, err)
	table.Append(
		models.Record{
			Title:       "Watched A",
			Link:        "https://www.youtube.com/watch?v=a",
			Time:        time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC),
			ChannelName: "X",
			ChannelURL:  "https://www.youtube.com/channel/x",
		},
		models.Record{
			Title:       "No Title",
			Link:        "No URL",
			Time:        models.Epoch,
			ChannelName: "No Channel Name",
			ChannelURL:  "No Channel URL",
		},
	)
	return table
}

func TestTableCodec_Roundtrip(t *testing.T) {
	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	codec := NewTableCodec(compressor)

	table := youtubeTable(t)
	blob, err := codec.Encode(table)
	require.NoError(t, err)

	decoded, err := codec.Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, table.Platform, decoded.Platform)
	assert.Equal(t, table.Head(-1), decoded.Head(-1))
}

func TestTableCodec_CompressError(t *testing.T) {
	codec := NewTableCodec(&testutil.MockCompressor{
		CompressFn: func([]byte) ([]byte, error) { return nil, errors.New("boom") },
	})
	_, err := codec.Encode(youtubeTable(t))
	assert.EqualError(t, err, "boom")
}

func TestTableCodec_DecodeRejectsGarbage(t *testing.T) {
	codec := NewTableCodec(&testutil.MockCompressor{})

	_, err := codec.Decode([]byte("{"))
	assert.ErrorContains(t, err, "unmarshal table")

	_, err = codec.Decode([]byte(`{"platform":"vine","records":[]}`))
	var unsupported *models.UnsupportedPlatformError
	assert.True(t, errors.As(err, &unsupported))
}
