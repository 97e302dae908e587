package statistic

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"exportlens/internal/models"
	"exportlens/internal/statistic/interfaces"
)

// ZstdCompression packs serialized tables for the session store. Tables of
// long watch histories repeat the same channel names and URL prefixes, so
// they shrink well.
type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/4)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

// TableCodec turns tables into compact byte blobs and back.
type TableCodec struct {
	compressor interfaces.CompressorInterface
}

func NewTableCodec(compressor interfaces.CompressorInterface) *TableCodec {
	return &TableCodec{compressor: compressor}
}

func (c *TableCodec) Encode(t *models.Table) ([]byte, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal table: %w", err)
	}
	return c.compressor.Compress(raw)
}

func (c *TableCodec) Decode(data []byte) (*models.Table, error) {
	raw, err := c.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress table: %w", err)
	}
	var t models.Table
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("unmarshal table: %w", err)
	}
	if _, err := models.Schema(t.Platform); err != nil {
		return nil, err
	}
	return &t, nil
}
