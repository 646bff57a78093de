package streamcodec

// ZstdCodec compresses with Zstandard, favoring compression ratio over
// speed — the usual choice for archiving or transmitting encoded values
// over a bandwidth-constrained link. Its Compress/Decompress bodies live in
// zstd_cgo.go and zstd_pure.go, selected by the cgo build tag.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}
