package streamcodec

// NoOpCodec bypasses compression entirely, returning the input unchanged.
// Useful for disabling compression without branching at call sites.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

func (NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
