package dds

// BC6HBlockSize is the encoded size of one BC6H block.
const BC6HBlockSize = 16

// EncodeBC6H returns an all-zero BC6H block for any input. Zero is a valid
// mode 0 block that decodes to near black; the input colors are not
// represented.
func EncodeBC6H(Block) [BC6HBlockSize]byte {
	return [BC6HBlockSize]byte{}
}
