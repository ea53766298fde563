/*
Package dds implements a forward-only DDS (DirectDraw Surface) encoder for
small test textures.

It writes uncompressed and float pixel layouts, the BC1/DXT1, BC3/DXT5, BC4,
BC5, BC7 (mode 6) and BC6H block formats, and two non-standard palette
layouts (4-bit and 8-bit indices after a flat RGBA palette). Every file has a
single mip level. Formats that need the DX10 extension header get it
automatically.

Block codecs are plain functions over one 4x4 block:

	var blk dds.Block // 16 samples, row-major
	out := dds.EncodeBC1(blk)

The codecs pick endpoints directly from the block extremes and match pixels
by squared distance. They are deterministic and cheap, not quality-optimizing.
BC7 always uses mode 6 with the p-bit taken from the red channel, and BC6H
blocks are written as all-zero mode-0 blocks.

Files can also be framed as Enfusion EDDS (DDS header followed by a block
table and an optional LZ4 chunk stream), and read back for inspection.
*/
package dds
