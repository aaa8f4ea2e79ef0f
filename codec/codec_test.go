package codec_test

import (
	"testing"

	"pkg.world.dev/world-engine/assert"

	"pkg.world.dev/world-engine/sprite/codec"
)

type ride struct {
	Name  string
	Index int
}

func TestEncodeDecode(t *testing.T) {
	bz, err := codec.Encode(ride{Name: "Wooden Wild Mouse", Index: 3})
	assert.NilError(t, err)

	got, err := codec.Decode[ride](bz)
	assert.NilError(t, err)
	assert.Equal(t, ride{Name: "Wooden Wild Mouse", Index: 3}, got)

	var into ride
	assert.NilError(t, codec.DecodeInto(bz, &into))
	assert.Equal(t, got, into)

	_, err = codec.Decode[ride]([]byte("{"))
	assert.Check(t, err != nil)
}

func TestStreamLayout(t *testing.T) {
	s := codec.NewStream(16)
	s.Uint8(0xAB).Int16(-2).Uint32(0x01020304).Bool(true).String("hi")

	want := []byte{
		0xAB,
		0xFE, 0xFF,
		0x04, 0x03, 0x02, 0x01,
		0x01,
		0x02, 0x00, 'h', 'i',
	}
	assert.DeepEqual(t, want, s.Bytes())
	assert.Equal(t, len(want), s.Len())

	s.Reset()
	assert.Equal(t, 0, s.Len())
}
