package tlv_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/vietqr-hub/internal/vietqr/tlv"
)

func TestField(t *testing.T) {
	tests := []struct {
		tag   string
		value string
		want  string
	}{
		{"00", "01", "000201"},
		{"53", "704", "5303704"},
		{"08", "", "0800"},
		{"00", "A000000727", "0010A000000727"},
		{"01", strings.Repeat("9", 99), "0199" + strings.Repeat("9", 99)},
	}
	for _, tt := range tests {
		got, err := tlv.Field(tt.tag, tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestField_TooLong(t *testing.T) {
	_, err := tlv.Field("62", strings.Repeat("x", 100))
	require.ErrorIs(t, err, tlv.ErrFieldTooLong)
	assert.Contains(t, err.Error(), "tag 62")
}

func TestField_InvalidTag(t *testing.T) {
	for _, tag := range []string{"", "1", "123", "a1", "1b"} {
		_, err := tlv.Field(tag, "x")
		assert.ErrorIs(t, err, tlv.ErrInvalidTag, "tag %q", tag)
	}
}

func TestGroup_KeepsChildOrder(t *testing.T) {
	a, err := tlv.Field("00", "970423")
	require.NoError(t, err)
	b, err := tlv.Field("01", "0099999999")
	require.NoError(t, err)

	got, err := tlv.Group("01", a, b)
	require.NoError(t, err)
	assert.Equal(t, "012400069704230110"+"0099999999", got)

	swapped, err := tlv.Group("01", b, a)
	require.NoError(t, err)
	assert.NotEqual(t, got, swapped)
}

func TestEncode_Tree(t *testing.T) {
	got, err := tlv.Encode(
		tlv.Leaf("00", "01"),
		tlv.Nest("38",
			tlv.Leaf("00", "A000000727"),
			tlv.Nest("01",
				tlv.Leaf("00", "970423"),
				tlv.Leaf("01", "0099999999"),
			),
			tlv.Leaf("02", "QRIBFTTA"),
		),
	)
	require.NoError(t, err)
	assert.Equal(t, "000201"+"38540010A00000072701240006970423011000999999990208QRIBFTTA", got)
}

func TestEncode_NestedOverflowFails(t *testing.T) {
	_, err := tlv.Encode(
		tlv.Leaf("00", "01"),
		tlv.Nest("62",
			tlv.Leaf("08", strings.Repeat("a", 60)),
			tlv.Leaf("09", strings.Repeat("b", 60)),
		),
	)
	require.ErrorIs(t, err, tlv.ErrFieldTooLong)
}
