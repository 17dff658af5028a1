package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   string    `json:"name"`
	Vector []float64 `json:"vector"`
}

func TestCodecs(t *testing.T) {
	codecs := []Codec{JSON{}, GoJSON{}}

	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			in := payload{Name: "iris-0", Vector: []float64{5.1, 3.5, 1.4, 0.2}}

			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out payload
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCrossCodecCompatibility(t *testing.T) {
	in := payload{Name: "wine-7", Vector: []float64{12.8, 0.5, 2.1}}

	data, err := (JSON{}).Marshal(in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, (GoJSON{}).Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
